package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "all name parts",
			item: Item{GivenName: "Ada", MiddleName: "King", FamilyName: "Lovelace"},
			want: "Ada King Lovelace",
		},
		{
			name: "skips empty parts",
			item: Item{GivenName: "Ada", FamilyName: "Lovelace"},
			want: "Ada Lovelace",
		},
		{
			name: "falls back to nickname",
			item: Item{Nickname: "Countess"},
			want: "Countess",
		},
		{
			name: "empty contact",
			item: Item{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.DisplayName())
		})
	}
}

func TestChangesIsZero(t *testing.T) {
	assert.True(t, Changes{}.IsZero())

	empty := ""
	assert.False(t, Changes{Note: &empty}.IsZero(), "a pointer to the empty value is still a change")
	assert.False(t, Changes{AddGroupIDs: []string{"g1"}}.IsZero())
	assert.False(t, Changes{RemoveGroupIDs: []string{"g1"}}.IsZero())
	assert.False(t, Changes{Emails: &[]LabeledValue{}}.IsZero())
}
