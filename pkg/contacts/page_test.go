package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func namedItem(id, given, family string) models.Item {
	return models.Item{Ref: models.Ref{ID: id}, GivenName: given, FamilyName: family}
}

func ids(items []models.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestSortItems(t *testing.T) {
	base := []models.Item{
		namedItem("c3", "Grace", "Hopper"),
		namedItem("c1", "Ada", "Lovelace"),
		namedItem("c4", "ada", "Byron"),
		namedItem("c2", "Grace", "Hopper"),
	}

	tests := []struct {
		name string
		sort models.Sort
		want []string
	}{
		{
			name: "given name ascending with family then id tie-breaks",
			sort: models.Sort{By: models.SortByGivenName},
			want: []string{"c4", "c1", "c2", "c3"},
		},
		{
			name: "given name descending",
			sort: models.Sort{By: models.SortByGivenName, Order: models.SortOrderDesc},
			want: []string{"c2", "c3", "c1", "c4"},
		},
		{
			name: "family name ascending",
			sort: models.Sort{By: models.SortByFamilyName},
			want: []string{"c4", "c2", "c3", "c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := append([]models.Item(nil), base...)
			sortItems(items, tt.sort)
			assert.Equal(t, tt.want, ids(items))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []models.Item{
		namedItem("c1", "", ""),
		namedItem("c2", "", ""),
		namedItem("c3", "", ""),
	}

	page, next := paginate(items, 2, 0)
	assert.Equal(t, []string{"c1", "c2"}, ids(page))
	assert.Equal(t, 2, next)

	page, next = paginate(items, 2, 2)
	assert.Equal(t, []string{"c3"}, ids(page))
	assert.Equal(t, -1, next)

	// offset beyond the result set is an empty page, not an error
	page, next = paginate(items, 2, 7)
	assert.Empty(t, page)
	assert.Equal(t, -1, next)

	// non-positive limit yields nothing
	page, next = paginate(items, 0, 0)
	assert.Empty(t, page)
	assert.Equal(t, -1, next)
}

func TestParseCursor(t *testing.T) {
	offset, err := parseCursor("")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	offset, err = parseCursor("42")
	require.NoError(t, err)
	assert.Equal(t, 42, offset)

	_, err = parseCursor("not-a-cursor")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))

	_, err = parseCursor("-3")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))
}

func TestFormatCursor(t *testing.T) {
	assert.Equal(t, "", formatCursor(-1))
	assert.Equal(t, "25", formatCursor(25))
}
