package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func strPtr(s string) *string {
	return &s
}

func listPtr(values ...models.LabeledValue) *[]models.LabeledValue {
	return &values
}

func TestApplyChanges(t *testing.T) {
	current := models.Item{
		Ref:          models.Ref{ID: "c1"},
		GivenName:    "Ada",
		FamilyName:   "Lovelace",
		Organization: "Analytical Engines Ltd",
		Note:         "old note",
		Emails:       []models.LabeledValue{{Label: "work", Value: "ada@engines.example"}},
		GroupIDs:     []string{"g1", "g2"},
	}

	t.Run("nil pointers leave fields untouched", func(t *testing.T) {
		next := applyChanges(current, models.Changes{GivenName: strPtr("Augusta")})

		assert.Equal(t, "Augusta", next.GivenName)
		assert.Equal(t, "Lovelace", next.FamilyName)
		assert.Equal(t, "old note", next.Note)
		assert.Equal(t, current.Emails, next.Emails)
	})

	t.Run("set pointer replaces with empty value", func(t *testing.T) {
		next := applyChanges(current, models.Changes{Organization: strPtr("")})
		assert.Empty(t, next.Organization)
	})

	t.Run("email list is replaced whole", func(t *testing.T) {
		next := applyChanges(current, models.Changes{
			Emails: listPtr(models.LabeledValue{Label: "home", Value: "ada@home.example"}),
		})
		assert.Equal(t, []models.LabeledValue{{Label: "home", Value: "ada@home.example"}}, next.Emails)
	})

	t.Run("empty list pointer clears the list", func(t *testing.T) {
		next := applyChanges(current, models.Changes{Emails: listPtr()})
		assert.Empty(t, next.Emails)
	})

	t.Run("group adds and removes use set semantics", func(t *testing.T) {
		next := applyChanges(current, models.Changes{
			AddGroupIDs:    []string{"g2", "g3"},
			RemoveGroupIDs: []string{"g1", "g9"},
		})
		assert.Equal(t, []string{"g2", "g3"}, next.GroupIDs)
	})

	t.Run("removal wins when an id is added and removed", func(t *testing.T) {
		next := applyChanges(current, models.Changes{
			AddGroupIDs:    []string{"g5"},
			RemoveGroupIDs: []string{"g5"},
		})
		assert.NotContains(t, next.GroupIDs, "g5")
	})

	t.Run("applying the same patch twice is idempotent", func(t *testing.T) {
		patch := models.Changes{
			GivenName:      strPtr("Augusta"),
			Emails:         listPtr(models.LabeledValue{Label: "home", Value: "ada@home.example"}),
			AddGroupIDs:    []string{"g3"},
			RemoveGroupIDs: []string{"g1"},
		}
		once := applyChanges(current, patch)
		twice := applyChanges(once, patch)
		assert.Equal(t, once, twice)
	})

	t.Run("input item is never mutated", func(t *testing.T) {
		_ = applyChanges(current, models.Changes{
			GivenName:      strPtr("X"),
			AddGroupIDs:    []string{"g3"},
			RemoveGroupIDs: []string{"g1"},
		})
		assert.Equal(t, "Ada", current.GivenName)
		assert.Equal(t, []string{"g1", "g2"}, current.GroupIDs)
	})

	t.Run("zero changes yield an identical record", func(t *testing.T) {
		next := applyChanges(current, models.Changes{})
		assert.Equal(t, current, next)
	})
}
