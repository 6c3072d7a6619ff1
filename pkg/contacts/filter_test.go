package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestMatchesQuery(t *testing.T) {
	item := models.Item{
		Ref:          models.Ref{ID: "c1"},
		GivenName:    "Ada",
		FamilyName:   "Lovelace",
		Nickname:     "The Countess",
		Organization: "Analytical Engines Ltd",
		Note:         "met at the symposium",
		Emails: []models.LabeledValue{
			{Label: "work", Value: "ada@engines.example"},
			{Label: "home", Value: "ada@home.example"},
		},
		GroupIDs: []string{"g1", "g2"},
	}

	tests := []struct {
		name  string
		query models.Query
		want  bool
	}{
		{
			name:  "empty conjunction matches everything",
			query: models.Query{},
			want:  true,
		},
		{
			name:  "empty disjunction matches nothing",
			query: models.Query{Match: models.MatchAny},
			want:  false,
		},
		{
			name:  "name contains is case insensitive",
			query: models.Query{NameContains: "lovelace"},
			want:  true,
		},
		{
			name:  "name contains matches nickname",
			query: models.Query{NameContains: "countess"},
			want:  true,
		},
		{
			name:  "organization substring",
			query: models.Query{OrganizationContains: "engines"},
			want:  true,
		},
		{
			name:  "note substring",
			query: models.Query{NoteContains: "symposium"},
			want:  true,
		},
		{
			name:  "email domain exact match",
			query: models.Query{EmailDomain: "ENGINES.EXAMPLE"},
			want:  true,
		},
		{
			name:  "email domain is not a substring match",
			query: models.Query{EmailDomain: "engines"},
			want:  false,
		},
		{
			name:  "group intersection",
			query: models.Query{GroupIDsAny: []string{"g2", "g9"}},
			want:  true,
		},
		{
			name:  "explicit id list",
			query: models.Query{IDs: []string{"c1"}},
			want:  true,
		},
		{
			name:  "all clauses must hold under ALL",
			query: models.Query{NameContains: "ada", OrganizationContains: "nonesuch"},
			want:  false,
		},
		{
			name:  "one clause suffices under ANY",
			query: models.Query{NameContains: "nonesuch", OrganizationContains: "engines", Match: models.MatchAny},
			want:  true,
		},
		{
			name:  "no clause holds under ANY",
			query: models.Query{NameContains: "nonesuch", EmailDomain: "elsewhere.example", Match: models.MatchAny},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(tt.query, item))
		})
	}
}

func TestHasEmailDomainUsesLastAt(t *testing.T) {
	emails := []models.LabeledValue{{Label: "odd", Value: `"quoted@part"@real.example`}}
	assert.True(t, hasEmailDomain(emails, "real.example"))
	assert.False(t, hasEmailDomain(emails, `part"@real.example`))

	// a value with no @ never matches
	assert.False(t, hasEmailDomain([]models.LabeledValue{{Value: "not-an-email"}}, "not-an-email"))
}
