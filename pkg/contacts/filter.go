package contacts

import (
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

// matchesQuery evaluates every populated query clause against one candidate.
// Absent clauses are excluded from evaluation entirely. An empty conjunction
// is vacuously true; an empty disjunction is vacuously false.
func matchesQuery(query models.Query, item models.Item) bool {
	checks := make([]bool, 0, 6)

	if query.NameContains != "" {
		checks = append(checks, nameContains(item, query.NameContains))
	}
	if query.OrganizationContains != "" {
		checks = append(checks, containsFold(item.Organization, query.OrganizationContains))
	}
	if query.EmailDomain != "" {
		checks = append(checks, hasEmailDomain(item.Emails, query.EmailDomain))
	}
	if query.NoteContains != "" {
		checks = append(checks, containsFold(item.Note, query.NoteContains))
	}
	if len(query.GroupIDsAny) > 0 {
		checks = append(checks, intersects(item.GroupIDs, query.GroupIDsAny))
	}
	if len(query.IDs) > 0 {
		checks = append(checks, containsString(query.IDs, item.ID))
	}

	if query.Match == models.MatchAny {
		for _, ok := range checks {
			if ok {
				return true
			}
		}
		return false
	}

	for _, ok := range checks {
		if !ok {
			return false
		}
	}
	return true
}

func nameContains(item models.Item, needle string) bool {
	name := strings.Join([]string{item.GivenName, item.FamilyName, item.Nickname}, " ")
	return containsFold(name, needle)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// hasEmailDomain matches the domain portion (after the last '@') of any email
// value, case-insensitively and exactly.
func hasEmailDomain(emails []models.LabeledValue, domain string) bool {
	for _, email := range emails {
		at := strings.LastIndex(email.Value, "@")
		if at < 0 {
			continue
		}
		if strings.EqualFold(email.Value[at+1:], domain) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if containsString(b, x) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
