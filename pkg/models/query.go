package models

import "time"

// MatchPolicy controls how populated Query clauses combine.
type MatchPolicy string

const (
	// MatchAll requires every populated clause to match. With zero populated
	// clauses every candidate matches (vacuous conjunction).
	MatchAll MatchPolicy = "all"
	// MatchAny requires at least one populated clause to match. With zero
	// populated clauses no candidate matches (vacuous disjunction).
	MatchAny MatchPolicy = "any"
)

// Query captures typed selection filters for Find. Empty/absent clauses are
// excluded from evaluation entirely rather than treated as "match empty".
type Query struct {
	NameContains         string      `json:"name_contains,omitempty"`
	OrganizationContains string      `json:"organization_contains,omitempty"`
	EmailDomain          string      `json:"email_domain,omitempty"`
	NoteContains         string      `json:"note_contains,omitempty"`
	GroupIDsAny          []string    `json:"group_ids_any,omitempty"`
	IDs                  []string    `json:"ids,omitempty"`
	Match                MatchPolicy `json:"match,omitempty"`
}

// Page controls paginated Find output. Cursor is the opaque cursor returned by
// a previous page; empty selects the first page.
type Page struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// SortField controls Find ordering.
type SortField string

const (
	// SortByGivenName orders by given name.
	SortByGivenName SortField = "given_name"
	// SortByFamilyName orders by family name.
	SortByFamilyName SortField = "family_name"
)

// SortOrder controls ascending/descending order.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Sort controls Find ordering.
type Sort struct {
	By    SortField `json:"by,omitempty"`
	Order SortOrder `json:"order,omitempty"`
}

// Meta is optional lightweight metadata aligned 1:1 with FindOutput.Refs.
type Meta struct {
	Ref          Ref       `json:"ref"`
	DisplayName  string    `json:"display_name,omitempty"`
	Organization string    `json:"organization,omitempty"`
	ModifiedAt   time.Time `json:"modified_at,omitempty"`
}

// FindInput is the selection request.
type FindInput struct {
	Query       Query `json:"query"`
	Page        Page  `json:"page"`
	Sort        Sort  `json:"sort"`
	IncludeMeta bool  `json:"include_meta,omitempty"`
}

// FindOutput is the selection response.
//
// NextCursor is empty when no more pages are available.
type FindOutput struct {
	Refs       []Ref  `json:"refs"`
	Meta       []Meta `json:"meta,omitempty"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Field selects one logical contact section for Get hydration.
type Field string

const (
	// FieldNames requests the core name fields.
	FieldNames Field = "names"
	// FieldOrganization requests organization/title fields.
	FieldOrganization Field = "organization"
	// FieldEmails requests email addresses.
	FieldEmails Field = "emails"
	// FieldPhones requests phone numbers.
	FieldPhones Field = "phones"
	// FieldNote requests the contact note.
	FieldNote Field = "note"
	// FieldGroups requests group memberships.
	FieldGroups Field = "groups"
)

// GetInput hydrates refs into typed contact items. Fields acts as a mask:
// sections not listed are cleared in the response, not merely hidden. Ref and
// ModifiedAt are always populated.
type GetInput struct {
	Refs   []Ref   `json:"refs"`
	Fields []Field `json:"fields,omitempty"`
}

// GetOutput contains hydrated contacts.
type GetOutput struct {
	Items []Item `json:"items"`
}
