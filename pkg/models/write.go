package models

// UpsertInput creates new contacts and patches existing contacts in one batch.
// Results are positional: creates first, then patches.
type UpsertInput struct {
	Create []Draft `json:"create,omitempty"`
	Patch  []Patch `json:"patch,omitempty"`
}

// WriteResult reports one per-item write outcome. A batch never fails as a
// whole for one bad item; callers inspect each result individually.
type WriteResult struct {
	Ref       Ref   `json:"ref"`
	Succeeded bool  `json:"succeeded"`
	Created   bool  `json:"created,omitempty"`
	Updated   bool  `json:"updated,omitempty"`
	Err       error `json:"error,omitempty"`
}

// UpsertOutput reports per-create/per-patch results in input order.
type UpsertOutput struct {
	Results []WriteResult `json:"results"`
}

// MutationType enumerates the explicit mutation operations.
type MutationType string

const (
	// MutationSetNote replaces the note field with MutationOp.Value.
	MutationSetNote MutationType = "set_note"
	// MutationSetOrganization replaces the organization field.
	MutationSetOrganization MutationType = "set_organization"
	// MutationSetJobTitle replaces the job title field.
	MutationSetJobTitle MutationType = "set_job_title"
	// MutationSetGivenName replaces the given name field.
	MutationSetGivenName MutationType = "set_given_name"
	// MutationSetFamilyName replaces the family name field.
	MutationSetFamilyName MutationType = "set_family_name"
	// MutationAddToGroup adds the contact to the group id in Value.
	MutationAddToGroup MutationType = "add_to_group"
	// MutationRemoveFromGroup removes the contact from the group id in Value.
	MutationRemoveFromGroup MutationType = "remove_from_group"
	// MutationDelete deletes the contact. Later ops on the same ref are
	// skipped as already satisfied.
	MutationDelete MutationType = "delete"
)

// MutationOp is one explicit state transition. Value carries the field value
// or group id; it is unused for delete.
type MutationOp struct {
	Type  MutationType `json:"type"`
	Value string       `json:"value,omitempty"`
}

// MutateInput applies the full op sequence, in order, to every target ref
// independently.
type MutateInput struct {
	Refs []Ref        `json:"refs"`
	Ops  []MutationOp `json:"ops"`
}

// MutateOutput reports one result per target ref, in input order.
type MutateOutput struct {
	Results []WriteResult `json:"results"`
}
