package models

import "time"

// Ref is a stable reference to one directory contact. Refs are issued by the
// directory backend and treated as opaque by the engine.
//
// ContainerID and AccountID scope the record to a container/account pair.
// AccountID is backend-defined and may equal ContainerID when the backend does
// not expose a distinct account identifier.
type Ref struct {
	ID          string `json:"id"`
	ContainerID string `json:"container_id,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
}

// GroupRef is a stable reference to one contact group.
type GroupRef struct {
	ID          string `json:"id"`
	ContainerID string `json:"container_id,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
}

// LabeledValue is a single labeled string value (email/phone). Equality is
// structural: label plus value.
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Item is the hydrated contact record. The engine only holds transient copies
// of Items during a single request; the directory backend owns persistence.
type Item struct {
	Ref
	GivenName    string         `json:"given_name,omitempty"`
	FamilyName   string         `json:"family_name,omitempty"`
	MiddleName   string         `json:"middle_name,omitempty"`
	Nickname     string         `json:"nickname,omitempty"`
	Organization string         `json:"organization,omitempty"`
	JobTitle     string         `json:"job_title,omitempty"`
	Note         string         `json:"note,omitempty"`
	Emails       []LabeledValue `json:"emails,omitempty"`
	Phones       []LabeledValue `json:"phones,omitempty"`
	GroupIDs     []string       `json:"group_ids,omitempty"`
	ModifiedAt   time.Time      `json:"modified_at,omitempty"`
}

// DisplayName returns the concatenated non-empty name parts.
func (i Item) DisplayName() string {
	name := ""
	for _, part := range []string{i.GivenName, i.MiddleName, i.FamilyName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	if name == "" {
		name = i.Nickname
	}
	return name
}

// Draft is the create payload for Upsert: a full contact without identity.
type Draft struct {
	ContainerID  string         `json:"container_id,omitempty"`
	GivenName    string         `json:"given_name,omitempty"`
	FamilyName   string         `json:"family_name,omitempty"`
	MiddleName   string         `json:"middle_name,omitempty"`
	Nickname     string         `json:"nickname,omitempty"`
	Organization string         `json:"organization,omitempty"`
	JobTitle     string         `json:"job_title,omitempty"`
	Note         string         `json:"note,omitempty"`
	Emails       []LabeledValue `json:"emails,omitempty"`
	Phones       []LabeledValue `json:"phones,omitempty"`
	GroupIDs     []string       `json:"group_ids,omitempty"`
}

// Changes is a sparse, flag-gated update payload against an existing contact.
//
// Nil pointer fields mean "leave untouched". Non-nil pointers replace the
// corresponding field, including replacement with the empty value. Emails and
// Phones replace the whole list; there is no element-wise merge.
//
// AddGroupIDs/RemoveGroupIDs apply set semantics independently of the pointer
// fields, even when nothing else changes. When an id appears in both lists,
// removal wins.
type Changes struct {
	GivenName      *string         `json:"given_name,omitempty"`
	FamilyName     *string         `json:"family_name,omitempty"`
	MiddleName     *string         `json:"middle_name,omitempty"`
	Nickname       *string         `json:"nickname,omitempty"`
	Organization   *string         `json:"organization,omitempty"`
	JobTitle       *string         `json:"job_title,omitempty"`
	Note           *string         `json:"note,omitempty"`
	Emails         *[]LabeledValue `json:"emails,omitempty"`
	Phones         *[]LabeledValue `json:"phones,omitempty"`
	AddGroupIDs    []string        `json:"add_group_ids,omitempty"`
	RemoveGroupIDs []string        `json:"remove_group_ids,omitempty"`
}

// IsZero reports whether the patch would leave every field untouched.
func (c Changes) IsZero() bool {
	return c.GivenName == nil && c.FamilyName == nil && c.MiddleName == nil &&
		c.Nickname == nil && c.Organization == nil && c.JobTitle == nil &&
		c.Note == nil && c.Emails == nil && c.Phones == nil &&
		len(c.AddGroupIDs) == 0 && len(c.RemoveGroupIDs) == 0
}

// Patch applies Changes to a target Ref.
type Patch struct {
	Ref     Ref     `json:"ref"`
	Changes Changes `json:"changes"`
}
