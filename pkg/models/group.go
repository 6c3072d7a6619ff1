package models

// Group stores discoverable group metadata. Contacts reference groups by id.
type Group struct {
	GroupRef
	Name string `json:"name"`
}

// GroupsAction selects a group catalog operation.
type GroupsAction string

const (
	// GroupsActionList lists current groups.
	GroupsActionList GroupsAction = "list"
	// GroupsActionCreate creates a new group.
	GroupsActionCreate GroupsAction = "create"
	// GroupsActionRename renames an existing group.
	GroupsActionRename GroupsAction = "rename"
	// GroupsActionDelete deletes an existing group. Membership cleanup is the
	// directory backend's responsibility.
	GroupsActionDelete GroupsAction = "delete"
)

// GroupsInput is the request for Groups.
//
// For create, set Name and optional ContainerID.
// For rename, set Group.ID and Name.
// For delete, set Group.ID.
type GroupsInput struct {
	Action      GroupsAction `json:"action"`
	Group       GroupRef     `json:"group,omitempty"`
	Name        string       `json:"name,omitempty"`
	ContainerID string       `json:"container_id,omitempty"`
}

// GroupResult reports one mutating group operation outcome.
type GroupResult struct {
	Group     GroupRef `json:"group"`
	Succeeded bool     `json:"succeeded"`
	Created   bool     `json:"created,omitempty"`
	Updated   bool     `json:"updated,omitempty"`
	Err       error    `json:"error,omitempty"`
}

// GroupsOutput contains the current group catalog and mutating results.
type GroupsOutput struct {
	Groups  []Group       `json:"groups,omitempty"`
	Results []GroupResult `json:"results,omitempty"`
}
