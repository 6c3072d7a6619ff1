// Package directory defines the contact store collaborator consumed by the
// clover engine. The engine never assumes a specific storage technology, only
// the operation contracts and typed error codes declared here.
package directory

import (
	"context"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Directory is the external contact store. Implementations own persistence,
// id generation and structural validation; they report failures as
// *models.Error so the engine can map them onto per-item results.
//
// Fetch returns a partial map keyed by Ref.ID; a missing entry means the ref
// did not resolve (NotFound). FetchAll returns a read-only snapshot used for
// filtering. Every call may block on the underlying store, so all take a
// context.
type Directory interface {
	AuthorizationStatus(ctx context.Context) (models.AuthStatus, error)
	RequestAccess(ctx context.Context) error

	FetchAll(ctx context.Context, containerID string) ([]models.Item, error)
	Fetch(ctx context.Context, refs []models.Ref) (map[string]models.Item, error)

	Create(ctx context.Context, draft models.Draft) (models.Ref, error)
	Write(ctx context.Context, ref models.Ref, item models.Item) error
	Delete(ctx context.Context, ref models.Ref) error

	ListGroups(ctx context.Context, containerID string) ([]models.Group, error)
	CreateGroup(ctx context.Context, name, containerID string) (models.Group, error)
	RenameGroup(ctx context.Context, ref models.GroupRef, name string) (models.Group, error)
	// DeleteGroup removes a group and drops its id from every contact's
	// membership set.
	DeleteGroup(ctx context.Context, ref models.GroupRef) error
}
