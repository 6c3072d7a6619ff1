// Package memory provides an in-process Directory backend. It is the
// reference implementation of the directory contract and the substrate for
// engine unit tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/pkg/models"
)

// DefaultContainerID is the container assigned to records created without an
// explicit container.
const DefaultContainerID = "local"

// Store is a mutex-guarded in-memory Directory. All operations are
// serialized, so concurrent callers never observe conflicts from this
// backend.
type Store struct {
	mu       sync.Mutex
	logger   ectologger.Logger
	validate *validator.Validate
	auth     models.AuthStatus
	contacts map[string]models.Item
	groups   map[string]models.Group
	now      func() time.Time
}

// New creates an empty store. The store starts authorized; use SetAuthStatus
// to exercise permission flows.
func New(logger ectologger.Logger) *Store {
	return &Store{
		logger:   logger,
		validate: validator.New(),
		auth:     models.AuthStatusAuthorized,
		contacts: make(map[string]models.Item),
		groups:   make(map[string]models.Group),
		now:      time.Now,
	}
}

// SetAuthStatus overrides the authorization state reported by the store.
func (s *Store) SetAuthStatus(status models.AuthStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = status
}

// SetClock overrides the timestamp source. Tests use this to make ModifiedAt
// deterministic.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AuthorizationStatus returns the current permission state.
func (s *Store) AuthorizationStatus(ctx context.Context) (models.AuthStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth, nil
}

// RequestAccess grants access unless the store is restricted or denied.
func (s *Store) RequestAccess(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.auth {
	case models.AuthStatusRestricted, models.AuthStatusDenied:
		return models.NewError(models.ErrorCodePermissionDenied, "contacts access is %s", s.auth)
	default:
		s.auth = models.AuthStatusAuthorized
		return nil
	}
}

// FetchAll returns a snapshot of every contact, optionally scoped to one
// container. Items are copies; mutating them does not touch the store.
func (s *Store) FetchAll(ctx context.Context, containerID string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Item, 0, len(s.contacts))
	for _, item := range s.contacts {
		if containerID != "" && item.ContainerID != containerID {
			continue
		}
		items = append(items, cloneItem(item))
	}
	// Stable snapshot order keeps downstream pagination deterministic.
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Fetch resolves refs into items. Missing refs are absent from the map.
func (s *Store) Fetch(ctx context.Context, refs []models.Ref) (map[string]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make(map[string]models.Item, len(refs))
	for _, ref := range refs {
		if item, ok := s.contacts[ref.ID]; ok {
			found[ref.ID] = cloneItem(item)
		}
	}
	return found, nil
}

// Create stores a new contact and returns its generated ref.
func (s *Store) Create(ctx context.Context, draft models.Draft) (models.Ref, error) {
	if err := s.validateEmails(draft.Emails); err != nil {
		return models.Ref{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	containerID := draft.ContainerID
	if containerID == "" {
		containerID = DefaultContainerID
	}

	item := models.Item{
		Ref: models.Ref{
			ID:          uuid.NewString(),
			ContainerID: containerID,
			AccountID:   containerID,
		},
		GivenName:    draft.GivenName,
		FamilyName:   draft.FamilyName,
		MiddleName:   draft.MiddleName,
		Nickname:     draft.Nickname,
		Organization: draft.Organization,
		JobTitle:     draft.JobTitle,
		Note:         draft.Note,
		Emails:       append([]models.LabeledValue(nil), draft.Emails...),
		Phones:       append([]models.LabeledValue(nil), draft.Phones...),
		GroupIDs:     dedupe(draft.GroupIDs),
		ModifiedAt:   s.now(),
	}

	s.contacts[item.ID] = item
	return item.Ref, nil
}

// Write replaces the stored contact state for ref.
func (s *Store) Write(ctx context.Context, ref models.Ref, item models.Item) error {
	if err := s.validateEmails(item.Emails); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.contacts[ref.ID]
	if !ok {
		return models.NewError(models.ErrorCodeNotFound, "contact %q does not exist", ref.ID)
	}

	item.Ref = current.Ref
	item.GroupIDs = dedupe(item.GroupIDs)
	item.ModifiedAt = s.now()
	s.contacts[ref.ID] = cloneItem(item)
	return nil
}

// Delete removes the contact for ref.
func (s *Store) Delete(ctx context.Context, ref models.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[ref.ID]; !ok {
		return models.NewError(models.ErrorCodeNotFound, "contact %q does not exist", ref.ID)
	}
	delete(s.contacts, ref.ID)
	return nil
}

// ListGroups returns the group catalog, optionally scoped to one container.
func (s *Store) ListGroups(ctx context.Context, containerID string) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		if containerID != "" && group.ContainerID != containerID {
			continue
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}

// CreateGroup stores a new named group with a generated id.
func (s *Store) CreateGroup(ctx context.Context, name, containerID string) (models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return models.Group{}, models.NewError(models.ErrorCodeValidation, "group name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if containerID == "" {
		containerID = DefaultContainerID
	}
	group := models.Group{
		GroupRef: models.GroupRef{
			ID:          uuid.NewString(),
			ContainerID: containerID,
			AccountID:   containerID,
		},
		Name: name,
	}
	s.groups[group.ID] = group
	return group, nil
}

// RenameGroup updates the name of an existing group.
func (s *Store) RenameGroup(ctx context.Context, ref models.GroupRef, name string) (models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return models.Group{}, models.NewError(models.ErrorCodeValidation, "group name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[ref.ID]
	if !ok {
		return models.Group{}, models.NewError(models.ErrorCodeNotFound, "group %q does not exist", ref.ID)
	}
	group.Name = name
	s.groups[ref.ID] = group
	return group, nil
}

// DeleteGroup removes a group and drops its id from every contact's
// membership set.
func (s *Store) DeleteGroup(ctx context.Context, ref models.GroupRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[ref.ID]; !ok {
		return models.NewError(models.ErrorCodeNotFound, "group %q does not exist", ref.ID)
	}
	delete(s.groups, ref.ID)

	for id, item := range s.contacts {
		kept := item.GroupIDs[:0:0]
		for _, groupID := range item.GroupIDs {
			if groupID != ref.ID {
				kept = append(kept, groupID)
			}
		}
		if len(kept) != len(item.GroupIDs) {
			item.GroupIDs = kept
			s.contacts[id] = item
		}
	}
	return nil
}

func (s *Store) validateEmails(emails []models.LabeledValue) error {
	for _, email := range emails {
		if err := s.validate.Var(email.Value, "required,email"); err != nil {
			return models.NewError(models.ErrorCodeValidation, "invalid email %q", email.Value)
		}
	}
	return nil
}

func cloneItem(item models.Item) models.Item {
	item.Emails = append([]models.LabeledValue(nil), item.Emails...)
	item.Phones = append([]models.LabeledValue(nil), item.Phones...)
	item.GroupIDs = append([]string(nil), item.GroupIDs...)
	return item
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
