// Package postgres implements the directory contract on a Postgres store.
// Contacts and groups live in relational tables; group membership is a join
// table cleaned up by FK cascade on group delete.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/internal/platform/database"
	contactrepo "github.com/Ramsey-B/clover/internal/repositories/contact"
	grouprepo "github.com/Ramsey-B/clover/internal/repositories/group"
	"github.com/Ramsey-B/clover/pkg/models"
)

// DefaultContainerID is assigned when a create payload names no container.
const DefaultContainerID = "default"

// Directory is a Postgres-backed contact store. Authorization is handled at
// the connection level, so the permission surface always reports authorized.
type Directory struct {
	db       database.DB
	contacts *contactrepo.Repository
	groups   *grouprepo.Repository
	logger   ectologger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a Directory over db.
func New(db database.DB, logger ectologger.Logger) *Directory {
	return &Directory{
		db:       db,
		contacts: contactrepo.NewRepository(db, logger),
		groups:   grouprepo.NewRepository(db, logger),
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// MigrateUp applies the schema migrations under migrationPath.
func (d *Directory) MigrateUp(migrationPath string) error {
	driver, err := migratepg.WithInstance(d.db.Unsafe().DB, &migratepg.Config{})
	if err != nil {
		return err
	}
	ms := database.NewMigrationService(d.logger, &database.MigrationConfig{
		MigrationFolderPath: migrationPath,
	})
	return ms.Migrate("postgres", driver)
}

// AuthorizationStatus always reports authorized: reaching the database at all
// means the connection credentials were accepted.
func (d *Directory) AuthorizationStatus(ctx context.Context) (models.AuthStatus, error) {
	return models.AuthStatusAuthorized, nil
}

// RequestAccess is a no-op for a database-backed store.
func (d *Directory) RequestAccess(ctx context.Context) error {
	return nil
}

// FetchAll returns every contact, optionally scoped to a container.
func (d *Directory) FetchAll(ctx context.Context, containerID string) ([]models.Item, error) {
	items, err := d.contacts.List(ctx, containerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// Fetch resolves refs into items. Missing refs are absent from the map.
func (d *Directory) Fetch(ctx context.Context, refs []models.Ref) (map[string]models.Item, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	items, err := d.contacts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}

	found := make(map[string]models.Item, len(items))
	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// Create inserts a new contact and returns its generated ref.
func (d *Directory) Create(ctx context.Context, draft models.Draft) (models.Ref, error) {
	if err := d.validateEmails(draft.Emails); err != nil {
		return models.Ref{}, err
	}

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
		Emails:       draft.Emails,
		Phones:       draft.Phones,
		GroupIDs:     dedupe(draft.GroupIDs),
		ModifiedAt:   d.now().UTC(),
	}

	if err := d.contacts.Create(ctx, item); err != nil {
		return models.Ref{}, storeErr(err)
	}
	return item.Ref, nil
}

// Write replaces the stored contact state for ref. The item's ModifiedAt is
// the state the caller last read; writes against a stale read come back as a
// conflict.
func (d *Directory) Write(ctx context.Context, ref models.Ref, item models.Item) error {
	if err := d.validateEmails(item.Emails); err != nil {
		return err
	}

	item.ID = ref.ID
	item.GroupIDs = dedupe(item.GroupIDs)
	if err := d.contacts.Update(ctx, item, item.ModifiedAt, d.now().UTC()); err != nil {
		return storeErr(err)
	}
	return nil
}

// Delete removes the contact for ref.
func (d *Directory) Delete(ctx context.Context, ref models.Ref) error {
	if err := d.contacts.Delete(ctx, ref.ID); err != nil {
		return storeErr(err)
	}
	return nil
}

// ListGroups returns the group catalog, optionally scoped to one container.
func (d *Directory) ListGroups(ctx context.Context, containerID string) ([]models.Group, error) {
	groups, err := d.groups.List(ctx, containerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return groups, nil
}

// CreateGroup stores a new named group with a generated id.
func (d *Directory) CreateGroup(ctx context.Context, name, containerID string) (models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return models.Group{}, models.NewError(models.ErrorCodeValidation, "group name is required")
	}

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

	if err := d.groups.Create(ctx, group); err != nil {
		return models.Group{}, storeErr(err)
	}
	return group, nil
}

// RenameGroup updates the name of an existing group.
func (d *Directory) RenameGroup(ctx context.Context, ref models.GroupRef, name string) (models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return models.Group{}, models.NewError(models.ErrorCodeValidation, "group name is required")
	}

	group, err := d.groups.Rename(ctx, ref.ID, name)
	if err != nil {
		return models.Group{}, storeErr(err)
	}
	return group, nil
}

// DeleteGroup removes a group. The membership join table drops its rows via
// FK cascade, which keeps every contact's membership set consistent.
func (d *Directory) DeleteGroup(ctx context.Context, ref models.GroupRef) error {
	if err := d.groups.Delete(ctx, ref.ID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (d *Directory) validateEmails(emails []models.LabeledValue) error {
	for _, email := range emails {
		if err := d.validate.Var(email.Value, "required,email"); err != nil {
			return models.NewError(models.ErrorCodeValidation, "invalid email %q", email.Value)
		}
	}
	return nil
}

// storeErr passes typed errors through and classifies everything else as a
// backend failure.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var typed *models.Error
	if errors.As(err, &typed) {
		return typed
	}
	return models.NewError(models.ErrorCodeStore, "%s", err.Error())
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
