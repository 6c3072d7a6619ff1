package contact

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/internal/platform/database"
	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/pkg/models"
)

var contactColumns = []string{
	"id", "container_id", "account_id",
	"given_name", "family_name", "middle_name", "nickname",
	"organization", "job_title", "note",
	"emails", "phones",
	"created_at", "updated_at",
}

type contactRow struct {
	ID           string                                `db:"id"`
	ContainerID  string                                `db:"container_id"`
	AccountID    string                                `db:"account_id"`
	GivenName    string                                `db:"given_name"`
	FamilyName   string                                `db:"family_name"`
	MiddleName   string                                `db:"middle_name"`
	Nickname     string                                `db:"nickname"`
	Organization string                                `db:"organization"`
	JobTitle     string                                `db:"job_title"`
	Note         string                                `db:"note"`
	Emails       database.JSONB[[]models.LabeledValue] `db:"emails"`
	Phones       database.JSONB[[]models.LabeledValue] `db:"phones"`
	CreatedAt    time.Time                             `db:"created_at"`
	UpdatedAt    time.Time                             `db:"updated_at"`
}

func (r contactRow) toItem(groupIDs []string) models.Item {
	return models.Item{
		Ref: models.Ref{
			ID:          r.ID,
			ContainerID: r.ContainerID,
			AccountID:   r.AccountID,
		},
		GivenName:    r.GivenName,
		FamilyName:   r.FamilyName,
		MiddleName:   r.MiddleName,
		Nickname:     r.Nickname,
		Organization: r.Organization,
		JobTitle:     r.JobTitle,
		Note:         r.Note,
		Emails:       r.Emails.GetValue(),
		Phones:       r.Phones.GetValue(),
		GroupIDs:     groupIDs,
		ModifiedAt:   r.UpdatedAt.UTC(),
	}
}

// Repository handles contact persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new contact repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// List returns every contact, optionally scoped to a container.
func (r *Repository) List(ctx context.Context, containerID string) ([]models.Item, error) {
	ctx, span := tracing.StartSpan(ctx, "contact.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(contactColumns...)
	sb.From("contacts")
	if containerID != "" {
		sb.Where(sb.Equal("container_id", containerID))
	}
	sb.OrderBy("created_at", "id")

	query, args := sb.Build()
	var rows []contactRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"container_id": containerID}).Error("Failed to list contacts")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list contacts: %v", err)
	}

	return r.hydrate(ctx, rows)
}

// GetByIDs returns the contacts matching ids. Missing ids are silently
// omitted; callers decide whether absence is an error.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	ctx, span := tracing.StartSpan(ctx, "contact.Repository.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(contactColumns...)
	sb.From("contacts")
	sb.Where(sb.In("id", sqlbuilder.Flatten(ids)...))

	query, args := sb.Build()
	var rows []contactRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"ids": ids}).Error("Failed to get contacts by ids")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get contacts: %v", err)
	}

	return r.hydrate(ctx, rows)
}

// Create inserts a contact and its group memberships.
func (r *Repository) Create(ctx context.Context, item models.Item) error {
	ctx, span := tracing.StartSpan(ctx, "contact.Repository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, &sql.TxOptions{})
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	ib := database.NewInsertBuilder()
	ib.InsertInto("contacts")
	ib.Cols(contactColumns...)
	ib.Values(
		item.ID, item.ContainerID, item.AccountID,
		item.GivenName, item.FamilyName, item.MiddleName, item.Nickname,
		item.Organization, item.JobTitle, item.Note,
		database.JSONB[[]models.LabeledValue]{Data: item.Emails},
		database.JSONB[[]models.LabeledValue]{Data: item.Phones},
		item.ModifiedAt, item.ModifiedAt,
	)

	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": item.ID, "container_id": item.ContainerID}).Error("Failed to create contact")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to create contact: %v", err)
	}

	if err := r.replaceMemberships(ctx, tx, item.ID, item.GroupIDs, false); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to commit contact create: %v", err)
	}
	return nil
}

// Update rewrites a contact. expectedModifiedAt is the updated_at value the
// caller last observed; a mismatch means another writer got there first and
// surfaces as a conflict.
func (r *Repository) Update(ctx context.Context, item models.Item, expectedModifiedAt, now time.Time) error {
	ctx, span := tracing.StartSpan(ctx, "contact.Repository.Update")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, &sql.TxOptions{})
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("contacts")
	ub.Set(
		ub.Assign("given_name", item.GivenName),
		ub.Assign("family_name", item.FamilyName),
		ub.Assign("middle_name", item.MiddleName),
		ub.Assign("nickname", item.Nickname),
		ub.Assign("organization", item.Organization),
		ub.Assign("job_title", item.JobTitle),
		ub.Assign("note", item.Note),
		ub.Assign("emails", database.JSONB[[]models.LabeledValue]{Data: item.Emails}),
		ub.Assign("phones", database.JSONB[[]models.LabeledValue]{Data: item.Phones}),
		ub.Assign("updated_at", now),
	)
	ub.Where(
		ub.Equal("id", item.ID),
		ub.Equal("updated_at", expectedModifiedAt),
	)

	query, args := ub.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": item.ID}).Error("Failed to update contact")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to update contact: %v", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		exists, err := r.exists(ctx, tx, item.ID)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewError(models.ErrorCodeNotFound, "contact %s not found", item.ID)
		}
		return models.NewError(models.ErrorCodeConflict, "contact %s was modified concurrently", item.ID)
	}

	if err := r.replaceMemberships(ctx, tx, item.ID, item.GroupIDs, true); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to commit contact update: %v", err)
	}
	return nil
}

// Delete removes a contact. Group memberships go with it via FK cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "contact.Repository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("contacts")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete contact")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete contact: %v", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.NewError(models.ErrorCodeNotFound, "contact %s not found", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted contact")
	return nil
}

func (r *Repository) exists(ctx context.Context, tx database.Tx, id string) (bool, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("contacts")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to check contact existence")
		return false, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to check contact existence: %v", err)
	}
	return count > 0, nil
}

func (r *Repository) replaceMemberships(ctx context.Context, tx database.Tx, contactID string, groupIDs []string, clear bool) error {
	if clear {
		del := sqlbuilder.PostgreSQL.NewDeleteBuilder()
		del.DeleteFrom("contact_group_members")
		del.Where(del.Equal("contact_id", contactID))

		query, args := del.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contact_id": contactID}).Error("Failed to clear group memberships")
			return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to clear group memberships: %v", err)
		}
	}

	if len(groupIDs) == 0 {
		return nil
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto("contact_group_members")
	ib.Cols("contact_id", "group_id")
	for _, groupID := range groupIDs {
		ib.Values(contactID, groupID)
	}
	ib.OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		// An FK violation means the caller named a group that does not
		// exist: bad input, not a store fault.
		if database.IsForeignKeyViolation(err) {
			return models.NewError(models.ErrorCodeValidation, "unknown group id in memberships for contact %s", contactID)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contact_id": contactID, "group_ids": groupIDs}).Error("Failed to write group memberships")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to write group memberships: %v", err)
	}
	return nil
}

// hydrate attaches group memberships to the fetched rows.
func (r *Repository) hydrate(ctx context.Context, rows []contactRow) ([]models.Item, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("contact_id", "group_id")
	sb.From("contact_group_members")
	sb.Where(sb.In("contact_id", sqlbuilder.Flatten(ids)...))

	query, args := sb.Build()
	var memberships []struct {
		ContactID string `db:"contact_id"`
		GroupID   string `db:"group_id"`
	}
	if err := r.db.SelectContext(ctx, &memberships, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load group memberships")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to load group memberships: %v", err)
	}

	byContact := make(map[string][]string, len(rows))
	for _, m := range memberships {
		byContact[m.ContactID] = append(byContact[m.ContactID], m.GroupID)
	}

	items := make([]models.Item, 0, len(rows))
	for _, row := range rows {
		groupIDs := byContact[row.ID]
		sort.Strings(groupIDs)
		items = append(items, row.toItem(groupIDs))
	}
	return items, nil
}
