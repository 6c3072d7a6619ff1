package group

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/internal/platform/database"
	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/pkg/models"
)

type groupRow struct {
	ID          string    `db:"id"`
	ContainerID string    `db:"container_id"`
	AccountID   string    `db:"account_id"`
	Name        string    `db:"name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r groupRow) toGroup() models.Group {
	return models.Group{
		GroupRef: models.GroupRef{
			ID:          r.ID,
			ContainerID: r.ContainerID,
			AccountID:   r.AccountID,
		},
		Name: r.Name,
	}
}

// Repository handles contact group persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new group repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// List returns every group, optionally scoped to a container, ordered by name.
func (r *Repository) List(ctx context.Context, containerID string) ([]models.Group, error) {
	ctx, span := tracing.StartSpan(ctx, "group.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "container_id", "account_id", "name", "created_at", "updated_at")
	sb.From("contact_groups")
	if containerID != "" {
		sb.Where(sb.Equal("container_id", containerID))
	}
	sb.OrderBy("name", "id")

	query, args := sb.Build()
	var rows []groupRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"container_id": containerID}).Error("Failed to list groups")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list groups: %v", err)
	}

	groups := make([]models.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.toGroup())
	}
	return groups, nil
}

// Create inserts a new group.
func (r *Repository) Create(ctx context.Context, group models.Group) error {
	ctx, span := tracing.StartSpan(ctx, "group.Repository.Create")
	defer span.End()

	now := time.Now().UTC()
	ib := database.NewInsertBuilder()
	ib.InsertInto("contact_groups")
	ib.Cols("id", "container_id", "account_id", "name", "created_at", "updated_at")
	ib.Values(group.ID, group.ContainerID, group.AccountID, group.Name, now, now)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": group.ID, "name": group.Name}).Error("Failed to create group")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to create group: %v", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": group.ID, "name": group.Name}).Info("Created group")
	return nil
}

// Rename updates a group's name and returns the updated group.
func (r *Repository) Rename(ctx context.Context, id, name string) (models.Group, error) {
	ctx, span := tracing.StartSpan(ctx, "group.Repository.Rename")
	defer span.End()

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("contact_groups")
	ub.Set(
		ub.Assign("name", name),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", id))
	ub.SQL("RETURNING id, container_id, account_id, name, created_at, updated_at")

	query, args := ub.Build()
	var row groupRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return models.Group{}, models.NewError(models.ErrorCodeNotFound, "group %s not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id, "name": name}).Error("Failed to rename group")
		return models.Group{}, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to rename group: %v", err)
	}

	return row.toGroup(), nil
}

// Delete removes a group. Membership rows are dropped via FK cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "group.Repository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("contact_groups")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete group")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete group: %v", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.NewError(models.ErrorCodeNotFound, "group %s not found", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted group")
	return nil
}
