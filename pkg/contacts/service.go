// Package contacts implements the contact query, projection and mutation
// engine over a pluggable directory backend.
package contacts

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/pkg/directory"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/models"
)

// Config contains engine settings.
type Config struct {
	MaxPageSize int // upper bound applied to Page.Limit; <= 0 disables the cap
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxPageSize: 500,
	}
}

// Service evaluates contact requests against a Directory. Each request is one
// synchronous unit of work: batch items run strictly in input order so result
// ordering mirrors input ordering without extra bookkeeping. The service
// holds no state between requests.
type Service struct {
	logger  ectologger.Logger
	dir     directory.Directory
	emitter *events.Emitter
	config  Config
}

// NewService creates a new engine over dir. emitter may be nil to disable
// lifecycle events.
func NewService(logger ectologger.Logger, dir directory.Directory, emitter *events.Emitter, config Config) *Service {
	return &Service{
		logger:  logger,
		dir:     dir,
		emitter: emitter,
		config:  config,
	}
}

// AuthorizationStatus reports the directory permission state for the caller.
func (s *Service) AuthorizationStatus(ctx context.Context) (models.AuthStatus, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.AuthorizationStatus")
	defer span.End()

	return s.dir.AuthorizationStatus(ctx)
}

// RequestAccess asks the directory to grant access to the caller.
func (s *Service) RequestAccess(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.RequestAccess")
	defer span.End()

	return s.dir.RequestAccess(ctx)
}

// Find selects contact refs using typed filters, sorting and pagination.
func (s *Service) Find(ctx context.Context, input models.FindInput) (models.FindOutput, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.Find")
	defer span.End()

	if err := s.ensureAuthorized(ctx); err != nil {
		return models.FindOutput{}, err
	}

	offset, err := parseCursor(input.Page.Cursor)
	if err != nil {
		return models.FindOutput{}, err
	}

	items, err := s.dir.FetchAll(ctx, "")
	if err != nil {
		return models.FindOutput{}, models.AsTyped(err)
	}

	matched := make([]models.Item, 0, len(items))
	for _, item := range items {
		if matchesQuery(input.Query, item) {
			matched = append(matched, item)
		}
	}

	sortItems(matched, input.Sort)

	limit := input.Page.Limit
	if s.config.MaxPageSize > 0 && limit > s.config.MaxPageSize {
		limit = s.config.MaxPageSize
	}
	page, nextOffset := paginate(matched, limit, offset)

	out := models.FindOutput{Refs: make([]models.Ref, 0, len(page))}
	if input.IncludeMeta {
		out.Meta = make([]models.Meta, 0, len(page))
	}
	for _, item := range page {
		out.Refs = append(out.Refs, item.Ref)
		if input.IncludeMeta {
			out.Meta = append(out.Meta, models.Meta{
				Ref:          item.Ref,
				DisplayName:  item.DisplayName(),
				Organization: item.Organization,
				ModifiedAt:   item.ModifiedAt,
			})
		}
	}
	out.NextCursor = formatCursor(nextOffset)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"matched":  len(matched),
		"returned": len(page),
	}).Debug("Find evaluated")

	return out, nil
}

// Get hydrates refs into typed contact items, populating only the sections
// selected by input.Fields. Refs that do not resolve are omitted from the
// output; absence never escalates to a request-level error.
func (s *Service) Get(ctx context.Context, input models.GetInput) (models.GetOutput, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.Get")
	defer span.End()

	if err := s.ensureAuthorized(ctx); err != nil {
		return models.GetOutput{}, err
	}

	if len(input.Refs) == 0 {
		return models.GetOutput{}, nil
	}

	found, err := s.dir.Fetch(ctx, input.Refs)
	if err != nil {
		return models.GetOutput{}, models.AsTyped(err)
	}

	mask := maskOf(input.Fields)
	out := models.GetOutput{Items: make([]models.Item, 0, len(found))}
	for _, ref := range input.Refs {
		item, ok := found[ref.ID]
		if !ok {
			continue
		}
		out.Items = append(out.Items, project(item, mask))
	}
	return out, nil
}

// Upsert creates new contacts and patches existing contacts. Results are
// positional: one per draft, then one per patch, in input order. One item's
// failure never aborts the rest of the batch.
func (s *Service) Upsert(ctx context.Context, input models.UpsertInput) (models.UpsertOutput, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.Upsert")
	defer span.End()

	if err := s.ensureAuthorized(ctx); err != nil {
		return models.UpsertOutput{}, err
	}

	results := collect(input.Create, func(draft models.Draft) models.WriteResult {
		return s.createOne(ctx, draft)
	})
	results = append(results, collect(input.Patch, func(patch models.Patch) models.WriteResult {
		return s.patchOne(ctx, patch)
	})...)

	return models.UpsertOutput{Results: results}, nil
}

// Mutate applies the full op sequence, in order, to every target ref
// independently, producing one result per ref.
func (s *Service) Mutate(ctx context.Context, input models.MutateInput) (models.MutateOutput, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.Mutate")
	defer span.End()

	if err := s.ensureAuthorized(ctx); err != nil {
		return models.MutateOutput{}, err
	}

	results := collect(input.Refs, func(ref models.Ref) models.WriteResult {
		return s.mutateOne(ctx, ref, input.Ops)
	})

	return models.MutateOutput{Results: results}, nil
}

func (s *Service) createOne(ctx context.Context, draft models.Draft) models.WriteResult {
	ref, err := s.dir.Create(ctx, draft)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Contact create failed")
		return failedWrite(models.Ref{}, err)
	}

	s.emitContactCreated(ctx, ref, draft)
	return models.WriteResult{Ref: ref, Succeeded: true, Created: true}
}

func (s *Service) patchOne(ctx context.Context, patch models.Patch) models.WriteResult {
	found, err := s.dir.Fetch(ctx, []models.Ref{patch.Ref})
	if err != nil {
		return failedWrite(patch.Ref, err)
	}
	current, ok := found[patch.Ref.ID]
	if !ok {
		return failedWrite(patch.Ref, models.NewError(models.ErrorCodeNotFound, "contact %q does not exist", patch.Ref.ID))
	}

	// A patch with nothing set is a promised no-op: skip the write so the
	// stored record stays untouched.
	if patch.Changes.IsZero() {
		return models.WriteResult{Ref: current.Ref, Succeeded: true}
	}

	next := applyChanges(current, patch.Changes)
	if err := s.dir.Write(ctx, current.Ref, next); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contact_id": current.ID}).Warn("Contact patch failed")
		return failedWrite(current.Ref, err)
	}

	s.emitContactUpdated(ctx, next)
	return models.WriteResult{Ref: current.Ref, Succeeded: true, Updated: true}
}

func (s *Service) mutateOne(ctx context.Context, ref models.Ref, ops []models.MutationOp) models.WriteResult {
	found, err := s.dir.Fetch(ctx, []models.Ref{ref})
	if err != nil {
		return failedWrite(ref, err)
	}
	current, ok := found[ref.ID]
	if !ok {
		return failedWrite(ref, models.NewError(models.ErrorCodeNotFound, "contact %q does not exist", ref.ID))
	}

	next, deleted, dirty, err := applyOps(current, ops)
	if err != nil {
		return failedWrite(current.Ref, err)
	}

	if deleted {
		if err := s.dir.Delete(ctx, current.Ref); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contact_id": current.ID}).Warn("Contact delete failed")
			return failedWrite(current.Ref, err)
		}
		s.emitContactDeleted(ctx, current.Ref)
		return models.WriteResult{Ref: current.Ref, Succeeded: true}
	}

	if !dirty {
		return models.WriteResult{Ref: current.Ref, Succeeded: true}
	}

	if err := s.dir.Write(ctx, current.Ref, next); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contact_id": current.ID}).Warn("Contact mutate failed")
		return failedWrite(current.Ref, err)
	}

	s.emitContactUpdated(ctx, next)
	return models.WriteResult{Ref: current.Ref, Succeeded: true, Updated: true}
}

func (s *Service) ensureAuthorized(ctx context.Context) error {
	status, err := s.dir.AuthorizationStatus(ctx)
	if err != nil {
		return models.AsTyped(err)
	}
	if status != models.AuthStatusAuthorized {
		return models.NewError(models.ErrorCodePermissionDenied, "contacts access is %s", status)
	}
	return nil
}

func failedWrite(ref models.Ref, err error) models.WriteResult {
	return models.WriteResult{Ref: ref, Err: models.AsTyped(err)}
}
