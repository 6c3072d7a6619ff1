package contacts

import (
	"context"

	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/pkg/models"
)

// Groups lists and mutates the group catalog. Mutating actions are 1-in-1-out
// but still route through the batch aggregator so every write surface shares
// the same per-item result shape. After a mutating action the current catalog
// is re-listed on a best-effort basis.
func (s *Service) Groups(ctx context.Context, input models.GroupsInput) (models.GroupsOutput, error) {
	ctx, span := tracing.StartSpan(ctx, "contacts.Service.Groups")
	defer span.End()

	if err := s.ensureAuthorized(ctx); err != nil {
		return models.GroupsOutput{}, err
	}

	switch input.Action {
	case models.GroupsActionList, "":
		groups, err := s.dir.ListGroups(ctx, input.ContainerID)
		if err != nil {
			return models.GroupsOutput{}, models.AsTyped(err)
		}
		return models.GroupsOutput{Groups: groups}, nil
	case models.GroupsActionCreate, models.GroupsActionRename, models.GroupsActionDelete:
		// fall through to the mutating path below
	default:
		return models.GroupsOutput{}, models.NewError(models.ErrorCodeValidation, "unrecognized groups action %q", input.Action)
	}

	results := collect([]models.GroupsInput{input}, func(in models.GroupsInput) models.GroupResult {
		return s.groupActionOne(ctx, in)
	})

	out := models.GroupsOutput{Results: results}
	if groups, err := s.dir.ListGroups(ctx, input.ContainerID); err == nil {
		out.Groups = groups
	} else {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to refresh group catalog after mutation")
	}
	return out, nil
}

func (s *Service) groupActionOne(ctx context.Context, input models.GroupsInput) models.GroupResult {
	switch input.Action {
	case models.GroupsActionCreate:
		group, err := s.dir.CreateGroup(ctx, input.Name, input.ContainerID)
		if err != nil {
			return failedGroup(input.Group, err)
		}
		s.emitGroupEvent(ctx, "group.created", group)
		return models.GroupResult{Group: group.GroupRef, Succeeded: true, Created: true}

	case models.GroupsActionRename:
		group, err := s.dir.RenameGroup(ctx, input.Group, input.Name)
		if err != nil {
			return failedGroup(input.Group, err)
		}
		s.emitGroupEvent(ctx, "group.updated", group)
		return models.GroupResult{Group: group.GroupRef, Succeeded: true, Updated: true}

	case models.GroupsActionDelete:
		if err := s.dir.DeleteGroup(ctx, input.Group); err != nil {
			return failedGroup(input.Group, err)
		}
		s.emitGroupEvent(ctx, "group.deleted", models.Group{GroupRef: input.Group})
		return models.GroupResult{Group: input.Group, Succeeded: true}

	default:
		return failedGroup(input.Group, models.NewError(models.ErrorCodeValidation, "unrecognized groups action %q", input.Action))
	}
}

func failedGroup(ref models.GroupRef, err error) models.GroupResult {
	return models.GroupResult{Group: ref, Err: models.AsTyped(err)}
}
