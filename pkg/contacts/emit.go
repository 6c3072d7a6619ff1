package contacts

import (
	"context"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Lifecycle events are best-effort: emission failures are logged by the
// emitter and never fold back into item results.

func (s *Service) emitContactCreated(ctx context.Context, ref models.Ref, draft models.Draft) {
	if s.emitter == nil {
		return
	}
	item := models.Item{
		Ref:          ref,
		GivenName:    draft.GivenName,
		FamilyName:   draft.FamilyName,
		MiddleName:   draft.MiddleName,
		Nickname:     draft.Nickname,
		Organization: draft.Organization,
		JobTitle:     draft.JobTitle,
		Note:         draft.Note,
		Emails:       draft.Emails,
		Phones:       draft.Phones,
		GroupIDs:     draft.GroupIDs,
	}
	_ = s.emitter.EmitContactCreated(ctx, item)
}

func (s *Service) emitContactUpdated(ctx context.Context, item models.Item) {
	if s.emitter == nil {
		return
	}
	_ = s.emitter.EmitContactUpdated(ctx, item)
}

func (s *Service) emitContactDeleted(ctx context.Context, ref models.Ref) {
	if s.emitter == nil {
		return
	}
	_ = s.emitter.EmitContactDeleted(ctx, ref)
}

func (s *Service) emitGroupEvent(ctx context.Context, eventType string, group models.Group) {
	if s.emitter == nil {
		return
	}
	_ = s.emitter.EmitGroupEvent(ctx, eventType, group)
}
