// Package events handles event emission for contact lifecycle changes.
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = "1.0"

// Emitter emits contact and group lifecycle events.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter.
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitContactCreated emits a contact created event.
func (e *Emitter) EmitContactCreated(ctx context.Context, item models.Item) error {
	return e.emitContact(ctx, "contact.created", item)
}

// EmitContactUpdated emits a contact updated event.
func (e *Emitter) EmitContactUpdated(ctx context.Context, item models.Item) error {
	return e.emitContact(ctx, "contact.updated", item)
}

// EmitContactDeleted emits a contact deleted event.
func (e *Emitter) EmitContactDeleted(ctx context.Context, ref models.Ref) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitContactDeleted")
	defer span.End()

	event := &kafka.ContactEvent{
		EventType:   "contact.deleted",
		ContactID:   ref.ID,
		ContainerID: ref.ContainerID,
		AccountID:   ref.AccountID,
	}

	if err := e.producer.PublishContactEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit contact.deleted event")
		return err
	}
	return nil
}

// EmitGroupEvent emits a group catalog event.
func (e *Emitter) EmitGroupEvent(ctx context.Context, eventType string, group models.Group) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitGroupEvent")
	defer span.End()

	event := &kafka.GroupEvent{
		EventType:   eventType,
		GroupID:     group.ID,
		ContainerID: group.ContainerID,
		Name:        group.Name,
	}

	if err := e.producer.PublishGroupEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"event_type": eventType}).Error("Failed to emit group event")
		return err
	}
	return nil
}

func (e *Emitter) emitContact(ctx context.Context, eventType string, item models.Item) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.emitContact")
	defer span.End()

	payload := map[string]any{
		"schema_version": SchemaVersion,
		"contact":        item,
	}
	data, _ := json.Marshal(payload)

	event := &kafka.ContactEvent{
		EventType:   eventType,
		ContactID:   item.ID,
		ContainerID: item.ContainerID,
		AccountID:   item.AccountID,
		Data:        data,
	}

	if err := e.producer.PublishContactEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"event_type": eventType}).Error("Failed to emit contact event")
		return err
	}
	return nil
}
