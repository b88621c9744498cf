package repo

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// MarshalEventPayload converts a resource event into a JSON payload suitable for the outbox.
func MarshalEventPayload(ev domain.ResourceEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ResourceCreatedEvent:
		payload = map[string]interface{}{
			"kind":        e.Kind,
			"id":          e.Ref.ID,
			"version":     e.Ref.Version,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.ResourceUpdatedEvent:
		payload = map[string]interface{}{
			"kind":         e.Kind,
			"id":           e.Ref.ID,
			"prev_version": e.PrevVersion,
			"version":      e.Ref.Version,
			"actions":      e.Actions,
			"occurred_at":  e.OccurredAt(),
		}

	case *domain.OrderCreatedEvent:
		payload = map[string]interface{}{
			"order_id":      e.Order.ID,
			"order_version": e.Order.Version,
			"order_number":  e.OrderNumber,
			"cart_id":       e.Cart.ID,
			"cart_version":  e.Cart.Version,
			"total_cents":   e.TotalCents,
			"currency":      e.Currency,
			"occurred_at":   e.OccurredAt(),
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	b, err := json.Marshal(payload)
	return string(b), err
}

// NewOutboxEvent enriches ev with an event id and payload.
func NewOutboxEvent(ev domain.ResourceEvent) (*contracts.OutboxEvent, error) {
	payload, err := MarshalEventPayload(ev)
	if err != nil {
		return nil, err
	}
	out := &contracts.OutboxEvent{
		EventID:      uuid.New().String(),
		EventType:    ev.EventType(),
		AggregateID:  ev.AggregateID(),
		PayloadJSON:  payload,
		CreatedAtUTC: ev.OccurredAt().UTC(),
	}
	switch e := ev.(type) {
	case *domain.ResourceCreatedEvent:
		out.AggregateKind, out.AggregateVersion = string(e.Kind), e.Ref.Version
	case *domain.ResourceUpdatedEvent:
		out.AggregateKind, out.AggregateVersion = string(e.Kind), e.Ref.Version
	case *domain.OrderCreatedEvent:
		out.AggregateKind, out.AggregateVersion = string(domain.KindOrder), e.Order.Version
	}
	return out, nil
}
