package domain

import "time"

// ResourceEvent is a fact recorded by the platform after a successful write.
type ResourceEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ResourceCreatedEvent is raised when a cart or product is created.
type ResourceCreatedEvent struct {
	Kind      ResourceKind
	Ref       Ref
	CreatedAt time.Time
}

func (e *ResourceCreatedEvent) EventType() string {
	return string(e.Kind) + ".created"
}

func (e *ResourceCreatedEvent) AggregateID() string {
	return e.Ref.ID
}

func (e *ResourceCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// ResourceUpdatedEvent is raised when a batch of actions moves a resource to a new version.
type ResourceUpdatedEvent struct {
	Kind        ResourceKind
	Ref         Ref
	PrevVersion int64
	Actions     []string
	UpdatedAt   time.Time
}

func (e *ResourceUpdatedEvent) EventType() string {
	return string(e.Kind) + ".updated"
}

func (e *ResourceUpdatedEvent) AggregateID() string {
	return e.Ref.ID
}

func (e *ResourceUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// OrderCreatedEvent is raised when a cart is turned into an order.
type OrderCreatedEvent struct {
	Order       Ref
	Cart        Ref
	OrderNumber string
	TotalCents  int64
	Currency    string
	CreatedAt   time.Time
}

func (e *OrderCreatedEvent) EventType() string {
	return "order.created"
}

func (e *OrderCreatedEvent) AggregateID() string {
	return e.Order.ID
}

func (e *OrderCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}
