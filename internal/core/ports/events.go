package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers domain events after the change that produced them
// has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}

// TransitionObserver receives the outcome of every transition request.
type TransitionObserver interface {
	// ObserveValidation is called once per validated request.
	ObserveValidation(verdict string, conflict order.ConflictKind)

	// ObserveSinkCall is called once per command sink call with its duration
	// in seconds and its error, nil on success.
	ObserveSinkCall(seconds float64, err error)
}
