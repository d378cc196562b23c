package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// OrderStore reads orders straight from the database for the transition
// engine. Reads take no locks; the command sink re-reads under a row lock.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return orderrepo.NewGormOrderRepository(s.db, discardTracker{}).Get(ctx, orderID)
}

type discardTracker struct{}

func (discardTracker) TrackAggregate(*order.Order) {}
