package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the order row, every item row and one history row per item
// transition recorded on the aggregate. Call it once per unit of work: the
// recorded events are cleared only after they have been published.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                        dto.Status,
		"cancellation_requested_at":     dto.CancellationRequestedAt,
		"cancellation_rejection_reason": dto.CancellationRejectionReason,
		"return_requested_at":           dto.ReturnRequestedAt,
		"return_rejection_reason":       dto.ReturnRejectionReason,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	for _, item := range dto.Items {
		err := db.Model(&ItemDTO{}).
			Where("id = ? AND order_id = ?", item.ID, dto.ID).
			Updates(map[string]any{
				"status":              item.Status,
				"rejection_reason":    item.RejectionReason,
				"return_requested_at": item.ReturnRequestedAt,
			}).Error
		if err != nil {
			return err
		}
	}

	if history := historyFromEvents(aggregate.Events()); len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get retrieves an order by ID without locking it.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row with SELECT ... FOR UPDATE.
// Only meaningful inside a transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, true)
}

// GetByItemID resolves the owning order of an item and loads it locked.
func (r *GormOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var orderIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ?", itemID.Bytes()).
		Limit(1).
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return nil, errs.NewObjectNotFoundError("itemId", itemID)
	}

	orderID, err := kernel.UUIDFromBytes(orderIDs[0][:])
	if err != nil {
		return nil, err
	}

	return r.load(ctx, orderID, true)
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
