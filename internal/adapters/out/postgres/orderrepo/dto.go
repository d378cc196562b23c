// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored by wire name so rows stay readable and survive enum
// reordering.
type OrderDTO struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status                      string    `gorm:"type:varchar(32);index"`
	CancellationRequestedAt     *time.Time
	CancellationRejectionReason string
	ReturnRequestedAt           *time.Time
	ReturnRejectionReason       string
	Items                       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Position keeps the placement order of the lines.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Position          int       `gorm:"not null"`
	Status            string    `gorm:"type:varchar(32);index"`
	RejectionReason   string
	ReturnRequestedAt *time.Time
	Quantity          int
	UnitPrice         decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency          string          `gorm:"type:char(3)"`
	ProductRef        string
	VariantRef        string
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// ItemStatusHistoryDTO is an append-only record of one applied item transition.
type ItemStatusHistoryDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ItemID     uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	Reason     string
	ChangedAt  time.Time `gorm:"index"`
}

func (ItemStatusHistoryDTO) TableName() string {
	return "item_status_history"
}

// Models lists every table owned by the repository, in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &ItemDTO{}, &ItemStatusHistoryDTO{}}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	requests := o.Requests()
	dto := OrderDTO{
		ID:                          o.ID().Bytes(),
		Status:                      o.Status().String(),
		CancellationRequestedAt:     requests.CancellationRequestedAt,
		CancellationRejectionReason: requests.CancellationRejectionReason,
		ReturnRequestedAt:           requests.ReturnRequestedAt,
		ReturnRejectionReason:       requests.ReturnRejectionReason,
	}

	for position, item := range o.Items() {
		dto.Items = append(dto.Items, itemFromDomain(dto.ID, position, item))
	}

	return dto
}

func itemFromDomain(orderID uuid.UUID, position int, item *order.Item) ItemDTO {
	return ItemDTO{
		ID:                item.ID().Bytes(),
		OrderID:           orderID,
		Position:          position,
		Status:            item.StatusName(),
		RejectionReason:   item.RejectionReason(),
		ReturnRequestedAt: item.ReturnRequestedAt(),
		Quantity:          item.Quantity(),
		UnitPrice:         item.UnitPrice().Amount(),
		Currency:          item.UnitPrice().Currency(),
		ProductRef:        item.ProductRef(),
		VariantRef:        item.VariantRef(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Unrecognized status names are kept as Unknown so that rows written by a
// newer version can still be read; the transition table locks such items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rows := make([]ItemDTO, len(dto.Items))
	copy(rows, dto.Items)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	items := make([]*order.Item, 0, len(rows))
	for _, row := range rows {
		item, itemErr := itemToDomain(row)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, _ := order.ParseStatus(dto.Status)

	return order.RestoreOrder(id, status, items, order.Requests{
		CancellationRequestedAt:     dto.CancellationRequestedAt,
		CancellationRejectionReason: dto.CancellationRejectionReason,
		ReturnRequestedAt:           dto.ReturnRequestedAt,
		ReturnRejectionReason:       dto.ReturnRejectionReason,
	})
}

func itemToDomain(row ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(row.UnitPrice, row.Currency)
	if err != nil {
		return nil, err
	}

	status, _ := order.ParseItemStatus(row.Status)

	return order.RestoreItem(order.ItemState{
		ID:                id,
		Status:            status,
		StatusName:        row.Status,
		RejectionReason:   row.RejectionReason,
		ReturnRequestedAt: row.ReturnRequestedAt,
		Quantity:          row.Quantity,
		UnitPrice:         price,
		ProductRef:        row.ProductRef,
		VariantRef:        row.VariantRef,
	})
}

// historyFromEvents picks the item transitions out of the recorded events.
func historyFromEvents(events []order.DomainEvent) []ItemStatusHistoryDTO {
	var rows []ItemStatusHistoryDTO
	for _, event := range events {
		changed, ok := event.(order.ItemStatusChanged)
		if !ok {
			continue
		}
		rows = append(rows, ItemStatusHistoryDTO{
			OrderID:    changed.Order.Bytes(),
			ItemID:     changed.ItemID.Bytes(),
			FromStatus: changed.From.String(),
			ToStatus:   changed.To.String(),
			Reason:     changed.Reason,
			ChangedAt:  changed.At,
		})
	}
	return rows
}
