package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderPlacedEventName        EventType = "OrderPlaced"
	OrderItemCancelledEventName EventType = "OrderItemCancelled"
	OrderHistoryPurgedEventName EventType = "OrderHistoryPurged"
)

type Event interface {
	Type() EventType
	GetID() string
}

type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	CreatedAt   time.Time `json:"created_at"`
	EventType   EventType `json:"event_type"`
}

func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

type OrderItemData struct {
	ItemID          uint            `json:"item_id"`
	ProductCategory string          `json:"product_category"`
	ProductID       int             `json:"product_id"`
	Size            string          `json:"size"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
}

type OrderPlacedEvent struct {
	BaseEvent
	OrderID       uint            `json:"order_id"`
	UserID        uint            `json:"user_id"`
	PaymentMethod string          `json:"payment_method"`
	Items         []OrderItemData `json:"items"`
	Amount        decimal.Decimal `json:"amount"`
}

func (e *OrderPlacedEvent) Type() EventType {
	return OrderPlacedEventName
}

type OrderItemCancelledEvent struct {
	BaseEvent
	OrderID uint `json:"order_id"`
	ItemID  uint `json:"item_id"`
	UserID  uint `json:"user_id"`
}

func (e *OrderItemCancelledEvent) Type() EventType {
	return OrderItemCancelledEventName
}

type OrderHistoryPurgedEvent struct {
	BaseEvent
	UserID   uint   `json:"user_id"`
	OrderIDs []uint `json:"order_ids"`
}

func (e *OrderHistoryPurgedEvent) Type() EventType {
	return OrderHistoryPurgedEventName
}
