package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/event"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = fmt.Errorf("producer is closed")

// Writer kafka.Writer 需要用到的部分，方便測試替換
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type IOrderEventProducer interface {
	ProduceOrderPlaced(ctx context.Context, order *model.Order) error
	ProduceOrderItemCancelled(ctx context.Context, userID, orderID, itemID uint) error
	ProduceOrderHistoryPurged(ctx context.Context, userID uint, orderIDs []uint) error
	Close() error
}

// NewKafkaWriter 同步寫入，訊息依 user id 分區
func NewKafkaWriter(brokers []string, topic string, logger zerolog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
}

// OrderEventProducer 訂單事件以 user id 為 key
type OrderEventProducer struct {
	writer Writer
	closed atomic.Bool
}

func NewOrderEventProducer(writer Writer) *OrderEventProducer {
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderPlaced(ctx context.Context, order *model.Order) error {
	items := make([]event.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, event.OrderItemData{
			ItemID:          item.ID,
			ProductCategory: item.ProductCategory,
			ProductID:       item.ProductID,
			Size:            item.Size,
			Quantity:        item.Quantity,
			Price:           item.Price,
		})
	}

	evt := &event.OrderPlacedEvent{
		BaseEvent:     event.NewBaseEvent(event.OrderPlacedEventName, strconv.FormatUint(uint64(order.ID), 10)),
		OrderID:       order.ID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
		Items:         items,
		Amount:        order.Subtotal(),
	}
	return p.produce(ctx, order.UserID, evt)
}

func (p *OrderEventProducer) ProduceOrderItemCancelled(ctx context.Context, userID, orderID, itemID uint) error {
	evt := &event.OrderItemCancelledEvent{
		BaseEvent: event.NewBaseEvent(event.OrderItemCancelledEventName, strconv.FormatUint(uint64(orderID), 10)),
		OrderID:   orderID,
		ItemID:    itemID,
		UserID:    userID,
	}
	return p.produce(ctx, userID, evt)
}

func (p *OrderEventProducer) ProduceOrderHistoryPurged(ctx context.Context, userID uint, orderIDs []uint) error {
	evt := &event.OrderHistoryPurgedEvent{
		BaseEvent: event.NewBaseEvent(event.OrderHistoryPurgedEventName, strconv.FormatUint(uint64(userID), 10)),
		UserID:    userID,
		OrderIDs:  orderIDs,
	}
	return p.produce(ctx, userID, evt)
}

func (p *OrderEventProducer) produce(ctx context.Context, userID uint, evt event.Event) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	msg, err := convertToMessage(userID, evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("produce %s: %w", evt.Type(), err)
	}
	return nil
}

func convertToMessage(userID uint, evt event.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(userID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(evt.Type()),
			},
		},
	}, nil
}

func (p *OrderEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NoopProducer 沒有設定 kafka broker 時使用
type NoopProducer struct{}

func (NoopProducer) ProduceOrderPlaced(ctx context.Context, order *model.Order) error { return nil }

func (NoopProducer) ProduceOrderItemCancelled(ctx context.Context, userID, orderID, itemID uint) error {
	return nil
}

func (NoopProducer) ProduceOrderHistoryPurged(ctx context.Context, userID uint, orderIDs []uint) error {
	return nil
}

func (NoopProducer) Close() error { return nil }

var (
	_ IOrderEventProducer = (*OrderEventProducer)(nil)
	_ IOrderEventProducer = NoopProducer{}
	_ Writer              = (*kafka.Writer)(nil)
)
