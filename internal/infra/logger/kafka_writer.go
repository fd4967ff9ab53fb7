package logger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/infra/producer"
	"github.com/segmentio/kafka-go"
)

const (
	writeTimeout      = 5 * time.Second
	defaultBufferSize = 1024
	defaultBatchSize  = 100
)

var (
	ErrLogWriterClosed = errors.New("kafka log writer is closed")
	ErrLogBufferFull   = errors.New("kafka log buffer is full")
)

type Option func(*KafkaLogWriter)

func WithBufferSize(size int) Option {
	return func(kw *KafkaLogWriter) {
		if size > 0 {
			kw.bufferSize = size
		}
	}
}

func WithBatchSize(size int) Option {
	return func(kw *KafkaLogWriter) {
		if size > 0 {
			kw.batchSize = size
		}
	}
}

// WithErrorHandler 送出失敗時呼叫，不能再寫回同一個 logger
func WithErrorHandler(fn func(error)) Option {
	return func(kw *KafkaLogWriter) {
		if fn != nil {
			kw.onError = fn
		}
	}
}

/*
KafkaLogWriter 把 zerolog 的輸出送到 kafka

Write 只放進緩衝區，由背景 goroutine 批次送出，broker 變慢不會卡住呼叫端。
緩衝區滿時丟棄該筆並回傳 ErrLogBufferFull。
Close 會把緩衝區剩下的 log 送完再關閉 writer。
*/
type KafkaLogWriter struct {
	w          producer.Writer
	logId      atomic.Int64
	bufferSize int
	batchSize  int
	onError    func(error)

	mu     sync.RWMutex
	closed bool
	msgs   chan kafka.Message
	done   chan struct{}
	once   sync.Once
}

func NewKafkaLogWriter(w producer.Writer, opts ...Option) *KafkaLogWriter {
	kw := &KafkaLogWriter{
		w:          w,
		bufferSize: defaultBufferSize,
		batchSize:  defaultBatchSize,
		onError: func(err error) {
			fmt.Fprintf(os.Stderr, "kafka log writer: %v\n", err)
		},
	}
	for _, opt := range opts {
		opt(kw)
	}
	kw.msgs = make(chan kafka.Message, kw.bufferSize)
	kw.done = make(chan struct{})
	go kw.run()
	return kw
}

func (kw *KafkaLogWriter) Write(p []byte) (n int, err error) {
	kw.mu.RLock()
	defer kw.mu.RUnlock()
	if kw.closed {
		return 0, ErrLogWriterClosed
	}

	// key 使用流水號，讓 log 平均分配到各分區
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(kw.logId.Add(1)))

	// zerolog 會重用 p
	value := make([]byte, len(p))
	copy(value, p)

	select {
	case kw.msgs <- kafka.Message{Key: key, Value: value}:
		return len(p), nil
	default:
		kw.onError(ErrLogBufferFull)
		return 0, ErrLogBufferFull
	}
}

func (kw *KafkaLogWriter) run() {
	defer close(kw.done)

	batch := make([]kafka.Message, 0, kw.batchSize)
	for msg := range kw.msgs {
		batch = append(batch[:0], msg)
	fill:
		for len(batch) < kw.batchSize {
			select {
			case next, ok := <-kw.msgs:
				if !ok {
					break fill
				}
				batch = append(batch, next)
			default:
				break fill
			}
		}
		kw.flush(batch)
	}
}

func (kw *KafkaLogWriter) flush(batch []kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := kw.w.WriteMessages(ctx, batch...); err != nil {
		kw.onError(fmt.Errorf("write %d log messages: %w", len(batch), err))
	}
}

// Close 等緩衝區送完才關閉 writer，重複呼叫不做事
func (kw *KafkaLogWriter) Close() error {
	var err error
	kw.once.Do(func() {
		kw.mu.Lock()
		kw.closed = true
		close(kw.msgs)
		kw.mu.Unlock()

		<-kw.done
		err = kw.w.Close()
	})
	return err
}
