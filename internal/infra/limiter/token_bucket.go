package limiter

import (
	"sync"
	"sync/atomic"
	"time"
)

type LimiterConfig struct {
	Capacity   int
	RatePS     int           // tokens/秒
	RefillRate time.Duration // 補充時間間隔
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity:   10,
		RatePS:     1,
		RefillRate: 100 * time.Millisecond,
	}
}

/*
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	LimiterConfig
	current      atomic.Int64
	lastRefilled atomic.Int64
	cancel       chan struct{}
	once         sync.Once //for close background
}

/*
請使用 defer 呼叫 Stop()
*/
func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	t := &TokenBucket{
		cancel: make(chan struct{}),
	}

	if config != nil {
		t.LimiterConfig = *config
	} else {
		t.LimiterConfig = GetDefaultLimiterConfig()
	}
	if t.RefillRate <= 0 {
		t.RefillRate = GetDefaultLimiterConfig().RefillRate
	}

	t.current.Store(int64(t.Capacity))
	t.lastRefilled.Store(time.Now().UnixNano())
	go t.background()
	return t
}

func (t *TokenBucket) Allow() bool {
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

// countNewTokens 回傳補充後的數量，以及實際用掉的時間
// 不足一個 token 的時間保留到下次累計
func (t *TokenBucket) countNewTokens(current int64, now int64) (int64, time.Duration) {
	lastUpdate := t.lastRefilled.Load()
	elapsed := time.Duration(now - lastUpdate)
	tokenToAdd := int64(elapsed.Seconds() * float64(t.RatePS))
	if tokenToAdd <= 0 {
		return current, 0
	}
	used := time.Duration(tokenToAdd) * time.Second / time.Duration(t.RatePS)

	newTokens := current + tokenToAdd
	if newTokens > int64(t.Capacity) {
		newTokens = int64(t.Capacity)
	}
	return newTokens, used
}

func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.RefillRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			if t.RatePS <= 0 {
				continue
			}
			for {
				now := time.Now().UnixNano()
				current := t.current.Load()
				newTokens, used := t.countNewTokens(current, now)
				if used == 0 {
					break
				}
				if t.current.CompareAndSwap(current, newTokens) {
					t.lastRefilled.Add(int64(used))
					break
				}
			}
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}
