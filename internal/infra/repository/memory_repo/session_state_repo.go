package memory_repo

import (
	"context"
	"encoding/json"
	"sync"
)

// SessionStateRepo 單機版 session state，沒有設定 redis 時使用
// 同一個 session 的修改以該 session 的 mutex 串行化，資料不會過期
type SessionStateRepo[T any] struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
	data  map[string][]byte
}

// sessionLock refs 為等待或持有中的呼叫數，歸零時從 map 移除
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewSessionStateRepo[T any]() *SessionStateRepo[T] {
	return &SessionStateRepo[T]{
		locks: make(map[string]*sessionLock),
		data:  make(map[string][]byte),
	}
}

func (r *SessionStateRepo[T]) lock(sid string) *sessionLock {
	r.mu.Lock()
	l, ok := r.locks[sid]
	if !ok {
		l = &sessionLock{}
		r.locks[sid] = l
	}
	l.refs++
	r.mu.Unlock()

	l.Lock()
	return l
}

func (r *SessionStateRepo[T]) unlock(sid string, l *sessionLock) {
	l.Unlock()

	r.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(r.locks, sid)
	}
	r.mu.Unlock()
}

// 存 json 複本，呼叫端拿到的狀態不會和內部共用
func (r *SessionStateRepo[T]) read(sid string) (*T, error) {
	r.mu.Lock()
	data, ok := r.data[sid]
	r.mu.Unlock()

	state := new(T)
	if !ok {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *SessionStateRepo[T]) Load(ctx context.Context, sid string) (*T, error) {
	return r.read(sid)
}

func (r *SessionStateRepo[T]) Update(ctx context.Context, sid string, fn func(*T) error) error {
	l := r.lock(sid)
	defer r.unlock(sid, l)

	state, err := r.read(sid)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.data[sid] = data
	r.mu.Unlock()
	return nil
}

func (r *SessionStateRepo[T]) Delete(ctx context.Context, sid string) error {
	l := r.lock(sid)
	defer r.unlock(sid, l)

	r.mu.Lock()
	delete(r.data, sid)
	r.mu.Unlock()
	return nil
}
