package livequery

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/events"
)

// Scope mô tả phạm vi dữ liệu một subscription quan tâm.
// Collection là bắt buộc; các field còn lại rỗng nghĩa là không lọc theo chiều đó.
type Scope struct {
	Collection string
	ClientID   primitive.ObjectID
	MonthKey   string
	ThreadID   primitive.ObjectID
}

// Matches kiểm tra một sự kiện thay đổi dữ liệu có nằm trong scope không.
// Sự kiện không mang document (update/delete hàng loạt) luôn match để
// phía nhận refetch cho chắc thay vì bỏ lỡ thay đổi.
func (s Scope) Matches(e events.DataChangeEvent) bool {
	if e.CollectionName != s.Collection {
		return false
	}
	if e.Document == nil {
		return true
	}
	if !s.ClientID.IsZero() {
		if docClient := events.GetClientIDFromDocument(e.Document); !docClient.IsZero() && docClient != s.ClientID {
			return false
		}
	}
	if s.MonthKey != "" {
		if docMonth := events.GetStringField(e.Document, "MonthKey"); docMonth != "" && docMonth != s.MonthKey {
			return false
		}
	}
	if !s.ThreadID.IsZero() {
		if docThread := events.GetObjectIDField(e.Document, "ThreadID"); !docThread.IsZero() && docThread != s.ThreadID {
			return false
		}
	}
	return true
}

// FetchFunc tải lại toàn bộ dữ liệu trong scope
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// LiveQuery giữ một snapshot dữ liệu trong scope và tự refetch khi có
// sự kiện thay đổi khớp scope. Snapshot được thay nguyên khối sau mỗi
// lần refetch thành công; refetch lỗi giữ snapshot cũ và ghi nhận lỗi.
type LiveQuery[T any] struct {
	scope Scope
	fetch FetchFunc[T]

	mu       sync.RWMutex
	snapshot []T
	lastErr  error
	version  int64

	onChange    func([]T)
	unsubscribe func()
	refetchCh   chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// NewLiveQuery tạo live query, tải snapshot đầu tiên và bắt đầu lắng nghe.
// onChange (có thể nil) được gọi với snapshot mới sau mỗi refetch thành công.
func NewLiveQuery[T any](ctx context.Context, scope Scope, fetch FetchFunc[T], onChange func([]T)) (*LiveQuery[T], error) {
	q := &LiveQuery[T]{
		scope:     scope,
		fetch:     fetch,
		onChange:  onChange,
		refetchCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	// Snapshot đầu tiên tải đồng bộ để caller có dữ liệu ngay
	initial, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	q.snapshot = initial

	q.unsubscribe = events.OnDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		if q.scope.Matches(e) {
			q.requestRefetch()
		}
	})
	go q.refetchLoop()

	return q, nil
}

// Snapshot trả về bản sao snapshot hiện tại
func (q *LiveQuery[T]) Snapshot() []T {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]T, len(q.snapshot))
	copy(out, q.snapshot)
	return out
}

// Version tăng sau mỗi lần snapshot được thay, dùng để phát hiện thay đổi rẻ tiền
func (q *LiveQuery[T]) Version() int64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.version
}

// LastError trả về lỗi của lần refetch gần nhất (nil nếu thành công)
func (q *LiveQuery[T]) LastError() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.lastErr
}

// Refetch ép tải lại snapshot ngay, không đợi sự kiện
func (q *LiveQuery[T]) Refetch(ctx context.Context) error {
	return q.doRefetch(ctx)
}

// Close hủy đăng ký sự kiện và dừng vòng refetch
func (q *LiveQuery[T]) Close() {
	q.closeOnce.Do(func() {
		if q.unsubscribe != nil {
			q.unsubscribe()
		}
		close(q.done)
	})
}

// requestRefetch gửi tín hiệu refetch, gộp các tín hiệu dồn dập thành một
func (q *LiveQuery[T]) requestRefetch() {
	select {
	case q.refetchCh <- struct{}{}:
	default:
	}
}

func (q *LiveQuery[T]) refetchLoop() {
	for {
		select {
		case <-q.refetchCh:
			_ = q.doRefetch(context.Background())
		case <-q.done:
			return
		}
	}
}

func (q *LiveQuery[T]) doRefetch(ctx context.Context) error {
	data, err := q.fetch(ctx)

	q.mu.Lock()
	if err != nil {
		q.lastErr = err
		q.mu.Unlock()
		return err
	}
	q.snapshot = data
	q.lastErr = nil
	q.version++
	onChange := q.onChange
	q.mu.Unlock()

	if onChange != nil {
		onChange(data)
	}
	return nil
}
