package livequery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recorder đếm số lần ghi và giữ lại các payload đã ghi
type recorder struct {
	mu     sync.Mutex
	values []interface{}
	err    error
}

func (r *recorder) write(_ context.Context, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
	return r.err
}

func (r *recorder) snapshot() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interface{}, len(r.values))
	copy(out, r.values)
	return out
}

func TestSingleSlotWriterCoalesces(t *testing.T) {
	rec := &recorder{}
	w := NewSingleSlotWriter(50*time.Millisecond, rec.write)

	// Chuỗi gõ phím: chỉ payload cuối cùng được ghi
	w.Queue("a")
	w.Queue("ab")
	w.Queue("abc")
	w.Flush()

	assert.Equal(t, []interface{}{"abc"}, rec.snapshot())
	assert.False(t, w.HasPending())
	assert.NoError(t, w.LastError())
}

func TestSingleSlotWriterQuietDelay(t *testing.T) {
	rec := &recorder{}
	w := NewSingleSlotWriter(30*time.Millisecond, rec.write)

	w.Queue("x")
	// Trước khi hết quiet delay chưa có gì được ghi
	assert.Empty(t, rec.snapshot())
	assert.True(t, w.HasPending())

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "x", rec.snapshot()[0])
}

func TestSingleSlotWriterImmediateFlush(t *testing.T) {
	rec := &recorder{}
	w := NewSingleSlotWriter(0, rec.write)

	w.Queue("now")
	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)
}

func TestSingleSlotWriterKeepsLastError(t *testing.T) {
	rec := &recorder{err: errors.New("write failed")}
	w := NewSingleSlotWriter(time.Millisecond, rec.write)

	w.Queue("x")
	w.Flush()
	assert.Error(t, w.LastError())

	// Lần ghi thành công kế tiếp xóa lỗi
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()
	w.Queue("y")
	w.Flush()
	assert.NoError(t, w.LastError())
}

func TestSingleSlotWriterCloseRejectsQueue(t *testing.T) {
	rec := &recorder{}
	w := NewSingleSlotWriter(time.Millisecond, rec.write)

	w.Queue("a")
	w.Close()
	assert.Equal(t, []interface{}{"a"}, rec.snapshot())

	// Sau Close, Queue bị bỏ qua
	w.Queue("b")
	w.Flush()
	assert.Equal(t, []interface{}{"a"}, rec.snapshot())
}

func TestWriterPoolPerKey(t *testing.T) {
	var mu sync.Mutex
	written := map[string][]interface{}{}

	pool := NewWriterPool(20*time.Millisecond, func(key string) WriteFunc {
		return func(_ context.Context, value interface{}) error {
			mu.Lock()
			defer mu.Unlock()
			written[key] = append(written[key], value)
			return nil
		}
	})

	pool.Queue("item1", "v1")
	pool.Queue("item1", "v2")
	pool.Queue("item2", "w1")
	assert.Equal(t, 2, pool.PendingCount())

	pool.FlushAll()

	mu.Lock()
	defer mu.Unlock()
	// Mỗi khóa một writer riêng: item1 chỉ ghi payload cuối, item2 độc lập
	assert.Equal(t, []interface{}{"v2"}, written["item1"])
	assert.Equal(t, []interface{}{"w1"}, written["item2"])
	assert.Equal(t, 0, pool.PendingCount())
	assert.NoError(t, pool.LastError())
}

func TestComputeSyncStatusPriority(t *testing.T) {
	err := errors.New("boom")

	// error thắng tất cả
	assert.Equal(t, SyncError, ComputeSyncStatus(false, 5, err))
	// offline thắng saving
	assert.Equal(t, SyncOffline, ComputeSyncStatus(false, 5, nil))
	// saving khi còn ghi chờ
	assert.Equal(t, SyncSaving, ComputeSyncStatus(true, 1, nil))
	// saved khi yên ắng
	assert.Equal(t, SyncSaved, ComputeSyncStatus(true, 0, nil))
}
