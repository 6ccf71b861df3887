// Package livequery cung cấp tầng đồng bộ dữ liệu sống phía server:
// live query tự refetch khi dữ liệu đổi, hàng đợi ghi autosave một slot,
// theo dõi kết nối database và trạng thái đồng bộ tổng hợp.
package livequery

import (
	"context"
	"sync"
	"time"
)

// WriteFunc thực hiện một lần ghi autosave. Giá trị value là payload mới nhất
// tại thời điểm flush; các payload cũ hơn đã bị thay thế không bao giờ được ghi.
type WriteFunc func(ctx context.Context, value interface{}) error

// SingleSlotWriter là hàng đợi ghi một slot cho autosave.
// Mỗi lần Queue thay thế payload đang chờ (nếu có) thay vì xếp hàng,
// nên một chuỗi gõ phím liên tục chỉ sinh ra một lần ghi sau khi người dùng
// ngừng gõ đủ lâu (quiet delay). Ghi thất bại giữ lại lỗi để đọc qua LastError.
type SingleSlotWriter struct {
	mu         sync.Mutex
	write      WriteFunc
	quietDelay time.Duration

	pending   interface{}
	hasPend   bool
	timer     *time.Timer
	inFlight  bool
	lastError error
	closed    bool
}

// NewSingleSlotWriter tạo writer với quiet delay cho trước.
// quietDelay <= 0 nghĩa là flush ngay lập tức ở lần Queue kế tiếp.
func NewSingleSlotWriter(quietDelay time.Duration, write WriteFunc) *SingleSlotWriter {
	return &SingleSlotWriter{
		write:      write,
		quietDelay: quietDelay,
	}
}

// Queue thay payload đang chờ bằng payload mới và hẹn lại đồng hồ quiet delay.
// Không chặn: lần ghi thật diễn ra ở goroutine nền sau khi hết quiet delay.
func (w *SingleSlotWriter) Queue(value interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.pending = value
	w.hasPend = true

	if w.timer != nil {
		w.timer.Stop()
	}
	if w.quietDelay <= 0 {
		w.timer = nil
		go w.flush()
		return
	}
	w.timer = time.AfterFunc(w.quietDelay, w.flush)
}

// Flush ghi ngay payload đang chờ (nếu có) và đợi ghi xong.
// Dùng khi teardown hoặc trong test để không phải chờ quiet delay.
func (w *SingleSlotWriter) Flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.flush()

	// Nếu một lần ghi khác đang chạy, đợi nó xong rồi ghi nốt payload mới (nếu có)
	for {
		w.mu.Lock()
		busy := w.inFlight
		pending := w.hasPend
		w.mu.Unlock()
		if !busy && !pending {
			return
		}
		if !busy && pending {
			w.flush()
			continue
		}
		time.Sleep(time.Millisecond)
	}
}

// HasPending trả về true nếu còn payload chưa ghi hoặc đang ghi
func (w *SingleSlotWriter) HasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hasPend || w.inFlight
}

// LastError trả về lỗi của lần ghi gần nhất (nil nếu thành công)
func (w *SingleSlotWriter) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// Close dừng writer: ghi nốt payload đang chờ rồi từ chối Queue mới
func (w *SingleSlotWriter) Close() {
	w.Flush()
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

// flush lấy payload đang chờ ra và ghi. Nếu một lần ghi khác đang chạy thì
// bỏ qua: lần ghi đó xong sẽ tự flush tiếp nếu còn payload.
func (w *SingleSlotWriter) flush() {
	w.mu.Lock()
	if w.inFlight || !w.hasPend {
		w.mu.Unlock()
		return
	}
	value := w.pending
	w.pending = nil
	w.hasPend = false
	w.inFlight = true
	w.mu.Unlock()

	err := w.write(context.Background(), value)

	w.mu.Lock()
	w.lastError = err
	w.inFlight = false
	again := w.hasPend
	w.mu.Unlock()

	// Trong lúc ghi có payload mới đến thì ghi tiếp
	if again {
		w.flush()
	}
}

// WriterPool quản lý một SingleSlotWriter cho mỗi khóa (ví dụ mỗi item id),
// để autosave của các item khác nhau không chặn nhau.
type WriterPool struct {
	mu         sync.Mutex
	writers    map[string]*SingleSlotWriter
	quietDelay time.Duration
	write      func(key string) WriteFunc
}

// NewWriterPool tạo pool; write(key) trả về hàm ghi cho từng khóa.
func NewWriterPool(quietDelay time.Duration, write func(key string) WriteFunc) *WriterPool {
	return &WriterPool{
		writers:    make(map[string]*SingleSlotWriter),
		quietDelay: quietDelay,
		write:      write,
	}
}

// Queue đẩy payload vào writer của khóa tương ứng (tạo mới nếu chưa có)
func (p *WriterPool) Queue(key string, value interface{}) {
	p.mu.Lock()
	w, ok := p.writers[key]
	if !ok {
		w = NewSingleSlotWriter(p.quietDelay, p.write(key))
		p.writers[key] = w
	}
	p.mu.Unlock()
	w.Queue(value)
}

// FlushAll ghi nốt mọi payload đang chờ của tất cả writer
func (p *WriterPool) FlushAll() {
	p.mu.Lock()
	list := make([]*SingleSlotWriter, 0, len(p.writers))
	for _, w := range p.writers {
		list = append(list, w)
	}
	p.mu.Unlock()
	for _, w := range list {
		w.Flush()
	}
}

// PendingCount đếm số writer còn payload chưa ghi
func (p *WriterPool) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, w := range p.writers {
		if w.HasPending() {
			n++
		}
	}
	return n
}

// LastError trả về lỗi đầu tiên tìm thấy trong các writer (nil nếu không có)
func (p *WriterPool) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.writers {
		if err := w.LastError(); err != nil {
			return err
		}
	}
	return nil
}
