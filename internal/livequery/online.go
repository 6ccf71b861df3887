package livequery

import (
	"context"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"content_planner/internal/logger"
)

// OnlineMonitor theo dõi kết nối MongoDB bằng ping định kỳ.
// Trạng thái online/offline cấp tín hiệu cho ComputeSyncStatus.
type OnlineMonitor struct {
	client   *mongo.Client
	interval time.Duration
	online   atomic.Bool
	stop     chan struct{}
	stopped  atomic.Bool
}

// NewOnlineMonitor tạo monitor; gọi Start để bắt đầu ping.
func NewOnlineMonitor(client *mongo.Client, interval time.Duration) *OnlineMonitor {
	m := &OnlineMonitor{
		client:   client,
		interval: interval,
		stop:     make(chan struct{}),
	}
	// Giả định online cho đến khi ping đầu tiên nói khác
	m.online.Store(true)
	return m
}

// IsOnline trả về trạng thái kết nối theo lần ping gần nhất
func (m *OnlineMonitor) IsOnline() bool {
	return m.online.Load()
}

// Start chạy vòng ping nền. Gọi Stop để dừng.
func (m *OnlineMonitor) Start() {
	go m.loop()
}

// Stop dừng vòng ping
func (m *OnlineMonitor) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stop)
	}
}

func (m *OnlineMonitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.ping()
	for {
		select {
		case <-ticker.C:
			m.ping()
		case <-m.stop:
			return
		}
	}
}

func (m *OnlineMonitor) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.client.Ping(ctx, readpref.Primary())
	wasOnline := m.online.Load()
	nowOnline := err == nil
	m.online.Store(nowOnline)

	// Chỉ log khi trạng thái đổi để không spam log
	if appLogger := logger.GetAppLogger(); appLogger != nil && wasOnline != nowOnline {
		if nowOnline {
			appLogger.Info("✅ [LIVE] Kết nối MongoDB đã phục hồi")
		} else {
			appLogger.WithError(err).Warn("⚠️ [LIVE] Mất kết nối MongoDB")
		}
	}
}
