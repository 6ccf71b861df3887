// Package worker chứa các tiến trình nền của server.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	plannersvc "content_planner/internal/api/planner/service"
	"content_planner/internal/api/events"
	"content_planner/internal/global"
	"content_planner/internal/logger"
	"content_planner/internal/utility"
)

// SnapshotWorker giữ số liệu tổng hợp theo (client, tháng) luôn tiệm cận đúng.
// Mỗi thay đổi trên planner chỉ đánh dấu snapshot dirty (rẻ); worker quét và
// tính lại theo chu kỳ nên chuỗi ghi dồn dập chỉ tốn một lần tính.
type SnapshotWorker struct {
	snapshotService *plannersvc.SnapshotService
	interval        time.Duration

	unsubscribe func()
	stop        chan struct{}
	stopped     atomic.Bool
}

// NewSnapshotWorker tạo worker với chu kỳ từ config
func NewSnapshotWorker() (*SnapshotWorker, error) {
	snapshotService, err := plannersvc.GetSnapshotService()
	if err != nil {
		return nil, err
	}

	interval := 60 * time.Second
	if global.ServerConfig != nil && global.ServerConfig.SnapshotWorkerInterval > 0 {
		interval = time.Duration(global.ServerConfig.SnapshotWorkerInterval) * time.Second
	}

	return &SnapshotWorker{
		snapshotService: snapshotService,
		interval:        interval,
		stop:            make(chan struct{}),
	}, nil
}

// watchedCollections là các collection mà thay đổi làm snapshot tháng cũ đi
func watchedCollections() map[string]bool {
	return map[string]bool{
		global.MongoDB_ColNames.Posts:  true,
		global.MongoDB_ColNames.Events: true,
		global.MongoDB_ColNames.Paids:  true,
	}
}

// Start đăng ký lắng nghe thay đổi và chạy vòng tính lại nền
func (w *SnapshotWorker) Start() {
	watched := watchedCollections()

	w.unsubscribe = events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if !watched[e.CollectionName] {
			return
		}

		clientID := events.GetClientIDFromDocument(e.Document)
		monthKey := events.GetStringField(e.Document, "MonthKey")
		if clientID.IsZero() || !utility.IsMonthKey(monthKey) {
			return
		}

		// Dùng context nền: request gốc có thể đã kết thúc khi handler chạy
		if err := w.snapshotService.MarkDirty(context.Background(), clientID, monthKey); err != nil {
			logger.GetErrorLogger().WithError(err).Warn("⚠️ [WORKER] Đánh dấu snapshot dirty thất bại")
		}
	})

	go w.loop()
	logger.GetAppLogger().WithField("interval", w.interval.String()).Info("🚀 [WORKER] Snapshot worker đã khởi động")
}

// Stop dừng worker và hủy đăng ký sự kiện
func (w *SnapshotWorker) Stop() {
	if w.stopped.CompareAndSwap(false, true) {
		if w.unsubscribe != nil {
			w.unsubscribe()
		}
		close(w.stop)
	}
}

func (w *SnapshotWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce()
		case <-w.stop:
			return
		}
	}
}

// runOnce tính lại tất cả snapshot đang dirty
func (w *SnapshotWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	done, err := w.snapshotService.RecomputeDirty(ctx)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Warn("⚠️ [WORKER] Tính lại snapshot gặp lỗi")
	}
	if done > 0 {
		logger.GetAppLogger().WithField("count", done).Debug("📊 [WORKER] Đã tính lại snapshot tháng")
	}
}
