// Package livehdl - tầng live của API: SSE stream thông báo thay đổi và trạng thái đồng bộ.
package livehdl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "content_planner/internal/api/base/handler"
	"content_planner/internal/api/events"
	"content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
	"content_planner/internal/common"
	"content_planner/internal/global"
	"content_planner/internal/livequery"
	"content_planner/internal/logger"
	"content_planner/internal/utility"
)

// heartbeatInterval là chu kỳ gửi comment giữ kết nối SSE
const heartbeatInterval = 15 * time.Second

// ChangeNotice là thông báo đẩy qua SSE khi dữ liệu trong scope thay đổi.
// Frontend nhận notice thì refetch phần dữ liệu tương ứng (snapshot thay nguyên khối).
type ChangeNotice struct {
	Collection string `json:"collection"`
	Operation  string `json:"operation"`
	ID         string `json:"id,omitempty"`
	MonthKey   string `json:"monthKey,omitempty"`
}

// LiveHandler xử lý SSE stream và trạng thái đồng bộ
type LiveHandler struct {
	PostService     *plannersvc.PostService
	EventService    *plannersvc.EventService
	PaidService     *plannersvc.PaidService
	SnapshotService *plannersvc.SnapshotService
}

// NewLiveHandler tạo mới LiveHandler
func NewLiveHandler() (*LiveHandler, error) {
	postService, err := plannersvc.GetPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}
	eventService, err := plannersvc.GetEventService()
	if err != nil {
		return nil, fmt.Errorf("failed to create event service: %w", err)
	}
	paidService, err := plannersvc.GetPaidService()
	if err != nil {
		return nil, fmt.Errorf("failed to create paid service: %w", err)
	}
	snapshotService, err := plannersvc.GetSnapshotService()
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot service: %w", err)
	}
	return &LiveHandler{
		PostService:     postService,
		EventService:    eventService,
		PaidService:     paidService,
		SnapshotService: snapshotService,
	}, nil
}

// onlineMonitor là monitor kết nối MongoDB dùng chung của tầng live
var (
	onlineMonitorOnce sync.Once
	onlineMonitor     *livequery.OnlineMonitor
)

// getOnlineMonitor khởi tạo (một lần) và trả về monitor kết nối
func getOnlineMonitor() *livequery.OnlineMonitor {
	onlineMonitorOnce.Do(func() {
		interval := 15 * time.Second
		if global.ServerConfig != nil && global.ServerConfig.OnlinePingInterval > 0 {
			interval = time.Duration(global.ServerConfig.OnlinePingInterval) * time.Second
		}
		onlineMonitor = livequery.NewOnlineMonitor(global.MongoDB_Session, interval)
		onlineMonitor.Start()
	})
	return onlineMonitor
}

// streamScopes dựng các scope một kết nối SSE phát notice:
// mọi collection của planner thuộc client (post/event/paid giới hạn theo tháng nếu có).
// Snapshot tổng hợp chỉ nhận notice khi không có live query theo dõi riêng.
func streamScopes(clientID primitive.ObjectID, monthKey string, includeSnapshots bool) []livequery.Scope {
	scopes := []livequery.Scope{
		{Collection: global.MongoDB_ColNames.Posts, ClientID: clientID, MonthKey: monthKey},
		{Collection: global.MongoDB_ColNames.Events, ClientID: clientID, MonthKey: monthKey},
		{Collection: global.MongoDB_ColNames.Paids, ClientID: clientID, MonthKey: monthKey},
		{Collection: global.MongoDB_ColNames.ChatMessages, ClientID: clientID},
	}
	if includeSnapshots {
		scopes = append(scopes, livequery.Scope{
			Collection: global.MongoDB_ColNames.MonthSnapshots,
			ClientID:   clientID,
			MonthKey:   monthKey,
		})
	}
	return scopes
}

// HandleStream mở SSE stream đẩy thông báo thay đổi trong scope (client, tháng).
// Mỗi notice chỉ nói "cái gì đã đổi"; frontend tự refetch để lấy dữ liệu mới.
func (h *LiveHandler) HandleStream(c fiber.Ctx) error {
	clientHex, _ := c.Locals("client_id").(string)
	if !primitive.IsValidObjectID(clientHex) {
		basehdl.HandleResponse(c, nil, common.ErrClientAccess)
		return nil
	}
	clientID := utility.String2ObjectID(clientHex)

	monthKey := c.Query("monthKey")
	if monthKey != "" && !utility.IsMonthKey(monthKey) {
		basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	// Snapshot tổng hợp tháng theo dõi qua live query: thay vì chỉ báo "đã đổi",
	// stream đẩy luôn snapshot mới cùng version để UI khỏi refetch phần này.
	aggChanged := make(chan struct{}, 1)
	var aggQuery *livequery.LiveQuery[models.MonthSnapshot]
	if monthKey != "" {
		q, err := h.watchAggregates(context.Background(), clientID, monthKey, aggChanged)
		if err != nil {
			logger.GetAppLogger().WithError(err).WithField("client_id", clientHex).
				Warn("⚠️ [LIVE] failed to watch month aggregates, falling back to change notices")
		} else {
			aggQuery = q
		}
	}

	scopes := streamScopes(clientID, monthKey, aggQuery == nil)

	// Buffer đủ rộng để một đợt ghi dồn dập không chặn EmitDataChanged;
	// notice bị rớt không mất dữ liệu vì frontend refetch theo notice kế tiếp.
	notices := make(chan ChangeNotice, 64)
	unsubscribe := events.OnDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		for _, scope := range scopes {
			if scope.Matches(e) {
				notice := ChangeNotice{
					Collection: e.CollectionName,
					Operation:  e.Operation,
				}
				if id := events.GetObjectIDField(e.Document, "ID"); !id.IsZero() {
					notice.ID = id.Hex()
				}
				if mk := events.GetStringField(e.Document, "MonthKey"); mk != "" {
					notice.MonthKey = mk
				}
				select {
				case notices <- notice:
				default:
				}
				return
			}
		}
	})

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.RequestCtx().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		if aggQuery != nil {
			defer aggQuery.Close()
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		// Chào kết nối để client biết stream đã mở
		if _, err := fmt.Fprintf(w, ": connected %s\n\n", utility.NowISO()); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}

		// Snapshot tổng hợp hiện có đẩy ngay khi mở stream
		if aggQuery != nil {
			if frame := aggregatesFrame(aggQuery.Snapshot(), aggQuery.Version()); frame != nil {
				if _, err := w.Write(frame); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}

		for {
			select {
			case notice := <-notices:
				payload, err := json.Marshal(notice)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					// Client đã ngắt kết nối
					return
				}
			case <-aggChanged:
				if aggQuery == nil {
					continue
				}
				frame := aggregatesFrame(aggQuery.Snapshot(), aggQuery.Version())
				if frame == nil {
					continue
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	logger.GetAppLogger().WithField("client_id", clientHex).Debug("🔌 [LIVE] SSE stream opened")
	return nil
}

// HandleSyncStatus trả về trạng thái đồng bộ tổng hợp: error > offline > saving > saved
func (h *LiveHandler) HandleSyncStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		monitor := getOnlineMonitor()

		pending := h.PostService.PendingComments() +
			h.EventService.PendingComments() +
			h.PaidService.PendingComments()

		var lastErr error
		for _, err := range []error{
			h.PostService.LastCommentError(),
			h.EventService.LastCommentError(),
			h.PaidService.LastCommentError(),
		} {
			if err != nil {
				lastErr = err
				break
			}
		}

		status := livequery.ComputeSyncStatus(monitor.IsOnline(), pending, lastErr)
		payload := fiber.Map{
			"status":        status,
			"online":        monitor.IsOnline(),
			"pendingWrites": pending,
		}
		if lastErr != nil {
			payload["lastError"] = lastErr.Error()
		}

		basehdl.HandleResponse(c, payload, nil)
		return nil
	})
}
