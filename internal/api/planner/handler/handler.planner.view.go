package plannerhdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_planner/internal/api/auth/models"
	basehdl "content_planner/internal/api/base/handler"
	"content_planner/internal/api/middleware"
	models "content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
	readssvc "content_planner/internal/api/reads/service"
	"content_planner/internal/common"
)

// ViewHandler tổng hợp dữ liệu tháng thành view state cho frontend:
// lưới lịch, chấm cập nhật theo ngày, badge chưa đọc, item được chọn và số liệu tổng hợp.
type ViewHandler struct {
	ClientService   *plannersvc.ClientService
	PostService     *plannersvc.PostService
	EventService    *plannersvc.EventService
	PaidService     *plannersvc.PaidService
	SnapshotService *plannersvc.SnapshotService
	ReadsService    *readssvc.ReadsService
}

// NewViewHandler tạo mới ViewHandler
func NewViewHandler() (*ViewHandler, error) {
	clientService, err := plannersvc.GetClientService()
	if err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}
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
	readsService, err := readssvc.GetReadsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create reads service: %w", err)
	}

	return &ViewHandler{
		ClientService:   clientService,
		PostService:     postService,
		EventService:    eventService,
		PaidService:     paidService,
		SnapshotService: snapshotService,
		ReadsService:    readsService,
	}, nil
}

// fetchMonth tải post, event và paid của một (client, tháng)
func (h *ViewHandler) fetchMonth(ctx context.Context, clientID primitive.ObjectID, monthKey string) ([]models.Post, []models.Event, []models.Paid, error) {
	posts, err := h.PostService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, nil, nil, err
	}
	events, err := h.EventService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, nil, nil, err
	}
	paids, err := h.PaidService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, nil, nil, err
	}
	return posts, events, paids, nil
}

// scopedView đọc user + (clientId, monthKey) đã qua kiểm tra quyền
func scopedView(c fiber.Ctx) (*authmodels.User, primitive.ObjectID, string, error) {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		return nil, primitive.NilObjectID, "", common.ErrTokenMissing
	}
	clientID, monthKey, err := parseClientMonthQuery(c)
	if err != nil {
		return nil, primitive.NilObjectID, "", err
	}
	return user, clientID, monthKey, nil
}

// HandleCalendar trả về lưới lịch 6x7 của một (client, tháng):
// chỉ báo item (tối đa 3 + overflow), dải event và chấm cập nhật theo ngày.
func (h *ViewHandler) HandleCalendar(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		user, clientID, monthKey, err := scopedView(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		posts, events, paids, err := h.fetchMonth(c.Context(), clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		seenMap, err := h.ReadsService.DaySeenMap(c.Context(), user.ID, clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		dayUpdates := plannersvc.DayUpdates(monthKey, posts, events, paids, seenMap)
		cells := plannersvc.BuildCalendarCells(monthKey, posts, events, paids, dayUpdates)

		basehdl.HandleResponse(c, fiber.Map{
			"monthKey": monthKey,
			"cells":    cells,
		}, nil)
		return nil
	})
}

// HandleDayUpdates trả về map khóa ngày → true cho các ngày có hoạt động user chưa xem
func (h *ViewHandler) HandleDayUpdates(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		user, clientID, monthKey, err := scopedView(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		posts, events, paids, err := h.fetchMonth(c.Context(), clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		seenMap, err := h.ReadsService.DaySeenMap(c.Context(), user.ID, clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, plannersvc.DayUpdates(monthKey, posts, events, paids, seenMap), nil)
		return nil
	})
}

// HandleUnread trả về map id item → true cho các item có tin nhắn chat user chưa đọc
func (h *ViewHandler) HandleUnread(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		user, clientID, monthKey, err := scopedView(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		posts, events, paids, err := h.fetchMonth(c.Context(), clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		readMap, err := h.ReadsService.ThreadReadMap(c.Context(), user.ID, clientID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, plannersvc.UnreadByID(posts, events, paids, readMap), nil)
		return nil
	})
}

// HandleSelection quyết định item được chọn khi mở một tháng.
// Query previousId là item user chọn lần trước (nếu có).
func (h *ViewHandler) HandleSelection(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		_, clientID, monthKey, err := scopedView(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		client, err := h.ClientService.FindByIdNormalized(c.Context(), clientID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		posts, events, paids, err := h.fetchMonth(c.Context(), clientID, monthKey)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		selection := plannersvc.ResolveSelection(c.Query("previousId"), posts, paids, events, client.EnablePaid)
		basehdl.HandleResponse(c, selection, nil)
		return nil
	})
}

// HandleAggregates trả về số liệu tổng hợp của một (client, tháng).
// Ưu tiên snapshot đã tính sẵn; snapshot chưa có hoặc đang dirty thì tính lại ngay.
func (h *ViewHandler) HandleAggregates(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		_, clientID, monthKey, err := scopedView(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		snapshot, err := h.SnapshotService.FindOne(c.Context(), map[string]interface{}{
			"clientId": clientID,
			"monthKey": monthKey,
		}, nil)
		if err == nil && !snapshot.Dirty {
			basehdl.HandleResponse(c, snapshot, nil)
			return nil
		}

		recomputed, err := h.SnapshotService.Recompute(c.Context(), clientID, monthKey)
		basehdl.HandleResponse(c, recomputed, err)
		return nil
	})
}
