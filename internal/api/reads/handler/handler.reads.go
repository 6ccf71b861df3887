// Package readshdl - handler dấu đọc thread và dấu xem ngày.
package readshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "content_planner/internal/api/base/handler"
	"content_planner/internal/api/middleware"
	readssvc "content_planner/internal/api/reads/service"
	"content_planner/internal/common"
	"content_planner/internal/utility"
)

// ReadsHandler xử lý các route dấu đọc / dấu xem
type ReadsHandler struct {
	ReadsService *readssvc.ReadsService
}

// NewReadsHandler tạo mới ReadsHandler
func NewReadsHandler() (*ReadsHandler, error) {
	readsService, err := readssvc.GetReadsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create reads service: %w", err)
	}
	return &ReadsHandler{ReadsService: readsService}, nil
}

// scopedUser lấy user đã xác thực và clientId đã qua kiểm tra quyền
func scopedUser(c fiber.Ctx) (userID primitive.ObjectID, clientID primitive.ObjectID, err error) {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrTokenMissing
	}

	clientHex, _ := c.Locals("client_id").(string)
	if !primitive.IsValidObjectID(clientHex) {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrClientAccess
	}
	return user.ID, utility.String2ObjectID(clientHex), nil
}

// HandleMarkThreadRead đánh dấu user đã đọc thread của một item
func (h *ReadsHandler) HandleMarkThreadRead(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, clientID, err := scopedUser(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		threadID := c.Params("threadId")
		if !primitive.IsValidObjectID(threadID) {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("threadId '%s' không đúng định dạng MongoDB ObjectID", threadID),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		receipt, err := h.ReadsService.MarkThreadRead(c.Context(), userID, clientID, utility.String2ObjectID(threadID))
		basehdl.HandleResponse(c, receipt, err)
		return nil
	})
}

// HandleMarkDaySeen đánh dấu user đã xem một ngày của lịch
func (h *ReadsHandler) HandleMarkDaySeen(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, clientID, err := scopedUser(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		date := c.Params("date")
		if !utility.IsDateKey(date) {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Ngày '%s' không đúng định dạng YYYY-MM-DD", date),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		mark, err := h.ReadsService.MarkDaySeen(c.Context(), userID, clientID, date)
		basehdl.HandleResponse(c, mark, err)
		return nil
	})
}

// HandleThreadReadMap trả về dấu đọc của user trong một client (threadId → lastReadAt)
func (h *ReadsHandler) HandleThreadReadMap(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, clientID, err := scopedUser(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		readMap, err := h.ReadsService.ThreadReadMap(c.Context(), userID, clientID)
		basehdl.HandleResponse(c, readMap, err)
		return nil
	})
}

// HandleDaySeenMap trả về dấu xem ngày của user trong một (client, tháng)
func (h *ReadsHandler) HandleDaySeenMap(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, clientID, err := scopedUser(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		monthKey := c.Query("monthKey")
		if !utility.IsMonthKey(monthKey) {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("monthKey '%s' không đúng định dạng YYYY-MM", monthKey),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		seenMap, err := h.ReadsService.DaySeenMap(c.Context(), userID, clientID, monthKey)
		basehdl.HandleResponse(c, seenMap, err)
		return nil
	})
}
