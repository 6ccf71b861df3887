package plannerhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "content_planner/internal/api/base/handler"
	plannerdto "content_planner/internal/api/planner/dto"
	models "content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
)

// PaidHandler xử lý các route hạng mục quảng cáo trả phí
type PaidHandler struct {
	basehdl.BaseHandler[models.Paid, plannerdto.PaidCreateInput, plannerdto.PaidUpdateInput]
	PaidService *plannersvc.PaidService
}

// NewPaidHandler tạo mới PaidHandler
func NewPaidHandler() (*PaidHandler, error) {
	paidService, err := plannersvc.GetPaidService()
	if err != nil {
		return nil, fmt.Errorf("failed to create paid service: %w", err)
	}

	handler := &PaidHandler{PaidService: paidService}
	handler.BaseService = paidService.BaseServiceMongoImpl
	return handler, nil
}

// HandleCreate tạo hạng mục quảng cáo mới
func (h *PaidHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.PaidCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		paid, err := h.PaidService.CreatePaid(c.Context(), &input, actor)
		h.HandleResponse(c, paid, err)
		return nil
	})
}

// HandleUpdate cập nhật từng phần một hạng mục quảng cáo
func (h *PaidHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.PaidUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		paid, err := h.PaidService.UpdateItem(c.Context(), id, &input, actor)
		h.HandleResponse(c, paid, err)
		return nil
	})
}

// HandleFindByMonth trả về các hạng mục quảng cáo của một (client, tháng)
func (h *PaidHandler) HandleFindByMonth(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		clientID, monthKey, err := parseClientMonthQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		paids, err := h.PaidService.FindByClientMonth(c.Context(), clientID, monthKey)
		h.HandleResponse(c, paids, err)
		return nil
	})
}

// HandleDuplicate nhân bản một hạng mục quảng cáo
func (h *PaidHandler) HandleDuplicate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		paid, err := h.PaidService.Duplicate(c.Context(), id, actor)
		h.HandleResponse(c, paid, err)
		return nil
	})
}

// HandleComment xếp autosave ghi chú nội bộ của một hạng mục quảng cáo
func (h *PaidHandler) HandleComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.InternalCommentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.PaidService.QueueInternalComment(id, input.Text, actor)
		h.HandleResponse(c, fiber.Map{"queued": true}, nil)
		return nil
	})
}
