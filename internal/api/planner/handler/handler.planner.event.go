package plannerhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "content_planner/internal/api/base/handler"
	plannerdto "content_planner/internal/api/planner/dto"
	models "content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
)

// EventHandler xử lý các route event trên lịch
type EventHandler struct {
	basehdl.BaseHandler[models.Event, plannerdto.EventCreateInput, plannerdto.EventUpdateInput]
	EventService *plannersvc.EventService
}

// NewEventHandler tạo mới EventHandler
func NewEventHandler() (*EventHandler, error) {
	eventService, err := plannersvc.GetEventService()
	if err != nil {
		return nil, fmt.Errorf("failed to create event service: %w", err)
	}

	handler := &EventHandler{EventService: eventService}
	handler.BaseService = eventService.BaseServiceMongoImpl
	return handler, nil
}

// HandleCreate tạo event mới trên lịch
func (h *EventHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.EventCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		event, err := h.EventService.CreateEvent(c.Context(), &input, actor)
		h.HandleResponse(c, event, err)
		return nil
	})
}

// HandleUpdate cập nhật từng phần một event
func (h *EventHandler) HandleUpdate(c fiber.Ctx) error {
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

		var input plannerdto.EventUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		event, err := h.EventService.UpdateItem(c.Context(), id, &input, actor)
		h.HandleResponse(c, event, err)
		return nil
	})
}

// HandleFindByMonth trả về các event của một (client, tháng)
func (h *EventHandler) HandleFindByMonth(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		clientID, monthKey, err := parseClientMonthQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		events, err := h.EventService.FindByClientMonth(c.Context(), clientID, monthKey)
		h.HandleResponse(c, events, err)
		return nil
	})
}

// HandleDuplicate nhân bản một event
func (h *EventHandler) HandleDuplicate(c fiber.Ctx) error {
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

		event, err := h.EventService.Duplicate(c.Context(), id, actor)
		h.HandleResponse(c, event, err)
		return nil
	})
}

// HandleComment xếp autosave ghi chú nội bộ của một event
func (h *EventHandler) HandleComment(c fiber.Ctx) error {
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

		h.EventService.QueueInternalComment(id, input.Text, actor)
		h.HandleResponse(c, fiber.Map{"queued": true}, nil)
		return nil
	})
}
