// Package plannerhdl - handler của các entity lịch nội dung.
package plannerhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "content_planner/internal/api/base/handler"
	"content_planner/internal/api/middleware"
	plannerdto "content_planner/internal/api/planner/dto"
	models "content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
	"content_planner/internal/common"
	"content_planner/internal/utility"
)

// ClientHandler xử lý các route client.
// Embed BaseHandler để admin có sẵn các route đọc generic (find, paginate, count).
type ClientHandler struct {
	basehdl.BaseHandler[models.Client, plannerdto.ClientCreateInput, plannerdto.ClientUpdateInput]
	ClientService *plannersvc.ClientService
}

// NewClientHandler tạo mới ClientHandler
func NewClientHandler() (*ClientHandler, error) {
	clientService, err := plannersvc.GetClientService()
	if err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}

	handler := &ClientHandler{ClientService: clientService}
	handler.BaseService = clientService.BaseServiceMongoImpl
	return handler, nil
}

// HandleListMy trả về danh sách client user hiện tại được phép truy cập
func (h *ClientHandler) HandleListMy(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user := middleware.GetUserFromContext(c)
		if user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		clients, err := h.ClientService.FindAccessible(c.Context(), user)
		h.HandleResponse(c, clients, err)
		return nil
	})
}

// HandleGetById trả về một client nếu user có quyền truy cập
func (h *ClientHandler) HandleGetById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user := middleware.GetUserFromContext(c)
		if user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		clientID := utility.String2ObjectID(id)
		if !user.CanAccessClient(clientID) {
			h.HandleResponse(c, nil, common.ErrClientAccess)
			return nil
		}

		client, err := h.ClientService.FindByIdNormalized(c.Context(), clientID)
		h.HandleResponse(c, client, err)
		return nil
	})
}

// HandleCreate tạo client mới (chỉ admin)
func (h *ClientHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input plannerdto.ClientCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		client, err := h.ClientService.CreateClient(c.Context(), &input)
		h.HandleResponse(c, client, err)
		return nil
	})
}

// HandleUpdateSettings cập nhật cấu hình client (chỉ admin)
func (h *ClientHandler) HandleUpdateSettings(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var input plannerdto.ClientUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		client, err := h.ClientService.UpdateSettings(c.Context(), utility.String2ObjectID(id), &input)
		h.HandleResponse(c, client, err)
		return nil
	})
}
