// Package authhdl - handler người dùng và phân quyền.
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "content_planner/internal/api/auth/dto"
	models "content_planner/internal/api/auth/models"
	authsvc "content_planner/internal/api/auth/service"
	basehdl "content_planner/internal/api/base/handler"
	"content_planner/internal/api/middleware"
	"content_planner/internal/common"
	"content_planner/internal/utility"
)

// UserHandler xử lý các route liên quan đến người dùng.
// Embed BaseHandler để admin có sẵn các route CRUD (list, find, ...).
type UserHandler struct {
	basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	UserService *authsvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	handler := &UserHandler{UserService: userService}
	handler.BaseService = userService.BaseServiceMongoImpl
	return handler, nil
}

// HandleGetProfile trả về profile của user hiện tại (đã xác thực).
// Frontend gọi sau khi đăng nhập Firebase để lấy roles/allowedClients/preferredClientId.
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user := middleware.GetUserFromContext(c)
		if user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleSetPreferredClient ghi nhớ client user đang làm việc
func (h *UserHandler) HandleSetPreferredClient(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user := middleware.GetUserFromContext(c)
		if user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input authdto.SetPreferredClientInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		clientID, err := primitive.ObjectIDFromHex(input.ClientID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"clientId không đúng định dạng MongoDB ObjectID",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		updated, err := h.UserService.SetPreferredClient(c.Context(), user, clientID)
		if err == nil {
			middleware.GetAuthManager().InvalidateUser(user.FirebaseUID)
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleUpdateUserAccess admin cập nhật vai trò / danh sách client của một user
func (h *UserHandler) HandleUpdateUserAccess(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
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

		var input authdto.UserUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updated, err := h.UserService.UpdateAccess(c.Context(), utility.String2ObjectID(id), &input)
		if err == nil && updated != nil {
			middleware.GetAuthManager().InvalidateUser(updated.FirebaseUID)
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleBlockUser admin khóa một user kèm ghi chú lý do
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var input authdto.BlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updated, err := h.UserService.BlockUser(c.Context(), utility.String2ObjectID(id), input.Note)
		if err == nil && updated != nil {
			middleware.GetAuthManager().InvalidateUser(updated.FirebaseUID)
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleUnBlockUser admin mở khóa một user
func (h *UserHandler) HandleUnBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		updated, err := h.UserService.UnblockUser(c.Context(), utility.String2ObjectID(id))
		if err == nil && updated != nil {
			middleware.GetAuthManager().InvalidateUser(updated.FirebaseUID)
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}
