// Package chathdl - handler chat theo thread của từng item trên lịch.
package chathdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "content_planner/internal/api/base/handler"
	chatdto "content_planner/internal/api/chat/dto"
	models "content_planner/internal/api/chat/models"
	chatsvc "content_planner/internal/api/chat/service"
	"content_planner/internal/api/middleware"
	"content_planner/internal/common"
	"content_planner/internal/utility"
)

// ChatHandler xử lý các route chat
type ChatHandler struct {
	basehdl.BaseHandler[models.ChatMessage, chatdto.SendMessageInput, chatdto.SendMessageInput]
	ChatService *chatsvc.ChatService
}

// NewChatHandler tạo mới ChatHandler
func NewChatHandler() (*ChatHandler, error) {
	chatService, err := chatsvc.NewChatService()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	handler := &ChatHandler{ChatService: chatService}
	handler.BaseService = chatService.BaseServiceMongoImpl
	return handler, nil
}

// parseThreadParams đọc và kiểm tra threadType + threadId từ URL
func (h *ChatHandler) parseThreadParams(c fiber.Ctx) (string, primitive.ObjectID, error) {
	threadType := c.Params("threadType")
	if !models.IsValidThreadType(threadType) {
		return "", primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Loại thread '%s' không hợp lệ (post, event hoặc paid)", threadType),
			common.StatusBadRequest,
			nil,
		)
	}

	threadID := c.Params("threadId")
	if !primitive.IsValidObjectID(threadID) {
		return "", primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("threadId '%s' không đúng định dạng MongoDB ObjectID", threadID),
			common.StatusBadRequest,
			nil,
		)
	}

	return threadType, utility.String2ObjectID(threadID), nil
}

// HandleListMessages trả về tin nhắn của một thread theo thứ tự thời gian
func (h *ChatHandler) HandleListMessages(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		threadType, threadID, err := h.parseThreadParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		messages, err := h.ChatService.ListMessages(c.Context(), threadType, threadID)
		h.HandleResponse(c, messages, err)
		return nil
	})
}

// HandleSendMessage thêm tin nhắn vào thread của một item
func (h *ChatHandler) HandleSendMessage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user := middleware.GetUserFromContext(c)
		if user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		threadType, threadID, err := h.parseThreadParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input chatdto.SendMessageInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		message, err := h.ChatService.SendMessage(c.Context(), threadType, threadID, input.ClientID, input.Text, user)
		h.HandleResponse(c, message, err)
		return nil
	})
}
