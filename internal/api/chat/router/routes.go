// Package router đăng ký các route chat.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	chathdl "content_planner/internal/api/chat/handler"
	"content_planner/internal/api/middleware"
	apirouter "content_planner/internal/api/router"
)

// Register đăng ký các route chat lên v1.
// Mọi route đều cần clientId (query hoặc body) để kiểm tra quyền client.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	chatHandler, err := chathdl.NewChatHandler()
	if err != nil {
		return fmt.Errorf("failed to create chat handler: %w", err)
	}

	chain := []fiber.Handler{middleware.AuthMiddleware(), middleware.RequireClientAccess()}
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/:threadType/:threadId/messages", chain, chatHandler.HandleListMessages)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/:threadType/:threadId/messages", chain, chatHandler.HandleSendMessage)

	return nil
}
