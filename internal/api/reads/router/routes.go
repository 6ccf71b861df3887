// Package router đăng ký các route dấu đọc / dấu xem.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"content_planner/internal/api/middleware"
	readshdl "content_planner/internal/api/reads/handler"
	apirouter "content_planner/internal/api/router"
)

// Register đăng ký các route reads lên v1.
// Mọi route đều cần clientId (query) để kiểm tra quyền client.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	readsHandler, err := readshdl.NewReadsHandler()
	if err != nil {
		return fmt.Errorf("failed to create reads handler: %w", err)
	}

	chain := []fiber.Handler{middleware.AuthMiddleware(), middleware.RequireClientAccess()}
	apirouter.RegisterRouteWithMiddleware(v1, "/reads", "POST", "/thread/:threadId", chain, readsHandler.HandleMarkThreadRead)
	apirouter.RegisterRouteWithMiddleware(v1, "/reads", "POST", "/day/:date", chain, readsHandler.HandleMarkDaySeen)
	apirouter.RegisterRouteWithMiddleware(v1, "/reads", "GET", "/threads", chain, readsHandler.HandleThreadReadMap)
	apirouter.RegisterRouteWithMiddleware(v1, "/reads", "GET", "/days", chain, readsHandler.HandleDaySeenMap)

	return nil
}
