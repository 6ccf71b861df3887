// Package router đăng ký các route live (SSE, trạng thái đồng bộ).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	livehdl "content_planner/internal/api/live/handler"
	"content_planner/internal/api/middleware"
	apirouter "content_planner/internal/api/router"
)

// Register đăng ký các route live lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	liveHandler, err := livehdl.NewLiveHandler()
	if err != nil {
		return fmt.Errorf("failed to create live handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	scopedChain := []fiber.Handler{authMiddleware, middleware.RequireClientAccess()}

	apirouter.RegisterRouteWithMiddleware(v1, "/live", "GET", "/stream", scopedChain, liveHandler.HandleStream)
	apirouter.RegisterRouteWithMiddleware(v1, "/live", "GET", "/sync-status", []fiber.Handler{authMiddleware}, liveHandler.HandleSyncStatus)

	return nil
}
