// Package router đăng ký các route thuộc domain auth: profile cá nhân và quản trị user.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "content_planner/internal/api/auth/handler"
	"content_planner/internal/api/middleware"
	apirouter "content_planner/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()

	// Profile cá nhân: chỉ cần xác thực
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/preferred-client", []fiber.Handler{authMiddleware}, userHandler.HandleSetPreferredClient)

	// Quản trị user: chỉ admin
	adminChain := []fiber.Handler{authMiddleware, adminMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "PUT", "/access/:id", adminChain, userHandler.HandleUpdateUserAccess)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "POST", "/block/:id", adminChain, userHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "POST", "/unblock/:id", adminChain, userHandler.HandleUnBlockUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "GET", "/find", adminChain, userHandler.Find)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "GET", "/find-by-id/:id", adminChain, userHandler.FindOneById)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "GET", "/find-with-pagination", adminChain, userHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "GET", "/count", adminChain, userHandler.CountDocuments)

	return nil
}
