// Package router đăng ký các route của lịch nội dung: client, post, event, paid và view tháng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"content_planner/internal/api/middleware"
	plannerhdl "content_planner/internal/api/planner/handler"
	apirouter "content_planner/internal/api/router"
)

// itemCRUDConfig là config CRUD generic cho các item trên lịch:
// chỉ đọc + xóa theo id; tạo và cập nhật đi qua route riêng để
// monthKey, normalize và attribution luôn được service xử lý.
var itemCRUDConfig = apirouter.CRUDConfig{
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	DelById: true,
	Count:   true, Exists: true,
	ClientScoped: true,
}

// Register đăng ký tất cả route planner lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	clientHandler, err := plannerhdl.NewClientHandler()
	if err != nil {
		return fmt.Errorf("failed to create client handler: %w", err)
	}
	postHandler, err := plannerhdl.NewPostHandler()
	if err != nil {
		return fmt.Errorf("failed to create post handler: %w", err)
	}
	eventHandler, err := plannerhdl.NewEventHandler()
	if err != nil {
		return fmt.Errorf("failed to create event handler: %w", err)
	}
	paidHandler, err := plannerhdl.NewPaidHandler()
	if err != nil {
		return fmt.Errorf("failed to create paid handler: %w", err)
	}
	viewHandler, err := plannerhdl.NewViewHandler()
	if err != nil {
		return fmt.Errorf("failed to create view handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authChain := []fiber.Handler{authMiddleware}
	adminChain := []fiber.Handler{authMiddleware, middleware.RequireAdmin()}
	scopedChain := []fiber.Handler{authMiddleware, middleware.RequireClientAccess()}

	// Client: mọi user đọc client của mình; cấu hình client là việc của admin.
	// Client không có route xóa — client không bao giờ bị xóa cứng.
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "GET", "/my", authChain, clientHandler.HandleListMy)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "GET", "/get/:id", authChain, clientHandler.HandleGetById)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "POST", "/create", adminChain, clientHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "PUT", "/settings/:id", adminChain, clientHandler.HandleUpdateSettings)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "GET", "/find", adminChain, clientHandler.Find)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "GET", "/find-with-pagination", adminChain, clientHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/client", "GET", "/count", adminChain, clientHandler.CountDocuments)

	// Post: route nghiệp vụ riêng + CRUD đọc/xóa generic
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "POST", "/create", scopedChain, postHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "GET", "/by-month", scopedChain, postHandler.HandleFindByMonth)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "PUT", "/update/:id", scopedChain, postHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "POST", "/duplicate/:id", scopedChain, postHandler.HandleDuplicate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "PUT", "/approval/:id", scopedChain, postHandler.HandleToggleApproval)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/post", "PUT", "/comment/:id", scopedChain, postHandler.HandleComment)
	r.RegisterCRUDRoutes(v1, "/planner/post", postHandler, itemCRUDConfig)

	// Event: như post nhưng không có khối duyệt
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/event", "POST", "/create", scopedChain, eventHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/event", "GET", "/by-month", scopedChain, eventHandler.HandleFindByMonth)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/event", "PUT", "/update/:id", scopedChain, eventHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/event", "POST", "/duplicate/:id", scopedChain, eventHandler.HandleDuplicate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/event", "PUT", "/comment/:id", scopedChain, eventHandler.HandleComment)
	r.RegisterCRUDRoutes(v1, "/planner/event", eventHandler, itemCRUDConfig)

	// Paid: như post nhưng duyệt không áp dụng
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/paid", "POST", "/create", scopedChain, paidHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/paid", "GET", "/by-month", scopedChain, paidHandler.HandleFindByMonth)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/paid", "PUT", "/update/:id", scopedChain, paidHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/paid", "POST", "/duplicate/:id", scopedChain, paidHandler.HandleDuplicate)
	apirouter.RegisterRouteWithMiddleware(v1, "/planner/paid", "PUT", "/comment/:id", scopedChain, paidHandler.HandleComment)
	r.RegisterCRUDRoutes(v1, "/planner/paid", paidHandler, itemCRUDConfig)

	// View tháng: các endpoint dẫn xuất (lưới lịch, chấm cập nhật, chưa đọc, chọn item, tổng hợp)
	apirouter.RegisterRouteWithMiddleware(v1, "/view", "GET", "/calendar", scopedChain, viewHandler.HandleCalendar)
	apirouter.RegisterRouteWithMiddleware(v1, "/view", "GET", "/day-updates", scopedChain, viewHandler.HandleDayUpdates)
	apirouter.RegisterRouteWithMiddleware(v1, "/view", "GET", "/unread", scopedChain, viewHandler.HandleUnread)
	apirouter.RegisterRouteWithMiddleware(v1, "/view", "GET", "/selection", scopedChain, viewHandler.HandleSelection)
	apirouter.RegisterRouteWithMiddleware(v1, "/view", "GET", "/aggregates", scopedChain, viewHandler.HandleAggregates)

	return nil
}
