package global

import (
	"content_planner/config"
	"content_planner/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Planner_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Planner_CollectionName struct {
	Users          string // Tên collection cho hồ sơ người dùng
	Clients        string // Tên collection cho client (khách hàng agency)
	Posts          string // Tên collection cho bài đăng trên lịch
	Events         string // Tên collection cho sự kiện trên lịch
	Paids          string // Tên collection cho hạng mục quảng cáo trả phí
	ChatMessages   string // Tên collection cho tin nhắn chat theo thread
	ThreadReads    string // Tên collection cho dấu đã đọc theo thread
	DaySeen        string // Tên collection cho dấu đã xem theo ngày
	MonthSnapshots string // Tên collection cho snapshot thống kê theo tháng
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_Planner_CollectionName = *new(MongoDB_Planner_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
