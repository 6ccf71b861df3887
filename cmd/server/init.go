package main

import (
	"context"

	"content_planner/config"
	authmodels "content_planner/internal/api/auth/models"
	chatmodels "content_planner/internal/api/chat/models"
	plannermodels "content_planner/internal/api/planner/models"
	readsmodels "content_planner/internal/api/reads/models"
	"content_planner/internal/database"
	"content_planner/internal/global"
	"content_planner/internal/utility"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"

	// Planner: client + ba loại item trên lịch + snapshot tháng
	global.MongoDB_ColNames.Clients = "planner_clients"
	global.MongoDB_ColNames.Posts = "planner_posts"
	global.MongoDB_ColNames.Events = "planner_events"
	global.MongoDB_ColNames.Paids = "planner_paids"
	global.MongoDB_ColNames.MonthSnapshots = "planner_month_snapshots"

	// Chat theo thread và dấu đã đọc / đã xem của từng user
	global.MongoDB_ColNames.ChatMessages = "chat_messages"
	global.MongoDB_ColNames.ThreadReads = "user_reads"
	global.MongoDB_ColNames.DaySeen = "user_day_seen"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, exists, iso_date, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Clients), plannermodels.Client{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Posts), plannermodels.Post{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Events), plannermodels.Event{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Paids), plannermodels.Paid{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.MonthSnapshots), plannermodels.MonthSnapshot{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ChatMessages), chatmodels.ChatMessage{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ThreadReads), readsmodels.ThreadRead{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.DaySeen), readsmodels.DaySeen{})

	// Index compound cho query theo (client, tháng) và các ràng buộc unique
	if err := database.CreatePlannerIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create planner indexes: %v", err)
	}
}

// initFirebase khởi tạo Firebase Admin SDK.
// Thiếu cấu hình thì chỉ cảnh báo: server vẫn chạy được, các route cần auth sẽ từ chối token.
func initFirebase() {
	cfg := global.ServerConfig

	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, chỉ log warning để hệ thống vẫn chạy được
		return
	}

	logrus.Info("Initialized Firebase Admin SDK")
}
