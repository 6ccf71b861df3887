// Package database - Index cho các collection của planner (compound, unique).
package database

import (
	"context"
	"strings"

	"content_planner/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePlannerIndexes tạo index cho toàn bộ collection của planner.
// Gọi một lần khi khởi động server (InitMode hoặc lần chạy đầu).
func CreatePlannerIndexes(ctx context.Context, db *mongo.Database) error {
	// auth_users: firebaseUid unique — mỗi tài khoản Firebase một hồ sơ
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
		Options: options.Index().SetName("user_firebase_uid").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// planner_posts: (clientId, monthKey, date) — query tháng, sort theo ngày
	posts := db.Collection(global.MongoDB_ColNames.Posts)
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "monthKey", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("post_client_month_date"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// planner_events: (clientId, monthKey, date)
	events := db.Collection(global.MongoDB_ColNames.Events)
	if _, err := events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "monthKey", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("event_client_month_date"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// planner_paids: (clientId, monthKey, startDate)
	paids := db.Collection(global.MongoDB_ColNames.Paids)
	if _, err := paids.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "monthKey", Value: 1},
			{Key: "startDate", Value: 1},
		},
		Options: options.Index().SetName("paid_client_month_start"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// chat_messages: (clientId, threadType, threadId, createdAt) — đọc thread tăng dần
	chat := db.Collection(global.MongoDB_ColNames.ChatMessages)
	if _, err := chat.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "threadType", Value: 1},
			{Key: "threadId", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("chat_client_thread_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// user_reads: (userId, threadId) unique — một dấu đọc mỗi user mỗi thread
	reads := db.Collection(global.MongoDB_ColNames.ThreadReads)
	if _, err := reads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "threadId", Value: 1},
		},
		Options: options.Index().SetName("read_user_thread").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// user_reads: (userId, clientId, monthKey) — load map theo tháng
	if _, err := reads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "clientId", Value: 1},
			{Key: "monthKey", Value: 1},
		},
		Options: options.Index().SetName("read_user_client_month"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// user_day_seen: (userId, clientId, date) unique — một dấu xem mỗi user mỗi ngày mỗi client
	daySeen := db.Collection(global.MongoDB_ColNames.DaySeen)
	if _, err := daySeen.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "clientId", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("day_seen_user_client_date").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// user_day_seen: (userId, monthKey) — load map theo tháng
	if _, err := daySeen.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "monthKey", Value: 1},
		},
		Options: options.Index().SetName("day_seen_user_month"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// planner_month_snapshots: (clientId, monthKey) unique — một snapshot mỗi client mỗi tháng
	snapshots := db.Collection(global.MongoDB_ColNames.MonthSnapshots)
	if _, err := snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "monthKey", Value: 1},
		},
		Options: options.Index().SetName("snapshot_client_month").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// planner_month_snapshots: dirty — worker quét nhanh các snapshot cần tính lại
	if _, err := snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dirty", Value: 1}},
		Options: options.Index().SetName("snapshot_dirty"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
