package livehdl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/planner/models"
	"content_planner/internal/global"
	"content_planner/internal/livequery"
)

// watchAggregates mở live query theo dõi snapshot tổng hợp của (client, tháng).
// Mỗi lần snapshot đổi, tín hiệu được gộp vào kênh changed; phía stream đọc
// Snapshot()/Version() để dựng frame đẩy xuống client.
func (h *LiveHandler) watchAggregates(ctx context.Context, clientID primitive.ObjectID, monthKey string, changed chan<- struct{}) (*livequery.LiveQuery[models.MonthSnapshot], error) {
	scope := livequery.Scope{
		Collection: global.MongoDB_ColNames.MonthSnapshots,
		ClientID:   clientID,
		MonthKey:   monthKey,
	}
	fetch := func(ctx context.Context) ([]models.MonthSnapshot, error) {
		return h.SnapshotService.Find(ctx, bson.M{"clientId": clientID, "monthKey": monthKey}, nil)
	}
	return livequery.NewLiveQuery(ctx, scope, fetch, signalChange(changed))
}

// signalChange báo "có snapshot mới" vào kênh, gộp các lần gọi dồn dập thành một
func signalChange(changed chan<- struct{}) func([]models.MonthSnapshot) {
	return func([]models.MonthSnapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
}

// aggregatesFrame dựng frame SSE "aggregates" chứa snapshot tổng hợp tháng.
// Khác với notice thường, frame này mang luôn dữ liệu để UI khỏi refetch.
func aggregatesFrame(snaps []models.MonthSnapshot, version int64) []byte {
	payload := fiber.Map{"version": version}
	if len(snaps) > 0 {
		payload["snapshot"] = snaps[0]
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return []byte(fmt.Sprintf("event: aggregates\ndata: %s\n\n", data))
}
