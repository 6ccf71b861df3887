// Package readssvc - service dấu đọc thread và dấu xem ngày.
package readssvc

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/api/reads/models"
	"content_planner/internal/common"
	"content_planner/internal/global"
	"content_planner/internal/utility"
)

// ReadsService quản lý dấu đọc thread và dấu xem ngày của từng user.
// Cả hai loại dấu đều chỉ tiến không lùi ($max trên chuỗi ISO độ rộng cố định).
type ReadsService struct {
	threadReads *basesvc.BaseServiceMongoImpl[models.ThreadRead]
	daySeen     *basesvc.BaseServiceMongoImpl[models.DaySeen]
}

var (
	readsServiceOnce sync.Once
	readsService     *ReadsService
	readsServiceErr  error
)

// GetReadsService trả về instance ReadsService dùng chung
func GetReadsService() (*ReadsService, error) {
	readsServiceOnce.Do(func() {
		readsService, readsServiceErr = NewReadsService()
	})
	return readsService, readsServiceErr
}

// NewReadsService tạo mới ReadsService
func NewReadsService() (*ReadsService, error) {
	threadCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ThreadReads)
	if !exist {
		return nil, fmt.Errorf("failed to get thread reads collection: %s", global.MongoDB_ColNames.ThreadReads)
	}
	dayCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DaySeen)
	if !exist {
		return nil, fmt.Errorf("failed to get day seen collection: %s", global.MongoDB_ColNames.DaySeen)
	}

	return &ReadsService{
		threadReads: basesvc.NewBaseServiceMongo[models.ThreadRead](threadCol),
		daySeen:     basesvc.NewBaseServiceMongo[models.DaySeen](dayCol),
	}, nil
}

// MarkThreadRead ghi nhận user đã đọc thread của một item đến thời điểm hiện tại.
// Idempotent và monotonic: gọi lại với mốc cũ hơn không làm dấu lùi.
func (s *ReadsService) MarkThreadRead(ctx context.Context, userID, clientID, threadID primitive.ObjectID) (*models.ThreadRead, error) {
	filter := bson.M{"userId": userID, "threadId": threadID}
	updated, err := s.threadReads.Upsert(ctx, filter, &basesvc.UpdateData{
		Max: map[string]interface{}{"lastReadAt": utility.NowISO()},
		SetOnInsert: map[string]interface{}{
			"userId":   userID,
			"clientId": clientID,
			"threadId": threadID,
		},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ThreadReadMap trả về map threadId hex → lastReadAt của user trong một client
func (s *ReadsService) ThreadReadMap(ctx context.Context, userID, clientID primitive.ObjectID) (map[string]string, error) {
	filter := bson.M{"userId": userID, "clientId": clientID}
	receipts, err := s.threadReads.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(receipts))
	for _, r := range receipts {
		out[r.ThreadID.Hex()] = r.LastReadAt
	}
	return out, nil
}

// MarkDaySeen ghi nhận user đã xem một ngày của lịch đến thời điểm hiện tại
func (s *ReadsService) MarkDaySeen(ctx context.Context, userID, clientID primitive.ObjectID, date string) (*models.DaySeen, error) {
	if !utility.IsDateKey(date) {
		return nil, common.ErrInvalidFormat
	}

	filter := bson.M{"userId": userID, "clientId": clientID, "date": date}
	updated, err := s.daySeen.Upsert(ctx, filter, &basesvc.UpdateData{
		Max: map[string]interface{}{"lastSeenAt": utility.NowISO()},
		SetOnInsert: map[string]interface{}{
			"userId":   userID,
			"clientId": clientID,
			"monthKey": utility.MonthKeyOf(date),
			"date":     date,
		},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DaySeenMap trả về map khóa ngày → lastSeenAt của user trong một (client, tháng)
func (s *ReadsService) DaySeenMap(ctx context.Context, userID, clientID primitive.ObjectID, monthKey string) (map[string]string, error) {
	filter := bson.M{"userId": userID, "clientId": clientID, "monthKey": monthKey}
	marks, err := s.daySeen.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(marks))
	for _, m := range marks {
		out[m.Date] = m.LastSeenAt
	}
	return out, nil
}
