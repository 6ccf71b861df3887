package plannersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/api/planner/models"
	"content_planner/internal/global"
	"content_planner/internal/utility"
)

// SnapshotService quản lý snapshot tổng hợp theo (client, tháng).
// Ghi vào planner chỉ đánh dấu dirty; worker nền gọi RecomputeDirty theo chu kỳ.
type SnapshotService struct {
	*basesvc.BaseServiceMongoImpl[models.MonthSnapshot]
	postService  *PostService
	eventService *EventService
	paidService  *PaidService
}

// NewSnapshotService tạo mới SnapshotService
func NewSnapshotService(postService *PostService, eventService *EventService, paidService *PaidService) (*SnapshotService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MonthSnapshots)
	if !exist {
		return nil, fmt.Errorf("failed to get month snapshots collection: %s", global.MongoDB_ColNames.MonthSnapshots)
	}
	return &SnapshotService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.MonthSnapshot](collection),
		postService:          postService,
		eventService:         eventService,
		paidService:          paidService,
	}, nil
}

// MarkDirty đánh dấu snapshot của một (client, tháng) cần tính lại.
// Idempotent: gọi nhiều lần liên tiếp chỉ để lại một snapshot dirty.
func (s *SnapshotService) MarkDirty(ctx context.Context, clientID primitive.ObjectID, monthKey string) error {
	if clientID.IsZero() || !utility.IsMonthKey(monthKey) {
		return nil
	}

	filter := bson.M{"clientId": clientID, "monthKey": monthKey}
	_, err := s.Upsert(ctx, filter, &basesvc.UpdateData{
		Set: map[string]interface{}{"dirty": true},
		SetOnInsert: map[string]interface{}{
			"clientId": clientID,
			"monthKey": monthKey,
		},
	})
	return err
}

// Recompute tính lại số liệu tổng hợp của một (client, tháng) và ghi đè snapshot
func (s *SnapshotService) Recompute(ctx context.Context, clientID primitive.ObjectID, monthKey string) (*models.MonthSnapshot, error) {
	posts, err := s.postService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, err
	}
	events, err := s.eventService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, err
	}
	paids, err := s.paidService.FindByClientMonth(ctx, clientID, monthKey)
	if err != nil {
		return nil, err
	}

	agg := ComputeMonthAggregates(posts, events, paids)

	filter := bson.M{"clientId": clientID, "monthKey": monthKey}
	updated, err := s.Upsert(ctx, filter, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"postCountByChannel":   agg.PostCountByChannel,
			"postCountByAxis":      agg.PostCountByAxis,
			"investmentByCurrency": agg.InvestmentByCurrency,
			"dirty":                false,
			"computedAt":           utility.NowMillis(),
		},
		SetOnInsert: map[string]interface{}{
			"clientId": clientID,
			"monthKey": monthKey,
		},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RecomputeDirty tính lại tất cả snapshot đang dirty, trả về số snapshot đã xử lý.
// Lỗi ở một snapshot không chặn các snapshot còn lại; lỗi cuối cùng được trả về.
func (s *SnapshotService) RecomputeDirty(ctx context.Context) (int, error) {
	dirty, err := s.Find(ctx, bson.M{"dirty": true}, nil)
	if err != nil {
		return 0, err
	}

	done := 0
	var lastErr error
	for _, snap := range dirty {
		if _, err := s.Recompute(ctx, snap.ClientID, snap.MonthKey); err != nil {
			lastErr = err
			continue
		}
		done++
	}
	return done, lastErr
}
