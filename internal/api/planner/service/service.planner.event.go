package plannersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/api/planner/dto"
	"content_planner/internal/api/planner/models"
	"content_planner/internal/common"
	"content_planner/internal/global"
	"content_planner/internal/livequery"
	"content_planner/internal/utility"
)

// EventService quản lý event trên lịch nội dung
type EventService struct {
	*basesvc.BaseServiceMongoImpl[models.Event]
	commentWriters *livequery.WriterPool
}

// NewEventService tạo mới EventService
func NewEventService() (*EventService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Events)
	if !exist {
		return nil, fmt.Errorf("failed to get events collection: %s", global.MongoDB_ColNames.Events)
	}

	s := &EventService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Event](collection),
	}
	s.commentWriters = livequery.NewWriterPool(commentQuietDelay(), func(key string) livequery.WriteFunc {
		return func(ctx context.Context, value interface{}) error {
			payload, ok := value.(commentPayload)
			if !ok {
				return common.ErrInvalidFormat
			}
			_, err := s.UpdateById(ctx, utility.String2ObjectID(key), &basesvc.UpdateData{
				Set: map[string]interface{}{
					"internalComment": payload.Text,
					"updatedBy":       payload.Actor,
				},
			})
			return err
		}
	})
	return s, nil
}

// CreateEvent tạo event mới trên lịch
func (s *EventService) CreateEvent(ctx context.Context, input *dto.EventCreateInput, actor string) (*models.Event, error) {
	event := models.Event{
		ClientID:  input.ClientID,
		Date:      input.Date,
		Title:     input.Title,
		Channels:  input.Channels,
		Axis:      input.Axis,
		Status:    input.Status,
		Note:      input.Note,
		CreatedBy: actor,
		UpdatedBy: actor,
	}

	normalized, result := models.NormalizeEvent(event)
	if !result.IsUsable() {
		return nil, common.NewError(common.ErrCodeValidationInput, result.Reason, common.StatusBadRequest, nil)
	}

	created, err := s.InsertOne(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem cập nhật từng phần một event; đổi date kéo theo monthKey
func (s *EventService) UpdateItem(ctx context.Context, id primitive.ObjectID, input *dto.EventUpdateInput, actor string) (*models.Event, error) {
	set := make(map[string]interface{})

	if input.Date != "" {
		if !utility.IsDateKey(input.Date) {
			return nil, common.ErrInvalidFormat
		}
		set["date"] = input.Date
		set["monthKey"] = utility.MonthKeyOf(input.Date)
	}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Channels != nil {
		set["channels"] = *input.Channels
	}
	if input.Axis != nil {
		set["axis"] = *input.Axis
	}
	if input.Status != "" {
		set["status"] = models.NormalizeStatus(input.Status)
	}
	if input.Note != nil {
		set["note"] = *input.Note
	}

	if len(set) == 0 {
		return nil, common.ErrInvalidInput
	}
	set["updatedBy"] = actor

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindByClientMonth trả về các event của một (client, tháng), sắp theo ngày rồi theo _id
func (s *EventService) FindByClientMonth(ctx context.Context, clientID primitive.ObjectID, monthKey string) ([]models.Event, error) {
	filter := bson.M{"clientId": clientID, "monthKey": monthKey}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	events, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		normalized, result := models.NormalizeEvent(e)
		if result.IsUsable() {
			out = append(out, normalized)
		}
	}
	return out, nil
}

// Duplicate nhân bản một event, bỏ danh tính, timestamps và dấu vết chat
func (s *EventService) Duplicate(ctx context.Context, id primitive.ObjectID, actor string) (*models.Event, error) {
	original, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := original
	clone.ID = primitive.NilObjectID
	clone.LastMessageAt = ""
	clone.CreatedAt = 0
	clone.UpdatedAt = 0
	clone.CreatedBy = actor
	clone.UpdatedBy = actor

	created, err := s.InsertOne(ctx, clone)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// QueueInternalComment xếp autosave ghi chú nội bộ của một event
func (s *EventService) QueueInternalComment(id primitive.ObjectID, text string, actor string) {
	s.commentWriters.Queue(id.Hex(), commentPayload{Text: text, Actor: actor})
}

// FlushComments ghi nốt mọi ghi chú đang chờ (dùng khi shutdown)
func (s *EventService) FlushComments() {
	s.commentWriters.FlushAll()
}

// PendingComments trả về số autosave ghi chú còn chờ ghi
func (s *EventService) PendingComments() int {
	return s.commentWriters.PendingCount()
}

// LastCommentError trả về lỗi autosave gần nhất (nil nếu không có)
func (s *EventService) LastCommentError() error {
	return s.commentWriters.LastError()
}
