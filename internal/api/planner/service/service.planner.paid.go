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

// PaidService quản lý hạng mục quảng cáo trả phí trên lịch nội dung
type PaidService struct {
	*basesvc.BaseServiceMongoImpl[models.Paid]
	commentWriters *livequery.WriterPool
}

// NewPaidService tạo mới PaidService
func NewPaidService() (*PaidService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Paids)
	if !exist {
		return nil, fmt.Errorf("failed to get paids collection: %s", global.MongoDB_ColNames.Paids)
	}

	s := &PaidService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Paid](collection),
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

// CreatePaid tạo hạng mục quảng cáo mới.
// endDate trước startDate bị clamp; monthKey suy từ startDate.
func (s *PaidService) CreatePaid(ctx context.Context, input *dto.PaidCreateInput, actor string) (*models.Paid, error) {
	paid := models.Paid{
		ClientID:           input.ClientID,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Title:              input.Title,
		Axis:               input.Axis,
		Status:             input.Status,
		PaidChannels:       input.PaidChannels,
		PaidContent:        input.PaidContent,
		InvestmentAmount:   input.InvestmentAmount,
		InvestmentCurrency: input.InvestmentCurrency,
		CreatedBy:          actor,
		UpdatedBy:          actor,
	}

	normalized, result := models.NormalizePaid(paid)
	if !result.IsUsable() {
		return nil, common.NewError(common.ErrCodeValidationInput, result.Reason, common.StatusBadRequest, nil)
	}

	created, err := s.InsertOne(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem cập nhật từng phần một hạng mục quảng cáo.
// Đổi khoảng ngày kéo theo monthKey và clamp lại endDate dựa trên document hiện tại.
func (s *PaidService) UpdateItem(ctx context.Context, id primitive.ObjectID, input *dto.PaidUpdateInput, actor string) (*models.Paid, error) {
	set := make(map[string]interface{})

	// Đổi ngày cần biết giá trị hiện tại để clamp khoảng cho đúng
	if input.StartDate != "" || input.EndDate != "" {
		current, err := s.FindOneById(ctx, id)
		if err != nil {
			return nil, err
		}

		startDate := current.StartDate
		endDate := current.EndDate
		if input.StartDate != "" {
			if !utility.IsDateKey(input.StartDate) {
				return nil, common.ErrInvalidFormat
			}
			startDate = input.StartDate
		}
		if input.EndDate != "" {
			if !utility.IsDateKey(input.EndDate) {
				return nil, common.ErrInvalidFormat
			}
			endDate = input.EndDate
		}
		if endDate < startDate {
			endDate = startDate
		}

		set["startDate"] = startDate
		set["endDate"] = endDate
		set["monthKey"] = utility.MonthKeyOf(startDate)
	}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Axis != nil {
		set["axis"] = *input.Axis
	}
	if input.Status != "" {
		set["status"] = models.NormalizeStatus(input.Status)
	}
	if input.PaidChannels != nil {
		set["paidChannels"] = *input.PaidChannels
	}
	if input.PaidContent != nil {
		set["paidContent"] = *input.PaidContent
	}
	if input.InvestmentAmount != nil {
		amount := *input.InvestmentAmount
		if amount < 0 {
			amount = 0
		}
		set["investmentAmount"] = amount
	}
	if input.InvestmentCurrency != "" {
		if input.InvestmentCurrency != models.CurrencyARS && input.InvestmentCurrency != models.CurrencyUSD {
			return nil, common.ErrInvalidFormat
		}
		set["investmentCurrency"] = input.InvestmentCurrency
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

// FindByClientMonth trả về các paid item của một (client, tháng), sắp theo ngày bắt đầu.
// Paid thuộc về tháng của startDate kể cả khi khoảng chạy lấn sang tháng sau.
func (s *PaidService) FindByClientMonth(ctx context.Context, clientID primitive.ObjectID, monthKey string) ([]models.Paid, error) {
	filter := bson.M{"clientId": clientID, "monthKey": monthKey}
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}})

	paids, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.Paid, 0, len(paids))
	for _, p := range paids {
		normalized, result := models.NormalizePaid(p)
		if result.IsUsable() {
			out = append(out, normalized)
		}
	}
	return out, nil
}

// Duplicate nhân bản một paid item, bỏ danh tính, timestamps và dấu vết chat
func (s *PaidService) Duplicate(ctx context.Context, id primitive.ObjectID, actor string) (*models.Paid, error) {
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

// QueueInternalComment xếp autosave ghi chú nội bộ của một paid item
func (s *PaidService) QueueInternalComment(id primitive.ObjectID, text string, actor string) {
	s.commentWriters.Queue(id.Hex(), commentPayload{Text: text, Actor: actor})
}

// FlushComments ghi nốt mọi ghi chú đang chờ (dùng khi shutdown)
func (s *PaidService) FlushComments() {
	s.commentWriters.FlushAll()
}

// PendingComments trả về số autosave ghi chú còn chờ ghi
func (s *PaidService) PendingComments() int {
	return s.commentWriters.PendingCount()
}

// LastCommentError trả về lỗi autosave gần nhất (nil nếu không có)
func (s *PaidService) LastCommentError() error {
	return s.commentWriters.LastError()
}
