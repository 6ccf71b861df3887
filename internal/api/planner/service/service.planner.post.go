package plannersvc

import (
	"context"
	"fmt"
	"time"

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

// commentQuietDelay trả về quiet delay cho autosave ghi chú nội bộ
func commentQuietDelay() time.Duration {
	if global.ServerConfig != nil && global.ServerConfig.AutosaveQuietDelay > 0 {
		return time.Duration(global.ServerConfig.AutosaveQuietDelay) * time.Millisecond
	}
	return 500 * time.Millisecond
}

// commentPayload là payload autosave ghi chú nội bộ, giữ kèm người sửa
type commentPayload struct {
	Text  string
	Actor string
}

// PostService quản lý post trên lịch nội dung
type PostService struct {
	*basesvc.BaseServiceMongoImpl[models.Post]
	commentWriters *livequery.WriterPool
}

// NewPostService tạo mới PostService
func NewPostService() (*PostService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Posts)
	if !exist {
		return nil, fmt.Errorf("failed to get posts collection: %s", global.MongoDB_ColNames.Posts)
	}

	s := &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Post](collection),
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

// CreatePost tạo post mới; monthKey suy từ date, status fallback về đầu vòng đời
func (s *PostService) CreatePost(ctx context.Context, input *dto.PostCreateInput, actor string) (*models.Post, error) {
	post := models.Post{
		ClientID:  input.ClientID,
		Date:      input.Date,
		Title:     input.Title,
		Channels:  input.Channels,
		Axis:      input.Axis,
		Status:    input.Status,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if input.Brief != nil {
		post.Brief.Text = input.Brief.Text
	}
	if input.CopyOut != nil {
		post.CopyOut.Text = input.CopyOut.Text
	}
	if input.PieceLink != nil {
		post.PieceLink.URL = input.PieceLink.URL
	}

	normalized, result := models.NormalizePost(post)
	if !result.IsUsable() {
		return nil, common.NewError(common.ErrCodeValidationInput, result.Reason, common.StatusBadRequest, nil)
	}

	created, err := s.InsertOne(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem cập nhật từng phần một post. Đổi date kéo theo monthKey;
// nội dung khối duyệt cập nhật qua dot path để không đụng cờ approved.
func (s *PostService) UpdateItem(ctx context.Context, id primitive.ObjectID, input *dto.PostUpdateInput, actor string) (*models.Post, error) {
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

	now := utility.NowISO()
	if input.Brief != nil {
		set["brief.text"] = input.Brief.Text
		set["brief.updatedAt"] = now
		set["brief.updatedBy"] = actor
	}
	if input.CopyOut != nil {
		set["copyOut.text"] = input.CopyOut.Text
		set["copyOut.updatedAt"] = now
		set["copyOut.updatedBy"] = actor
	}
	if input.PieceLink != nil {
		set["pieceLink.url"] = input.PieceLink.URL
		set["pieceLink.updatedAt"] = now
		set["pieceLink.updatedBy"] = actor
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

// FindByClientMonth trả về các post của một (client, tháng), sắp theo ngày rồi theo _id.
// Mỗi post được chuẩn hóa; post không dùng được (thiếu dữ liệu cốt lõi) bị bỏ qua.
func (s *PostService) FindByClientMonth(ctx context.Context, clientID primitive.ObjectID, monthKey string) ([]models.Post, error) {
	filter := bson.M{"clientId": clientID, "monthKey": monthKey}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	posts, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		normalized, result := models.NormalizePost(p)
		if result.IsUsable() {
			out = append(out, normalized)
		}
	}
	return out, nil
}

// Duplicate nhân bản một post: giữ nội dung, bỏ danh tính (ID), timestamps
// và dấu vết chat (lastMessageAt) — bản sao bắt đầu với thread chat trống.
func (s *PostService) Duplicate(ctx context.Context, id primitive.ObjectID, actor string) (*models.Post, error) {
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

// ToggleApproval duyệt hoặc bỏ duyệt một khối trên post.
// Duyệt đóng dấu approvedAt/approvedBy; bỏ duyệt xóa dấu nhưng giữ nguyên nội dung.
func (s *PostService) ToggleApproval(ctx context.Context, id primitive.ObjectID, block string, approved bool, actor string) (*models.Post, error) {
	if !models.IsValidApprovalBlock(block) {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Khối duyệt '%s' không hợp lệ (brief, copyOut hoặc pieceLink)", block),
			common.StatusBadRequest,
			nil,
		)
	}

	now := utility.NowISO()
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			block + ".approved":  approved,
			block + ".updatedAt": now,
			block + ".updatedBy": actor,
			"updatedBy":          actor,
		},
	}
	if approved {
		update.Set[block+".approvedAt"] = now
		update.Set[block+".approvedBy"] = actor
	} else {
		update.Unset = map[string]interface{}{
			block + ".approvedAt": "",
			block + ".approvedBy": "",
		}
	}

	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// QueueInternalComment xếp autosave ghi chú nội bộ của một post.
// Các lần gõ dồn dập cùng một post gộp thành một lần ghi sau quiet delay.
func (s *PostService) QueueInternalComment(id primitive.ObjectID, text string, actor string) {
	s.commentWriters.Queue(id.Hex(), commentPayload{Text: text, Actor: actor})
}

// FlushComments ghi nốt mọi ghi chú đang chờ (dùng khi shutdown)
func (s *PostService) FlushComments() {
	s.commentWriters.FlushAll()
}

// PendingComments trả về số autosave ghi chú còn chờ ghi
func (s *PostService) PendingComments() int {
	return s.commentWriters.PendingCount()
}

// LastCommentError trả về lỗi autosave gần nhất (nil nếu không có)
func (s *PostService) LastCommentError() error {
	return s.commentWriters.LastError()
}
