// Package chatsvc - service chat theo thread của từng item trên lịch.
package chatsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "content_planner/internal/api/auth/models"
	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/api/chat/models"
	plannersvc "content_planner/internal/api/planner/service"
	"content_planner/internal/common"
	"content_planner/internal/global"
	"content_planner/internal/utility"
)

// MaxThreadMessages là số tin nhắn tối đa trả về cho một thread.
// Thread của một item hiếm khi chạm mức này; cap để một thread bất thường
// không kéo sập response.
const MaxThreadMessages = 300

// ChatService quản lý tin nhắn chat. Gửi tin nhắn đồng thời đẩy
// lastMessageAt của item cha tiến lên để badge chưa đọc hoạt động.
type ChatService struct {
	*basesvc.BaseServiceMongoImpl[models.ChatMessage]
	postService  *plannersvc.PostService
	eventService *plannersvc.EventService
	paidService  *plannersvc.PaidService
}

// NewChatService tạo mới ChatService
func NewChatService() (*ChatService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ChatMessages)
	if !exist {
		return nil, fmt.Errorf("failed to get chat messages collection: %s", global.MongoDB_ColNames.ChatMessages)
	}

	postService, err := plannersvc.GetPostService()
	if err != nil {
		return nil, err
	}
	eventService, err := plannersvc.GetEventService()
	if err != nil {
		return nil, err
	}
	paidService, err := plannersvc.GetPaidService()
	if err != nil {
		return nil, err
	}

	return &ChatService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ChatMessage](collection),
		postService:          postService,
		eventService:         eventService,
		paidService:          paidService,
	}, nil
}

// ListMessages trả về tin nhắn của một thread theo thứ tự thời gian tăng dần
func (s *ChatService) ListMessages(ctx context.Context, threadType string, threadID primitive.ObjectID) ([]models.ChatMessage, error) {
	if !models.IsValidThreadType(threadType) {
		return nil, common.ErrInvalidInput
	}

	filter := bson.M{"threadType": threadType, "threadId": threadID}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(MaxThreadMessages)

	return s.Find(ctx, filter, opts)
}

// SendMessage thêm tin nhắn vào thread và đẩy lastMessageAt của item cha.
// Item cha phải tồn tại và thuộc đúng client; lastMessageAt dùng $max nên
// hai tin nhắn gần nhau không làm mốc lùi lại.
func (s *ChatService) SendMessage(ctx context.Context, threadType string, threadID primitive.ObjectID, clientID primitive.ObjectID, text string, author *authmodels.User) (*models.ChatMessage, error) {
	if !models.IsValidThreadType(threadType) {
		return nil, common.ErrInvalidInput
	}

	// Xác nhận item cha tồn tại và thuộc đúng client trước khi ghi
	if err := s.verifyParent(ctx, threadType, threadID, clientID); err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		ClientID:    clientID,
		ThreadType:  threadType,
		ThreadID:    threadID,
		Text:        text,
		AuthorUID:   author.FirebaseUID,
		AuthorName:  author.DisplayName(),
		AuthorEmail: author.Email,
	}

	created, err := s.InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}

	// Đẩy mốc tin nhắn cuối của item cha tiến lên
	bump := &basesvc.UpdateData{
		Max: map[string]interface{}{"lastMessageAt": utility.MillisToISO(created.CreatedAt)},
		Set: map[string]interface{}{"updatedBy": author.DisplayName()},
	}
	switch threadType {
	case models.ThreadTypePost:
		_, err = s.postService.UpdateById(ctx, threadID, bump)
	case models.ThreadTypeEvent:
		_, err = s.eventService.UpdateById(ctx, threadID, bump)
	case models.ThreadTypePaid:
		_, err = s.paidService.UpdateById(ctx, threadID, bump)
	}
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// verifyParent kiểm tra item cha của thread tồn tại và thuộc đúng client
func (s *ChatService) verifyParent(ctx context.Context, threadType string, threadID primitive.ObjectID, clientID primitive.ObjectID) error {
	var parentClientID primitive.ObjectID

	switch threadType {
	case models.ThreadTypePost:
		parent, err := s.postService.FindOneById(ctx, threadID)
		if err != nil {
			return err
		}
		parentClientID = parent.ClientID
	case models.ThreadTypeEvent:
		parent, err := s.eventService.FindOneById(ctx, threadID)
		if err != nil {
			return err
		}
		parentClientID = parent.ClientID
	case models.ThreadTypePaid:
		parent, err := s.paidService.FindOneById(ctx, threadID)
		if err != nil {
			return err
		}
		parentClientID = parent.ClientID
	}

	if parentClientID != clientID {
		return common.ErrClientAccess
	}
	return nil
}
