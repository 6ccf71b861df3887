// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "content_planner/internal/api/auth/dto"
	models "content_planner/internal/api/auth/models"
	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/common"
	"content_planner/internal/global"
	"content_planner/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get auth_users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// EnsureProfileByFirebaseUID trả về profile ứng với Firebase UID, tạo mới nếu chưa có.
// Được gọi từ auth middleware ở mỗi request (sau cache miss) — không có flow đăng ký riêng.
// User được seed admin qua cấu hình FIREBASE_ADMIN_UID luôn có roles.admin = true.
func (s *UserService) EnsureProfileByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	filter := bson.M{"firebaseUid": firebaseUID}

	user, err := s.BaseServiceMongoImpl.FindOne(ctx, filter, nil)
	if err == nil {
		// Seed admin: nâng quyền nếu cấu hình chỉ định UID này là admin mà profile chưa có cờ
		if s.isSeedAdmin(firebaseUID) && !user.Roles.Admin {
			updated, upErr := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, &basesvc.UpdateData{
				Set: map[string]interface{}{"roles.admin": true},
			})
			if upErr != nil {
				return nil, upErr
			}
			return &updated, nil
		}
		return &user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Chưa có profile: lấy thông tin hiển thị từ Firebase rồi upsert.
	// Upsert theo firebaseUid để hai request song song của cùng user không tạo hai profile.
	updateData := &basesvc.UpdateData{
		Set:         map[string]interface{}{"firebaseUid": firebaseUID},
		SetOnInsert: map[string]interface{}{"allowedClients": []primitive.ObjectID{}},
	}

	if fbUser, fbErr := utility.GetUserByUID(ctx, firebaseUID); fbErr == nil {
		if fbUser.Email != "" {
			updateData.Set["email"] = fbUser.Email
		}
		if fbUser.DisplayName != "" {
			updateData.Set["name"] = fbUser.DisplayName
		}
		if fbUser.PhotoURL != "" {
			updateData.Set["avatarUrl"] = fbUser.PhotoURL
		}
	} else {
		// Không chặn việc tạo profile khi Firebase Admin API lỗi — token đã verify xong
		logrus.WithFields(logrus.Fields{"firebase_uid": firebaseUID, "error": fbErr.Error()}).
			Warn("EnsureProfileByFirebaseUID: Không lấy được thông tin hiển thị từ Firebase")
	}

	if s.isSeedAdmin(firebaseUID) {
		updateData.Set["roles.admin"] = true
	}

	created, err := s.BaseServiceMongoImpl.Upsert(ctx, filter, updateData)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "firebase_uid": firebaseUID}).
		Info("EnsureProfileByFirebaseUID: Tạo profile mới")
	return &created, nil
}

// isSeedAdmin kiểm tra UID có trùng với admin được seed qua cấu hình không
func (s *UserService) isSeedAdmin(firebaseUID string) bool {
	return global.ServerConfig != nil &&
		global.ServerConfig.FirebaseAdminUID != "" &&
		global.ServerConfig.FirebaseAdminUID == firebaseUID
}

// SetPreferredClient ghi nhớ client user đang làm việc (mở lại app sẽ vào thẳng client này).
// User phải có quyền truy cập client đó.
func (s *UserService) SetPreferredClient(ctx context.Context, user *models.User, clientID primitive.ObjectID) (*models.User, error) {
	if !user.CanAccessClient(clientID) {
		return nil, common.ErrClientAccess
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"preferredClientId": clientID},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAccess admin cập nhật vai trò và danh sách client được phép của một user.
// Con trỏ nil nghĩa là giữ nguyên; con trỏ tới giá trị rỗng nghĩa là xóa hết quyền.
func (s *UserService) UpdateAccess(ctx context.Context, userID primitive.ObjectID, input *authdto.UserUpdateInput) (*models.User, error) {
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if input.Name != "" {
		updateData.Set["name"] = input.Name
	}
	if input.Roles != nil {
		updateData.Set["roles"] = *input.Roles
	}
	if input.AllowedClients != nil {
		allowed := *input.AllowedClients
		if allowed == nil {
			allowed = []primitive.ObjectID{}
		}
		updateData.Set["allowedClients"] = allowed
	}
	if len(updateData.Set) == 0 {
		return nil, common.ErrInvalidInput
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// BlockUser khóa người dùng kèm ghi chú lý do
func (s *UserService) BlockUser(ctx context.Context, userID primitive.ObjectID, note string) (*models.User, error) {
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{"isBlock": true, "blockNote": note},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UnblockUser mở khóa người dùng
func (s *UserService) UnblockUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set:   map[string]interface{}{"isBlock": false},
		Unset: map[string]interface{}{"blockNote": ""},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
