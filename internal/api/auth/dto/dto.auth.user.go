package authdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "content_planner/internal/api/auth/models"
)

// UserCreateInput đầu vào tạo người dùng (admin tạo trước profile, gán quyền sẵn).
type UserCreateInput struct {
	FirebaseUID    string               `json:"firebaseUid" bson:"firebaseUid" validate:"required"`
	Email          string               `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Name           string               `json:"name" bson:"name"`
	Roles          models.UserRoles     `json:"roles" bson:"roles"`
	AllowedClients []primitive.ObjectID `json:"allowedClients" bson:"allowedClients"`
}

// UserUpdateInput đầu vào admin cập nhật quyền của người dùng.
// Roles/AllowedClients là con trỏ để phân biệt "không gửi" và "gửi giá trị rỗng".
type UserUpdateInput struct {
	Name           string                `json:"name,omitempty" bson:"name,omitempty"`
	Roles          *models.UserRoles     `json:"roles,omitempty" bson:"roles,omitempty"`
	AllowedClients *[]primitive.ObjectID `json:"allowedClients,omitempty" bson:"allowedClients,omitempty"`
}

// SetPreferredClientInput đầu vào ghi nhớ client đang làm việc của user.
type SetPreferredClientInput struct {
	ClientID string `json:"clientId" validate:"required"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Note string `json:"note" validate:"required"`
}
