// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRoles là các cờ vai trò của người dùng trong quy trình duyệt nội dung.
// Admin có toàn quyền (mọi client, quản lý user); các vai trò còn lại
// chỉ mang ý nghĩa hiển thị/quy trình, không giới hạn thao tác CRUD.
type UserRoles struct {
	Admin      bool `json:"admin" bson:"admin"`
	Supervisor bool `json:"supervisor" bson:"supervisor"`
	Content    bool `json:"content" bson:"content"`
	Validation bool `json:"validation" bson:"validation"`
	Design     bool `json:"design" bson:"design"`
}

// User định nghĩa mô hình người dùng.
// Profile được tạo tự động ở lần request đầu tiên sau khi verify Firebase ID token
// (EnsureProfileByFirebaseUID) — không có flow đăng ký riêng.
type User struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FirebaseUID       string               `json:"firebaseUid" bson:"firebaseUid" index:"unique"`
	Email             string               `json:"email,omitempty" bson:"email,omitempty"`
	Name              string               `json:"name" bson:"name"`
	AvatarURL         string               `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Roles             UserRoles            `json:"roles" bson:"roles"`
	AllowedClients    []primitive.ObjectID `json:"allowedClients" bson:"allowedClients"`
	PreferredClientID primitive.ObjectID   `json:"preferredClientId,omitempty" bson:"preferredClientId,omitempty"`
	IsBlock           bool                 `json:"-" bson:"isBlock"`
	BlockNote         string               `json:"-" bson:"blockNote,omitempty"`
	CreatedAt         int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64                `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName trả về tên hiển thị dùng cho attribution (approvedBy, updatedBy):
// tên > email > firebaseUid, lấy giá trị đầu tiên không rỗng.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.FirebaseUID
}

// CanAccessClient kiểm tra user có quyền xem/sửa dữ liệu của một client không.
// Admin truy cập được mọi client; user thường phải có client trong allowedClients.
func (u *User) CanAccessClient(clientID primitive.ObjectID) bool {
	if u.Roles.Admin {
		return true
	}
	for _, id := range u.AllowedClients {
		if id == clientID {
			return true
		}
	}
	return false
}
