// Package models - model tin nhắn chat theo từng item trên lịch.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại thread chat: mỗi item trên lịch (post, event, paid) có một thread riêng
const (
	ThreadTypePost  = "post"
	ThreadTypeEvent = "event"
	ThreadTypePaid  = "paid"
)

// IsValidThreadType kiểm tra loại thread hợp lệ
func IsValidThreadType(t string) bool {
	switch t {
	case ThreadTypePost, ThreadTypeEvent, ThreadTypePaid:
		return true
	}
	return false
}

// ChatMessage là một tin nhắn trong thread của một item.
// Tin nhắn chỉ thêm, không sửa, không xóa; thông tin tác giả được
// denormalize vào tin nhắn để hiển thị không cần join sang users.
type ChatMessage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID   primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`
	ThreadType string             `json:"threadType" bson:"threadType"`
	ThreadID   primitive.ObjectID `json:"threadId" bson:"threadId" index:"single:1"`

	Text        string `json:"text" bson:"text"`
	AuthorUID   string `json:"authorUid" bson:"authorUid"`
	AuthorName  string `json:"authorName" bson:"authorName"`
	AuthorEmail string `json:"authorEmail,omitempty" bson:"authorEmail,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"-" bson:"updatedAt"`
}
