package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event là một sự kiện/mốc trên lịch nội dung (ngày hội, deadline, chiến dịch).
// Cấu trúc giống Post nhưng không có các khối duyệt, thay bằng note tự do.
type Event struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`
	Date     string             `json:"date" bson:"date" index:"single:1"`
	MonthKey string             `json:"monthKey" bson:"monthKey" index:"single:1"`

	Title    string   `json:"title" bson:"title"`
	Channels []string `json:"channels" bson:"channels"`
	Axis     string   `json:"axis,omitempty" bson:"axis,omitempty"`
	Status   string   `json:"status" bson:"status" default:"no_iniciado"`
	Note     string   `json:"note,omitempty" bson:"note,omitempty"`

	InternalComment string   `json:"internalComment,omitempty" bson:"internalComment,omitempty"`
	LastMessageAt   FlexTime `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty"`

	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}
