// Package models - dấu đọc thread và dấu xem ngày của từng user.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThreadRead là dấu đọc của một user trên thread chat của một item.
// Mỗi cặp (userId, threadId) có đúng một document; lastReadAt chỉ tiến
// không lùi ($max) nên hai tab mở song song không ghi đè lẫn nhau.
type ThreadRead struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	ClientID   primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`
	ThreadID   primitive.ObjectID `json:"threadId" bson:"threadId"`
	LastReadAt string             `json:"lastReadAt" bson:"lastReadAt"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// DaySeen là dấu xem của một user trên một ngày của lịch.
// Chấm "có cập nhật" của ngày tắt đi khi lastSeenAt vượt qua hoạt động
// gần nhất của các item trong ngày.
type DaySeen struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	ClientID   primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`
	MonthKey   string             `json:"monthKey" bson:"monthKey" index:"single:1"`
	Date       string             `json:"date" bson:"date"`
	LastSeenAt string             `json:"lastSeenAt" bson:"lastSeenAt"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
