// Package dto định nghĩa input cho API chat.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SendMessageInput là input gửi tin nhắn vào thread của một item
type SendMessageInput struct {
	ClientID primitive.ObjectID `json:"clientId" bson:"clientId" validate:"required,exists=planner_clients"`
	Text     string             `json:"text" bson:"text" validate:"required,no_xss,max=8000"`
}
