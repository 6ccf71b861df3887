package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthSnapshot là số liệu tổng hợp của một (client, tháng), do worker nền tính lại.
// Ghi vào planner item chỉ đánh dấu dirty; worker quét các snapshot dirty và
// tính lại theo chu kỳ, nên số liệu đọc ra có thể trễ vài chục giây.
type MonthSnapshot struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`
	MonthKey string             `json:"monthKey" bson:"monthKey" index:"single:1"`

	PostCountByChannel   map[string]int     `json:"postCountByChannel" bson:"postCountByChannel"`
	PostCountByAxis      map[string]int     `json:"postCountByAxis" bson:"postCountByAxis"`
	InvestmentByCurrency map[string]float64 `json:"investmentByCurrency" bson:"investmentByCurrency"`

	Dirty      bool  `json:"dirty" bson:"dirty"`
	ComputedAt int64 `json:"computedAt" bson:"computedAt"`
	CreatedAt  int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64 `json:"updatedAt" bson:"updatedAt"`
}
