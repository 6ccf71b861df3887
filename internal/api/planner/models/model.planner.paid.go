package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mã tiền tệ cho ngân sách quảng cáo
const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
)

// Paid là một hạng mục quảng cáo trả phí chạy trong một khoảng ngày.
// monthKey suy ra từ startDate; endDate nhỏ hơn startDate được clamp về startDate.
type Paid struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID primitive.ObjectID `json:"clientId" bson:"clientId" index:"single:1"`

	StartDate string `json:"startDate" bson:"startDate" index:"single:1"`
	EndDate   string `json:"endDate" bson:"endDate"`
	MonthKey  string `json:"monthKey" bson:"monthKey" index:"single:1"`

	Title        string   `json:"title" bson:"title"`
	Axis         string   `json:"axis,omitempty" bson:"axis,omitempty"`
	Status       string   `json:"status" bson:"status" default:"no_iniciado"`
	PaidChannels []string `json:"paidChannels" bson:"paidChannels"`
	PaidContent  string   `json:"paidContent,omitempty" bson:"paidContent,omitempty"`

	InvestmentAmount   float64 `json:"investmentAmount" bson:"investmentAmount"`
	InvestmentCurrency string  `json:"investmentCurrency" bson:"investmentCurrency" default:"ARS"`

	InternalComment string   `json:"internalComment,omitempty" bson:"internalComment,omitempty"`
	LastMessageAt   FlexTime `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty"`

	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}
