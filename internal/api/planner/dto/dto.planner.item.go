package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalTextInput là input cho khối text cần duyệt (brief, copy).
// Client chỉ gửi được text; cờ approved do endpoint duyệt riêng quản lý.
type ApprovalTextInput struct {
	Text string `json:"text" bson:"text" validate:"omitempty,no_xss,max=20000"`
}

// ApprovalLinkInput là input cho khối link cần duyệt (pieceLink)
type ApprovalLinkInput struct {
	URL string `json:"url" bson:"url" validate:"omitempty,url,max=2000"`
}

// PostCreateInput là input tạo post mới trên lịch
type PostCreateInput struct {
	ClientID  primitive.ObjectID `json:"clientId" bson:"clientId" validate:"required,exists=planner_clients"`
	Date      string             `json:"date" bson:"date" validate:"required,iso_date"`
	Title     string             `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Channels  []string           `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	Axis      string             `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status    string             `json:"status" bson:"status" validate:"omitempty,planner_status"`
	Brief     *ApprovalTextInput `json:"brief" bson:"brief" validate:"omitempty"`
	CopyOut   *ApprovalTextInput `json:"copyOut" bson:"copyOut" validate:"omitempty"`
	PieceLink *ApprovalLinkInput `json:"pieceLink" bson:"pieceLink" validate:"omitempty"`
}

// PostUpdateInput là input cập nhật từng phần một post.
// Khối duyệt gửi lên chỉ đổi nội dung (dot path), không đụng tới cờ approved.
type PostUpdateInput struct {
	Date      string             `json:"date" bson:"date" validate:"omitempty,iso_date"`
	Title     *string            `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Channels  *[]string          `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	Axis      *string            `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status    string             `json:"status" bson:"status" validate:"omitempty,planner_status"`
	Brief     *ApprovalTextInput `json:"brief" bson:"brief" validate:"omitempty"`
	CopyOut   *ApprovalTextInput `json:"copyOut" bson:"copyOut" validate:"omitempty"`
	PieceLink *ApprovalLinkInput `json:"pieceLink" bson:"pieceLink" validate:"omitempty"`
}

// EventCreateInput là input tạo event mới trên lịch
type EventCreateInput struct {
	ClientID primitive.ObjectID `json:"clientId" bson:"clientId" validate:"required,exists=planner_clients"`
	Date     string             `json:"date" bson:"date" validate:"required,iso_date"`
	Title    string             `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Channels []string           `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	Axis     string             `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status   string             `json:"status" bson:"status" validate:"omitempty,planner_status"`
	Note     string             `json:"note" bson:"note" validate:"omitempty,no_xss,max=20000"`
}

// EventUpdateInput là input cập nhật từng phần một event
type EventUpdateInput struct {
	Date     string    `json:"date" bson:"date" validate:"omitempty,iso_date"`
	Title    *string   `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Channels *[]string `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	Axis     *string   `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status   string    `json:"status" bson:"status" validate:"omitempty,planner_status"`
	Note     *string   `json:"note" bson:"note" validate:"omitempty,no_xss,max=20000"`
}

// PaidCreateInput là input tạo hạng mục quảng cáo mới
type PaidCreateInput struct {
	ClientID           primitive.ObjectID `json:"clientId" bson:"clientId" validate:"required,exists=planner_clients"`
	StartDate          string             `json:"startDate" bson:"startDate" validate:"required,iso_date"`
	EndDate            string             `json:"endDate" bson:"endDate" validate:"omitempty,iso_date"`
	Title              string             `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Axis               string             `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status             string             `json:"status" bson:"status" validate:"omitempty,planner_status"`
	PaidChannels       []string           `json:"paidChannels" bson:"paidChannels" validate:"omitempty,dive,no_xss"`
	PaidContent        string             `json:"paidContent" bson:"paidContent" validate:"omitempty,no_xss,max=20000"`
	InvestmentAmount   float64            `json:"investmentAmount" bson:"investmentAmount" validate:"omitempty,min=0"`
	InvestmentCurrency string             `json:"investmentCurrency" bson:"investmentCurrency" validate:"omitempty,currency"`
}

// PaidUpdateInput là input cập nhật từng phần một hạng mục quảng cáo
type PaidUpdateInput struct {
	StartDate          string    `json:"startDate" bson:"startDate" validate:"omitempty,iso_date"`
	EndDate            string    `json:"endDate" bson:"endDate" validate:"omitempty,iso_date"`
	Title              *string   `json:"title" bson:"title" validate:"omitempty,no_xss,max=500"`
	Axis               *string   `json:"axis" bson:"axis" validate:"omitempty,no_xss"`
	Status             string    `json:"status" bson:"status" validate:"omitempty,planner_status"`
	PaidChannels       *[]string `json:"paidChannels" bson:"paidChannels" validate:"omitempty,dive,no_xss"`
	PaidContent        *string   `json:"paidContent" bson:"paidContent" validate:"omitempty,no_xss,max=20000"`
	InvestmentAmount   *float64  `json:"investmentAmount" bson:"investmentAmount" validate:"omitempty,min=0"`
	InvestmentCurrency string    `json:"investmentCurrency" bson:"investmentCurrency" validate:"omitempty,currency"`
}

// ToggleApprovalInput là input duyệt / bỏ duyệt một khối trên post
type ToggleApprovalInput struct {
	Block    string `json:"block" validate:"required,oneof=brief copyOut pieceLink"`
	Approved bool   `json:"approved"`
}

// InternalCommentInput là input autosave ghi chú nội bộ của một item
type InternalCommentInput struct {
	Text string `json:"text" validate:"omitempty,no_xss,max=20000"`
}
