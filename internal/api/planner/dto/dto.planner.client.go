// Package dto định nghĩa các input cho API của lịch nội dung.
package dto

// AxisInput là input cho một trục nội dung của client
type AxisInput struct {
	ID    string `json:"id" bson:"id" validate:"omitempty,no_xss"`
	Name  string `json:"name" bson:"name" validate:"required,no_xss,max=120"`
	Color string `json:"color" bson:"color" validate:"omitempty,hexcolor"`
}

// ClientCreateInput là input tạo client mới (chỉ admin)
type ClientCreateInput struct {
	Name         string      `json:"name" bson:"name" validate:"required,no_xss,max=200"`
	Channels     []string    `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	PaidChannels []string    `json:"paidChannels" bson:"paidChannels" validate:"omitempty,dive,no_xss"`
	EnablePaid   bool        `json:"enablePaid" bson:"enablePaid"`
	Axes         []AxisInput `json:"axes" bson:"axes" validate:"omitempty,dive"`
	LogoDataURL  string      `json:"logoDataUrl" bson:"logoDataUrl" validate:"omitempty"`
}

// ClientUpdateInput là input cập nhật cấu hình client (chỉ admin).
// Field con trỏ phân biệt "không đổi" (nil) với "xóa rỗng" / "tắt" (giá trị zero).
type ClientUpdateInput struct {
	Name         *string      `json:"name" bson:"name" validate:"omitempty,no_xss,max=200"`
	Channels     *[]string    `json:"channels" bson:"channels" validate:"omitempty,dive,no_xss"`
	PaidChannels *[]string    `json:"paidChannels" bson:"paidChannels" validate:"omitempty,dive,no_xss"`
	EnablePaid   *bool        `json:"enablePaid" bson:"enablePaid"`
	Axes         *[]AxisInput `json:"axes" bson:"axes" validate:"omitempty,dive"`
	LogoDataURL  *string      `json:"logoDataUrl" bson:"logoDataUrl"`
}
