// Package models định nghĩa các entity của lịch nội dung: client, post, event,
// paid và snapshot tổng hợp theo tháng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AxisColorPalette là bảng màu gán tuần tự cho các trục nội dung chưa có màu
var AxisColorPalette = []string{
	"#6366F1",
	"#0EA5E9",
	"#10B981",
	"#F59E0B",
	"#D946EF",
	"#06B6D4",
}

// DefaultPaidChannels là danh sách kênh quảng cáo mặc định
// khi client bật paid mà chưa cấu hình kênh nào
var DefaultPaidChannels = []string{
	"Google search / Meta Ads",
	"Google Ads",
	"LinkedIn Ads",
	"TikTok Ads",
	"Programmatic",
}

// Axis là một trục nội dung (content pillar) của client.
// ID ổn định để các post tham chiếu; màu dùng để tô trên lịch.
type Axis struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color" bson:"color"`
}

// Client là một khách hàng sở hữu lịch nội dung riêng.
// Client không bao giờ bị xóa cứng: mọi entity con tham chiếu clientId.
type Client struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" index:"text"`
	Channels     []string           `json:"channels" bson:"channels"`
	PaidChannels []string           `json:"paidChannels" bson:"paidChannels"`
	EnablePaid   bool               `json:"enablePaid" bson:"enablePaid"`
	Axes         []Axis             `json:"axes" bson:"axes"`
	LogoDataURL  string             `json:"logoDataUrl,omitempty" bson:"logoDataUrl,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// AxisByID tìm trục nội dung theo ID, trả về nil nếu không có
func (c *Client) AxisByID(axisID string) *Axis {
	for i := range c.Axes {
		if c.Axes[i].ID == axisID {
			return &c.Axes[i]
		}
	}
	return nil
}

// EffectivePaidChannels trả về danh sách kênh quảng cáo dùng được:
// kênh đã cấu hình, hoặc bộ mặc định nếu bật paid mà chưa cấu hình
func (c *Client) EffectivePaidChannels() []string {
	if !c.EnablePaid {
		return nil
	}
	if len(c.PaidChannels) > 0 {
		return c.PaidChannels
	}
	return DefaultPaidChannels
}
