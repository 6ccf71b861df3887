package models

import (
	"content_planner/internal/utility"
)

// Kết quả chuẩn hóa một entity đọc từ database.
// Chuẩn hóa là hàm toàn phần: mọi document đều cho ra một entity dùng được
// hoặc bị đánh dấu invalid kèm lý do, không bao giờ panic hay trả lỗi.
const (
	NormalizeOK        = "ok"        // Document đã chuẩn, không sửa gì
	NormalizeDefaulted = "defaulted" // Đã điền/sửa một số field (liệt kê trong Fields)
	NormalizeInvalid   = "invalid"   // Thiếu dữ liệu cốt lõi, không dùng được
)

// NormalizeResult mô tả những gì hàm chuẩn hóa đã làm với document
type NormalizeResult struct {
	Outcome string   // ok | defaulted | invalid
	Fields  []string // Các field đã bị điền mặc định hoặc sửa
	Reason  string   // Lý do khi invalid
}

// IsUsable trả về true nếu entity sau chuẩn hóa dùng được (ok hoặc defaulted)
func (r NormalizeResult) IsUsable() bool {
	return r.Outcome != NormalizeInvalid
}

func okResult() NormalizeResult {
	return NormalizeResult{Outcome: NormalizeOK}
}

func invalidResult(reason string) NormalizeResult {
	return NormalizeResult{Outcome: NormalizeInvalid, Reason: reason}
}

// resultFrom gom danh sách field đã sửa thành kết quả ok/defaulted
func resultFrom(fields []string) NormalizeResult {
	if len(fields) == 0 {
		return okResult()
	}
	return NormalizeResult{Outcome: NormalizeDefaulted, Fields: fields}
}

// NormalizeClient chuẩn hóa một client: slice nil về rỗng,
// paidChannels đi theo cờ enablePaid, trục thiếu màu được gán màu
// từ bảng màu theo vị trí. Chạy lại trên kết quả của chính nó luôn cho ra ok.
func NormalizeClient(c Client) (Client, NormalizeResult) {
	if c.Name == "" {
		return c, invalidResult("client thiếu tên")
	}

	var fields []string
	if c.Channels == nil {
		c.Channels = []string{}
		fields = append(fields, "channels")
	}
	// paidChannels chỉ tồn tại khi enablePaid: tắt paid thì kênh cũ bị bỏ,
	// bật paid mà chưa cấu hình thì nhận bộ mặc định
	if effective := c.EffectivePaidChannels(); len(c.PaidChannels) != len(effective) {
		c.PaidChannels = append([]string{}, effective...)
		fields = append(fields, "paidChannels")
	} else if c.PaidChannels == nil {
		c.PaidChannels = []string{}
		fields = append(fields, "paidChannels")
	}
	if c.Axes == nil {
		c.Axes = []Axis{}
		fields = append(fields, "axes")
	}

	coloredAny := false
	for i := range c.Axes {
		if c.Axes[i].Color == "" {
			c.Axes[i].Color = AxisColorPalette[i%len(AxisColorPalette)]
			coloredAny = true
		}
	}
	if coloredAny {
		fields = append(fields, "axes.color")
	}

	return c, resultFrom(fields)
}

// NormalizePost chuẩn hóa một post: monthKey suy từ date, status fallback,
// slice nil về rỗng. Post thiếu clientId hoặc date không hợp lệ là invalid.
func NormalizePost(p Post) (Post, NormalizeResult) {
	if p.ClientID.IsZero() {
		return p, invalidResult("post thiếu clientId")
	}
	if !utility.IsDateKey(p.Date) {
		return p, invalidResult("post có date không hợp lệ: " + p.Date)
	}

	var fields []string
	if monthKey := utility.MonthKeyOf(p.Date); p.MonthKey != monthKey {
		p.MonthKey = monthKey
		fields = append(fields, "monthKey")
	}
	if normalized := NormalizeStatus(p.Status); p.Status != normalized {
		p.Status = normalized
		fields = append(fields, "status")
	}
	if p.Channels == nil {
		p.Channels = []string{}
		fields = append(fields, "channels")
	}

	return p, resultFrom(fields)
}

// NormalizeEvent chuẩn hóa một event, cùng quy tắc với post
func NormalizeEvent(e Event) (Event, NormalizeResult) {
	if e.ClientID.IsZero() {
		return e, invalidResult("event thiếu clientId")
	}
	if !utility.IsDateKey(e.Date) {
		return e, invalidResult("event có date không hợp lệ: " + e.Date)
	}

	var fields []string
	if monthKey := utility.MonthKeyOf(e.Date); e.MonthKey != monthKey {
		e.MonthKey = monthKey
		fields = append(fields, "monthKey")
	}
	if normalized := NormalizeStatus(e.Status); e.Status != normalized {
		e.Status = normalized
		fields = append(fields, "status")
	}
	if e.Channels == nil {
		e.Channels = []string{}
		fields = append(fields, "channels")
	}

	return e, resultFrom(fields)
}

// NormalizePaid chuẩn hóa một paid item: endDate trước startDate bị clamp về startDate,
// monthKey suy từ startDate, số tiền âm về 0, tiền tệ lạ về ARS.
func NormalizePaid(p Paid) (Paid, NormalizeResult) {
	if p.ClientID.IsZero() {
		return p, invalidResult("paid thiếu clientId")
	}
	if !utility.IsDateKey(p.StartDate) {
		return p, invalidResult("paid có startDate không hợp lệ: " + p.StartDate)
	}

	var fields []string
	if !utility.IsDateKey(p.EndDate) || p.EndDate < p.StartDate {
		p.EndDate = p.StartDate
		fields = append(fields, "endDate")
	}
	if monthKey := utility.MonthKeyOf(p.StartDate); p.MonthKey != monthKey {
		p.MonthKey = monthKey
		fields = append(fields, "monthKey")
	}
	if normalized := NormalizeStatus(p.Status); p.Status != normalized {
		p.Status = normalized
		fields = append(fields, "status")
	}
	if p.PaidChannels == nil {
		p.PaidChannels = []string{}
		fields = append(fields, "paidChannels")
	}
	if p.InvestmentAmount < 0 {
		p.InvestmentAmount = 0
		fields = append(fields, "investmentAmount")
	}
	if p.InvestmentCurrency != CurrencyARS && p.InvestmentCurrency != CurrencyUSD {
		p.InvestmentCurrency = CurrencyARS
		fields = append(fields, "investmentCurrency")
	}

	return p, resultFrom(fields)
}
