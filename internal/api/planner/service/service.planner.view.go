package plannersvc

import (
	"content_planner/internal/api/planner/models"
	"content_planner/internal/utility"
)

// File này chứa các hàm dẫn xuất thuần (không chạm database) cho view tháng:
// chọn item, badge chưa đọc, chấm cập nhật theo ngày, số liệu tổng hợp và lưới lịch.
// Handler và snapshot worker gọi chung các hàm này để hai phía luôn khớp số.

// MonthAggregates là số liệu tổng hợp của một (client, tháng)
type MonthAggregates struct {
	PostCountByChannel   map[string]int     `json:"postCountByChannel"`
	PostCountByAxis      map[string]int     `json:"postCountByAxis"`
	InvestmentByCurrency map[string]float64 `json:"investmentByCurrency"`
	PostCount            int                `json:"postCount"`
	EventCount           int                `json:"eventCount"`
	PaidCount            int                `json:"paidCount"`
}

// ComputeMonthAggregates đếm post theo kênh / theo trục và cộng ngân sách theo tiền tệ.
// Post nhiều kênh được đếm vào từng kênh, nên tổng theo kênh có thể lớn hơn số post.
func ComputeMonthAggregates(posts []models.Post, events []models.Event, paids []models.Paid) MonthAggregates {
	agg := MonthAggregates{
		PostCountByChannel:   make(map[string]int),
		PostCountByAxis:      make(map[string]int),
		InvestmentByCurrency: make(map[string]float64),
		PostCount:            len(posts),
		EventCount:           len(events),
		PaidCount:            len(paids),
	}

	for _, p := range posts {
		for _, channel := range p.Channels {
			agg.PostCountByChannel[channel]++
		}
		if p.Axis != "" {
			agg.PostCountByAxis[p.Axis]++
		}
	}
	for _, p := range paids {
		if p.InvestmentAmount > 0 {
			agg.InvestmentByCurrency[p.InvestmentCurrency] += p.InvestmentAmount
		}
	}
	return agg
}

// Loại item được chọn trên panel chi tiết
const (
	SelectionPost  = "post"
	SelectionPaid  = "paid"
	SelectionEvent = "event"
	SelectionNone  = "none"
)

// Selection là item đang chọn trên panel chi tiết của tháng
type Selection struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// ResolveSelection quyết định item được chọn khi mở một tháng.
// Ưu tiên: item chọn trước đó nếu vẫn còn → post đầu tiên → paid đầu tiên
// (khi client bật paid) → event đầu tiên → không chọn gì.
func ResolveSelection(previousID string, posts []models.Post, paids []models.Paid, events []models.Event, enablePaid bool) Selection {
	if previousID != "" {
		for _, p := range posts {
			if p.ID.Hex() == previousID {
				return Selection{Kind: SelectionPost, ID: previousID}
			}
		}
		for _, p := range paids {
			if p.ID.Hex() == previousID {
				return Selection{Kind: SelectionPaid, ID: previousID}
			}
		}
		for _, e := range events {
			if e.ID.Hex() == previousID {
				return Selection{Kind: SelectionEvent, ID: previousID}
			}
		}
	}

	if len(posts) > 0 {
		return Selection{Kind: SelectionPost, ID: posts[0].ID.Hex()}
	}
	if enablePaid && len(paids) > 0 {
		return Selection{Kind: SelectionPaid, ID: paids[0].ID.Hex()}
	}
	if len(events) > 0 {
		return Selection{Kind: SelectionEvent, ID: events[0].ID.Hex()}
	}
	return Selection{Kind: SelectionNone}
}

// threadUnread so sánh tin nhắn cuối với dấu đọc của user.
// Timestamp là chuỗi ISO độ rộng cố định nên so sánh chuỗi cho đúng thứ tự thời gian.
// Thread chưa từng đọc (không có dấu) mà có tin nhắn thì là chưa đọc.
func threadUnread(lastMessageAt models.FlexTime, lastReadAt string) bool {
	if lastMessageAt.IsZero() {
		return false
	}
	if lastReadAt == "" {
		return true
	}
	return string(lastMessageAt) > lastReadAt
}

// UnreadByID trả về map id hex → true cho các item có tin nhắn chưa đọc.
// lastReadByThread là dấu đọc của user hiện tại, khóa theo id hex của item.
func UnreadByID(posts []models.Post, events []models.Event, paids []models.Paid, lastReadByThread map[string]string) map[string]bool {
	unread := make(map[string]bool)
	for _, p := range posts {
		if threadUnread(p.LastMessageAt, lastReadByThread[p.ID.Hex()]) {
			unread[p.ID.Hex()] = true
		}
	}
	for _, e := range events {
		if threadUnread(e.LastMessageAt, lastReadByThread[e.ID.Hex()]) {
			unread[e.ID.Hex()] = true
		}
	}
	for _, p := range paids {
		if threadUnread(p.LastMessageAt, lastReadByThread[p.ID.Hex()]) {
			unread[p.ID.Hex()] = true
		}
	}
	return unread
}

// lastActivityISO trả về dấu hoạt động gần nhất của một item:
// thời điểm sửa cuối hoặc tin nhắn chat cuối, cái nào muộn hơn.
func lastActivityISO(updatedAt int64, lastMessageAt models.FlexTime) string {
	updated := ""
	if updatedAt > 0 {
		updated = utility.MillisToISO(updatedAt)
	}
	return utility.MaxISO(updated, string(lastMessageAt))
}

// DayUpdates trả về map khóa ngày → true cho các ngày trong tháng có hoạt động
// mới hơn lần cuối user xem ngày đó. Paid item rải hoạt động của nó lên mọi ngày
// trong khoảng chạy (đã cắt về tháng đang xem).
func DayUpdates(monthKey string, posts []models.Post, events []models.Event, paids []models.Paid, lastSeenByDay map[string]string) map[string]bool {
	// Gom hoạt động muộn nhất theo ngày
	latestByDay := make(map[string]string)
	bump := func(dateKey, activity string) {
		if activity == "" || !utility.InMonth(dateKey, monthKey) {
			return
		}
		latestByDay[dateKey] = utility.MaxISO(latestByDay[dateKey], activity)
	}

	for _, p := range posts {
		bump(p.Date, lastActivityISO(p.UpdatedAt, p.LastMessageAt))
	}
	for _, e := range events {
		bump(e.Date, lastActivityISO(e.UpdatedAt, e.LastMessageAt))
	}
	for _, p := range paids {
		activity := lastActivityISO(p.UpdatedAt, p.LastMessageAt)
		for _, dateKey := range utility.ClampRangeToMonth(p.StartDate, p.EndDate, monthKey) {
			bump(dateKey, activity)
		}
	}

	updates := make(map[string]bool)
	for dateKey, latest := range latestByDay {
		seen := lastSeenByDay[dateKey]
		if seen == "" || latest > seen {
			updates[dateKey] = true
		}
	}
	return updates
}

// Số chỉ báo item tối đa hiển thị trong một ô lịch; phần còn lại gộp thành "+N"
const maxCellIndicators = 3

// CellIndicator là một chỉ báo item trong ô lịch
type CellIndicator struct {
	Kind   string `json:"kind"` // post | paid
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Axis   string `json:"axis,omitempty"`
}

// CellEvent là một event trong dải event của ô lịch
type CellEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CalendarCell là một ô trong lưới lịch 6x7
type CalendarCell struct {
	Date       string          `json:"date"`
	InMonth    bool            `json:"inMonth"`
	Indicators []CellIndicator `json:"indicators"`
	Overflow   int             `json:"overflow"`
	Events     []CellEvent     `json:"events"`
	HasUpdate  bool            `json:"hasUpdate"`
}

// BuildCalendarCells dựng lưới lịch 6x7 (tuần bắt đầu thứ Hai) cho một tháng.
// Mỗi ô chứa tối đa maxCellIndicators chỉ báo (post trước, paid sau theo thứ tự
// đầu vào), phần dư thành Overflow; event nằm ở dải riêng; HasUpdate lấy từ dayUpdates.
func BuildCalendarCells(monthKey string, posts []models.Post, events []models.Event, paids []models.Paid, dayUpdates map[string]bool) [][]CalendarCell {
	year, month, err := utility.ParseMonthKey(monthKey)
	if err != nil {
		return nil
	}

	postsByDay := make(map[string][]models.Post)
	for _, p := range posts {
		postsByDay[p.Date] = append(postsByDay[p.Date], p)
	}
	eventsByDay := make(map[string][]models.Event)
	for _, e := range events {
		eventsByDay[e.Date] = append(eventsByDay[e.Date], e)
	}
	paidsByDay := make(map[string][]models.Paid)
	for _, p := range paids {
		for _, dateKey := range utility.ClampRangeToMonth(p.StartDate, p.EndDate, monthKey) {
			paidsByDay[dateKey] = append(paidsByDay[dateKey], p)
		}
	}

	matrix := utility.MonthMatrix(year, month)
	cells := make([][]CalendarCell, len(matrix))
	for w, week := range matrix {
		row := make([]CalendarCell, len(week))
		for d, dateKey := range week {
			cell := CalendarCell{
				Date:       dateKey,
				InMonth:    utility.InMonth(dateKey, monthKey),
				Indicators: []CellIndicator{},
				Events:     []CellEvent{},
				HasUpdate:  dayUpdates[dateKey],
			}

			var indicators []CellIndicator
			for _, p := range postsByDay[dateKey] {
				indicators = append(indicators, CellIndicator{
					Kind: SelectionPost, ID: p.ID.Hex(), Title: p.Title, Status: p.Status, Axis: p.Axis,
				})
			}
			for _, p := range paidsByDay[dateKey] {
				indicators = append(indicators, CellIndicator{
					Kind: SelectionPaid, ID: p.ID.Hex(), Title: p.Title, Status: p.Status, Axis: p.Axis,
				})
			}
			if len(indicators) > maxCellIndicators {
				cell.Overflow = len(indicators) - maxCellIndicators
				indicators = indicators[:maxCellIndicators]
			}
			if indicators != nil {
				cell.Indicators = indicators
			}

			for _, e := range eventsByDay[dateKey] {
				cell.Events = append(cell.Events, CellEvent{ID: e.ID.Hex(), Title: e.Title})
			}

			row[d] = cell
		}
		cells[w] = row
	}
	return cells
}
