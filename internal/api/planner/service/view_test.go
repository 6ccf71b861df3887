package plannersvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/planner/models"
	"content_planner/internal/utility"
)

func isoAt(day, hour int) string {
	return utility.MillisToISO(time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC).UnixMilli())
}

func millisAt(day, hour int) int64 {
	return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC).UnixMilli()
}

func TestComputeMonthAggregates(t *testing.T) {
	posts := []models.Post{
		{Channels: []string{"instagram", "tiktok"}, Axis: "branding"},
		{Channels: []string{"instagram"}, Axis: "branding"},
		{Channels: []string{}, Axis: ""},
	}
	events := []models.Event{{}, {}}
	paids := []models.Paid{
		{InvestmentAmount: 1000, InvestmentCurrency: models.CurrencyARS},
		{InvestmentAmount: 500, InvestmentCurrency: models.CurrencyARS},
		{InvestmentAmount: 200, InvestmentCurrency: models.CurrencyUSD},
		{InvestmentAmount: 0, InvestmentCurrency: models.CurrencyUSD},
	}

	agg := ComputeMonthAggregates(posts, events, paids)

	assert.Equal(t, 3, agg.PostCount)
	assert.Equal(t, 2, agg.EventCount)
	assert.Equal(t, 4, agg.PaidCount)
	// Post nhiều kênh đếm vào từng kênh
	assert.Equal(t, 2, agg.PostCountByChannel["instagram"])
	assert.Equal(t, 1, agg.PostCountByChannel["tiktok"])
	assert.Equal(t, 2, agg.PostCountByAxis["branding"])
	assert.Equal(t, float64(1500), agg.InvestmentByCurrency[models.CurrencyARS])
	assert.Equal(t, float64(200), agg.InvestmentByCurrency[models.CurrencyUSD])
	// Số tiền 0 không tạo entry
	assert.Len(t, agg.InvestmentByCurrency, 2)
}

func TestComputeMonthAggregatesEmpty(t *testing.T) {
	agg := ComputeMonthAggregates(nil, nil, nil)
	assert.Equal(t, 0, agg.PostCount)
	assert.NotNil(t, agg.PostCountByChannel)
	assert.NotNil(t, agg.InvestmentByCurrency)
}

func TestResolveSelectionPreviousSurvives(t *testing.T) {
	post := models.Post{ID: primitive.NewObjectID()}
	paid := models.Paid{ID: primitive.NewObjectID()}

	// Item chọn trước đó vẫn còn: giữ nguyên, kể cả khi có post đứng trước
	sel := ResolveSelection(paid.ID.Hex(), []models.Post{post}, []models.Paid{paid}, nil, true)
	assert.Equal(t, Selection{Kind: SelectionPaid, ID: paid.ID.Hex()}, sel)
}

func TestResolveSelectionFallbackOrder(t *testing.T) {
	post := models.Post{ID: primitive.NewObjectID()}
	paid := models.Paid{ID: primitive.NewObjectID()}
	event := models.Event{ID: primitive.NewObjectID()}

	// Item trước đó đã bị xóa: rơi về post đầu tiên
	sel := ResolveSelection(primitive.NewObjectID().Hex(), []models.Post{post}, []models.Paid{paid}, []models.Event{event}, true)
	assert.Equal(t, Selection{Kind: SelectionPost, ID: post.ID.Hex()}, sel)

	// Không có post: paid đầu tiên khi client bật paid
	sel = ResolveSelection("", nil, []models.Paid{paid}, []models.Event{event}, true)
	assert.Equal(t, Selection{Kind: SelectionPaid, ID: paid.ID.Hex()}, sel)

	// Paid tắt: bỏ qua paid, lấy event
	sel = ResolveSelection("", nil, []models.Paid{paid}, []models.Event{event}, false)
	assert.Equal(t, Selection{Kind: SelectionEvent, ID: event.ID.Hex()}, sel)

	// Tháng trống
	sel = ResolveSelection("", nil, nil, nil, true)
	assert.Equal(t, Selection{Kind: SelectionNone}, sel)
}

func TestUnreadByID(t *testing.T) {
	read := models.Post{ID: primitive.NewObjectID(), LastMessageAt: models.FlexTime(isoAt(10, 9))}
	unreadPost := models.Post{ID: primitive.NewObjectID(), LastMessageAt: models.FlexTime(isoAt(10, 12))}
	neverRead := models.Event{ID: primitive.NewObjectID(), LastMessageAt: models.FlexTime(isoAt(11, 8))}
	noMessages := models.Paid{ID: primitive.NewObjectID()}

	lastRead := map[string]string{
		read.ID.Hex():       isoAt(10, 10), // đọc sau tin cuối
		unreadPost.ID.Hex(): isoAt(10, 10), // tin cuối mới hơn dấu đọc
	}

	unread := UnreadByID(
		[]models.Post{read, unreadPost},
		[]models.Event{neverRead},
		[]models.Paid{noMessages},
		lastRead,
	)

	assert.False(t, unread[read.ID.Hex()])
	assert.True(t, unread[unreadPost.ID.Hex()])
	// Chưa từng đọc nhưng có tin nhắn: chưa đọc
	assert.True(t, unread[neverRead.ID.Hex()])
	// Chưa có tin nhắn nào: không chưa đọc
	assert.False(t, unread[noMessages.ID.Hex()])
}

func TestDayUpdates(t *testing.T) {
	seenDay := models.Post{Date: "2024-05-10", UpdatedAt: millisAt(10, 9)}
	updatedDay := models.Post{Date: "2024-05-11", UpdatedAt: millisAt(11, 12)}
	otherMonth := models.Event{Date: "2024-06-01", UpdatedAt: millisAt(31, 23)}

	lastSeen := map[string]string{
		"2024-05-10": isoAt(10, 10), // xem sau hoạt động cuối
		"2024-05-11": isoAt(11, 10), // hoạt động mới hơn lần xem
	}

	updates := DayUpdates("2024-05", []models.Post{seenDay, updatedDay}, []models.Event{otherMonth}, nil, lastSeen)

	assert.False(t, updates["2024-05-10"])
	assert.True(t, updates["2024-05-11"])
	// Ngày ngoài tháng không xuất hiện
	assert.False(t, updates["2024-06-01"])
}

func TestDayUpdatesChatBeatsSeen(t *testing.T) {
	// Sửa trước lần xem nhưng chat đến sau: ngày vẫn sáng chấm
	p := models.Post{
		Date:          "2024-05-10",
		UpdatedAt:     millisAt(10, 8),
		LastMessageAt: models.FlexTime(isoAt(10, 12)),
	}
	lastSeen := map[string]string{"2024-05-10": isoAt(10, 10)}

	updates := DayUpdates("2024-05", []models.Post{p}, nil, nil, lastSeen)
	assert.True(t, updates["2024-05-10"])
}

func TestDayUpdatesPaidSpansRange(t *testing.T) {
	paid := models.Paid{
		StartDate: "2024-04-28",
		EndDate:   "2024-05-03",
		UpdatedAt: millisAt(2, 12),
	}

	updates := DayUpdates("2024-05", nil, nil, []models.Paid{paid}, nil)

	// Khoảng chạy cắt về tháng: chỉ 01..03 sáng chấm
	assert.True(t, updates["2024-05-01"])
	assert.True(t, updates["2024-05-02"])
	assert.True(t, updates["2024-05-03"])
	assert.False(t, updates["2024-04-28"])
	assert.False(t, updates["2024-05-04"])
}

func TestBuildCalendarCellsShape(t *testing.T) {
	cells := BuildCalendarCells("2024-05", nil, nil, nil, nil)

	assert.Len(t, cells, 6)
	for _, week := range cells {
		assert.Len(t, week, 7)
	}
	// 2024-05-01 là thứ Tư: hai ô đầu thuộc tháng Tư
	assert.False(t, cells[0][0].InMonth)
	assert.Equal(t, "2024-04-29", cells[0][0].Date)
	assert.True(t, cells[0][2].InMonth)
	assert.Equal(t, "2024-05-01", cells[0][2].Date)

	assert.Nil(t, BuildCalendarCells("bad", nil, nil, nil, nil))
}

func TestBuildCalendarCellsOverflow(t *testing.T) {
	day := "2024-05-15"
	posts := []models.Post{
		{ID: primitive.NewObjectID(), Date: day, Title: "p1"},
		{ID: primitive.NewObjectID(), Date: day, Title: "p2"},
		{ID: primitive.NewObjectID(), Date: day, Title: "p3"},
	}
	paids := []models.Paid{
		{ID: primitive.NewObjectID(), StartDate: day, EndDate: day, Title: "ad1"},
		{ID: primitive.NewObjectID(), StartDate: day, EndDate: day, Title: "ad2"},
	}

	cells := BuildCalendarCells("2024-05", posts, nil, paids, nil)

	var cell CalendarCell
	for _, week := range cells {
		for _, c := range week {
			if c.Date == day {
				cell = c
			}
		}
	}

	// 5 item nhưng chỉ 3 chỉ báo, post đứng trước paid
	assert.Len(t, cell.Indicators, 3)
	assert.Equal(t, 2, cell.Overflow)
	assert.Equal(t, SelectionPost, cell.Indicators[0].Kind)
	assert.Equal(t, "p1", cell.Indicators[0].Title)
	assert.Equal(t, SelectionPost, cell.Indicators[2].Kind)
}

func TestBuildCalendarCellsEventsAndUpdates(t *testing.T) {
	day := "2024-05-20"
	events := []models.Event{{ID: primitive.NewObjectID(), Date: day, Title: "Lanzamiento"}}
	posts := []models.Post{{ID: primitive.NewObjectID(), Date: day, Title: "p"}}

	cells := BuildCalendarCells("2024-05", posts, events, nil, map[string]bool{day: true})

	var cell CalendarCell
	for _, week := range cells {
		for _, c := range week {
			if c.Date == day {
				cell = c
			}
		}
	}

	// Event nằm ở dải riêng, không chiếm chỗ chỉ báo
	assert.Len(t, cell.Indicators, 1)
	assert.Len(t, cell.Events, 1)
	assert.Equal(t, "Lanzamiento", cell.Events[0].Title)
	assert.True(t, cell.HasUpdate)
	assert.Equal(t, 0, cell.Overflow)
}
