package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisToISOFixedWidth(t *testing.T) {
	// 2024-05-01T00:00:00.000Z
	ms := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "2024-05-01T00:00:00.000Z", MillisToISO(ms))

	// Mili giây lẻ vẫn giữ đủ 3 chữ số
	assert.Equal(t, "2024-05-01T00:00:00.007Z", MillisToISO(ms+7))

	// Độ rộng cố định nên so sánh chuỗi đúng thứ tự thời gian
	assert.True(t, MillisToISO(ms) < MillisToISO(ms+1))
}

func TestISOToMillisRoundTrip(t *testing.T) {
	ms := int64(1714521600123)
	got, err := ISOToMillis(MillisToISO(ms))
	assert.NoError(t, err)
	assert.Equal(t, ms, got)

	// Chấp nhận biến thể không có mili giây
	got, err = ISOToMillis("2024-05-01T00:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), got)

	_, err = ISOToMillis("not-a-timestamp")
	assert.Error(t, err)
}

func TestMonthKeyOf(t *testing.T) {
	assert.Equal(t, "2024-05", MonthKeyOf("2024-05-31"))
	assert.Equal(t, "", MonthKeyOf("2024-13-01"))
	assert.Equal(t, "", MonthKeyOf(""))
	assert.Equal(t, "", MonthKeyOf("31/05/2024"))
}

func TestMonthMatrixShape(t *testing.T) {
	matrix := MonthMatrix(2024, time.May)
	assert.Len(t, matrix, 6)
	for _, week := range matrix {
		assert.Len(t, week, 7)
	}

	// 2024-05-01 là thứ Tư nên ô đầu tiên là thứ Hai 2024-04-29
	assert.Equal(t, "2024-04-29", matrix[0][0])
	assert.Equal(t, "2024-05-01", matrix[0][2])

	// Ô cuối = ô đầu + 41 ngày
	assert.Equal(t, "2024-06-09", matrix[5][6])
}

func TestMonthMatrixMondayFirstDay(t *testing.T) {
	// 2024-07-01 là thứ Hai: ô đầu tiên trùng ngày 1
	matrix := MonthMatrix(2024, time.July)
	assert.Equal(t, "2024-07-01", matrix[0][0])
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February)) // Năm nhuận
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.May))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestClampRangeToMonth(t *testing.T) {
	// Khoảng nằm gọn trong tháng
	keys := ClampRangeToMonth("2024-05-10", "2024-05-12", "2024-05")
	assert.Equal(t, []string{"2024-05-10", "2024-05-11", "2024-05-12"}, keys)

	// Khoảng tràn hai đầu: cắt về biên tháng
	keys = ClampRangeToMonth("2024-04-28", "2024-06-03", "2024-05")
	assert.Len(t, keys, 31)
	assert.Equal(t, "2024-05-01", keys[0])
	assert.Equal(t, "2024-05-31", keys[30])

	// Không giao với tháng
	assert.Empty(t, ClampRangeToMonth("2024-03-01", "2024-03-05", "2024-05"))

	// endDate trước startDate coi như một ngày
	keys = ClampRangeToMonth("2024-05-10", "2024-05-01", "2024-05")
	assert.Equal(t, []string{"2024-05-10"}, keys)

	// Ngày không hợp lệ
	assert.Nil(t, ClampRangeToMonth("bad", "2024-05-10", "2024-05"))
}

func TestRangeTouchesDay(t *testing.T) {
	assert.True(t, RangeTouchesDay("2024-05-10", "2024-05-12", "2024-05-11"))
	assert.True(t, RangeTouchesDay("2024-05-10", "2024-05-10", "2024-05-10"))
	assert.False(t, RangeTouchesDay("2024-05-10", "2024-05-12", "2024-05-13"))
	// endDate hỏng coi như một ngày
	assert.True(t, RangeTouchesDay("2024-05-10", "", "2024-05-10"))
	assert.False(t, RangeTouchesDay("", "", "2024-05-10"))
}

func TestMaxISO(t *testing.T) {
	a := "2024-05-01T00:00:00.000Z"
	b := "2024-05-01T00:00:00.001Z"
	assert.Equal(t, b, MaxISO(a, b))
	assert.Equal(t, b, MaxISO(b, a))
}
