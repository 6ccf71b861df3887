package utility

import (
	"fmt"
	"time"
)

// Các hằng định dạng thời gian của planner.
// Timestamp dạng chuỗi luôn là RFC3339 UTC với mili giây, độ rộng cố định,
// để so sánh chuỗi cho kết quả đúng thứ tự thời gian.
const (
	DateKeyLayout   = "2006-01-02"              // Khóa ngày: YYYY-MM-DD
	MonthKeyLayout  = "2006-01"                 // Khóa tháng: YYYY-MM
	ISOMillisLayout = "2006-01-02T15:04:05.000Z" // Timestamp UTC độ rộng cố định
)

// NowMillis trả về thời điểm hiện tại dạng UnixMilli (kiểu lưu trong MongoDB)
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NowISO trả về thời điểm hiện tại dạng chuỗi ISO chuẩn hóa
func NowISO() string {
	return MillisToISO(time.Now().UnixMilli())
}

// MillisToISO chuyển UnixMilli thành chuỗi ISO chuẩn hóa (UTC, mili giây)
func MillisToISO(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(ISOMillisLayout)
}

// ISOToMillis parse một chuỗi timestamp ISO về UnixMilli.
// Chấp nhận mọi biến thể RFC3339 (có/không mili giây, offset khác UTC).
func ISOToMillis(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid ISO timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// ToDateKey chuyển time.Time thành khóa ngày YYYY-MM-DD (theo UTC)
func ToDateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// ParseDateKey parse khóa ngày YYYY-MM-DD thành time.Time (UTC, 00:00)
func ParseDateKey(dateKey string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	return t, nil
}

// IsDateKey kiểm tra chuỗi có phải khóa ngày hợp lệ không
func IsDateKey(s string) bool {
	_, err := time.Parse(DateKeyLayout, s)
	return err == nil
}

// MonthKeyOf trả về khóa tháng YYYY-MM từ một khóa ngày YYYY-MM-DD.
// Khóa ngày không hợp lệ trả về chuỗi rỗng.
func MonthKeyOf(dateKey string) string {
	if !IsDateKey(dateKey) {
		return ""
	}
	return dateKey[:7]
}

// MonthKeyFrom trả về khóa tháng YYYY-MM từ năm và tháng (1-12)
func MonthKeyFrom(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(MonthKeyLayout)
}

// ParseMonthKey parse khóa tháng YYYY-MM thành năm và tháng
func ParseMonthKey(monthKey string) (int, time.Month, error) {
	t, err := time.Parse(MonthKeyLayout, monthKey)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	return t.Year(), t.Month(), nil
}

// IsMonthKey kiểm tra chuỗi có phải khóa tháng hợp lệ không
func IsMonthKey(s string) bool {
	_, _, err := ParseMonthKey(s)
	return err == nil
}

// MaxISO trả về chuỗi ISO lớn hơn (muộn hơn) trong hai chuỗi chuẩn hóa.
// So sánh chuỗi trực tiếp vì định dạng độ rộng cố định.
func MaxISO(a, b string) string {
	if a > b {
		return a
	}
	return b
}
