package utility

import (
	"time"
)

// Hình học lịch tháng: lưới 6 tuần x 7 ngày, tuần bắt đầu từ thứ Hai.
// Lưới luôn đủ 42 ô nên các tháng khác nhau không làm nhảy layout.

// mondayIndex trả về chỉ số ngày trong tuần với thứ Hai = 0 ... Chủ Nhật = 6
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DaysInMonth trả về số ngày của tháng
func DaysInMonth(year int, month time.Month) int {
	// Ngày 0 của tháng sau = ngày cuối của tháng này
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthMatrix trả về lưới 6x7 khóa ngày cho một tháng, tuần bắt đầu thứ Hai.
// Ô đầu tiên là thứ Hai ngay trước (hoặc trùng) ngày 1 của tháng;
// các ô đầu/cuối có thể thuộc tháng lân cận.
func MonthMatrix(year int, month time.Month) [][]string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -mondayIndex(first.Weekday()))

	matrix := make([][]string, 6)
	day := start
	for week := 0; week < 6; week++ {
		row := make([]string, 7)
		for i := 0; i < 7; i++ {
			row[i] = ToDateKey(day)
			day = day.AddDate(0, 0, 1)
		}
		matrix[week] = row
	}
	return matrix
}

// MonthDateKeys trả về danh sách khóa ngày thuộc đúng một tháng, theo thứ tự tăng dần
func MonthDateKeys(year int, month time.Month) []string {
	n := DaysInMonth(year, month)
	keys := make([]string, 0, n)
	for d := 1; d <= n; d++ {
		keys = append(keys, ToDateKey(time.Date(year, month, d, 0, 0, 0, 0, time.UTC)))
	}
	return keys
}

// InMonth kiểm tra một khóa ngày có thuộc tháng (theo khóa tháng) không
func InMonth(dateKey string, monthKey string) bool {
	return MonthKeyOf(dateKey) == monthKey
}

// ClampRangeToMonth cắt một khoảng ngày [startDate, endDate] về phần giao với một tháng.
// Trả về danh sách khóa ngày trong tháng mà khoảng chạm tới (rỗng nếu không giao).
// endDate nhỏ hơn startDate được coi như bằng startDate.
func ClampRangeToMonth(startDate, endDate, monthKey string) []string {
	start, err := ParseDateKey(startDate)
	if err != nil {
		return nil
	}
	end, err := ParseDateKey(endDate)
	if err != nil || end.Before(start) {
		end = start
	}

	year, month, err := ParseMonthKey(monthKey)
	if err != nil {
		return nil
	}
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)

	if start.Before(monthStart) {
		start = monthStart
	}
	if end.After(monthEnd) {
		end = monthEnd
	}
	if end.Before(start) {
		return nil
	}

	var keys []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		keys = append(keys, ToDateKey(day))
	}
	return keys
}

// RangeTouchesDay kiểm tra một khoảng ngày [startDate, endDate] có chạm một ngày cụ thể không.
// endDate nhỏ hơn startDate được coi như bằng startDate.
func RangeTouchesDay(startDate, endDate, dateKey string) bool {
	if !IsDateKey(startDate) || !IsDateKey(dateKey) {
		return false
	}
	if !IsDateKey(endDate) || endDate < startDate {
		endDate = startDate
	}
	return startDate <= dateKey && dateKey <= endDate
}
