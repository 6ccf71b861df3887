package livequery

// SyncStatus là trạng thái đồng bộ tổng hợp hiển thị cho người dùng.
// Thứ tự ưu tiên khi nhiều điều kiện cùng đúng: error > offline > saving > saved.
const (
	SyncError   = "error"   // Lần ghi gần nhất thất bại
	SyncOffline = "offline" // Mất kết nối database
	SyncSaving  = "saving"  // Còn autosave đang chờ ghi
	SyncSaved   = "saved"   // Tất cả đã ghi xong
)

// ComputeSyncStatus gộp ba tín hiệu thành một trạng thái duy nhất
func ComputeSyncStatus(online bool, pendingWrites int, lastError error) string {
	if lastError != nil {
		return SyncError
	}
	if !online {
		return SyncOffline
	}
	if pendingWrites > 0 {
		return SyncSaving
	}
	return SyncSaved
}
