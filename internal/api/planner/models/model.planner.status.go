package models

// Trạng thái vòng đời của một item trên lịch.
// Giá trị lưu nguyên văn tiếng Tây Ban Nha theo quy ước của khách hàng.
const (
	StatusNoIniciado        = "no_iniciado"
	StatusEnProceso         = "en_proceso"
	StatusEsperandoFeedback = "esperando_feedback"
	StatusAprobado          = "aprobado"
	StatusPublicada         = "publicada"
)

// StatusOrder liệt kê các trạng thái theo thứ tự vòng đời
var StatusOrder = []string{
	StatusNoIniciado,
	StatusEnProceso,
	StatusEsperandoFeedback,
	StatusAprobado,
	StatusPublicada,
}

// IsValidStatus kiểm tra một chuỗi có phải trạng thái hợp lệ không
func IsValidStatus(s string) bool {
	for _, v := range StatusOrder {
		if v == s {
			return true
		}
	}
	return false
}

// NormalizeStatus đưa trạng thái về giá trị hợp lệ.
// Trạng thái rỗng hoặc không nhận dạng được fallback về trạng thái đầu vòng đời.
func NormalizeStatus(s string) string {
	if IsValidStatus(s) {
		return s
	}
	return StatusNoIniciado
}
