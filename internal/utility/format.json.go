package utility

import (
	"encoding/json"
)

// ExtractJSONStringField lấy giá trị string của một field từ chuỗi JSON object.
// Hỗ trợ cả dạng Extended JSON {"field":{"$oid":"..."}}.
// Trả về chuỗi rỗng nếu JSON không hợp lệ hoặc field không tồn tại.
func ExtractJSONStringField(jsonStr, field string) string {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		return ""
	}
	switch v := m[field].(type) {
	case string:
		return v
	case map[string]interface{}:
		if oid, ok := v["$oid"].(string); ok {
			return oid
		}
	}
	return ""
}
