package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"

	"content_planner/internal/utility"
)

// FlexTime là timestamp dạng chuỗi ISO cố định độ rộng ("2006-01-02T15:04:05.000Z").
// Dữ liệu cũ có thể lưu timestamp dưới dạng bson datetime, số millis hoặc chuỗi;
// FlexTime ép tất cả về một dạng khi decode nên tầng trên chỉ so sánh chuỗi.
type FlexTime string

// IsZero trả về true nếu chưa có giá trị
func (t FlexTime) IsZero() bool {
	return t == ""
}

// String trả về chuỗi ISO (rỗng nếu chưa có giá trị)
func (t FlexTime) String() string {
	return string(t)
}

// MarshalBSONValue lưu FlexTime dưới dạng chuỗi ISO; giá trị rỗng lưu null
func (t FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if t == "" {
		return bson.TypeNull, nil, nil
	}
	return bson.TypeString, bsoncore.AppendString(nil, string(t)), nil
}

// UnmarshalBSONValue ép datetime / int64 millis / double / string / null về chuỗi ISO.
// Giá trị không nhận dạng được coi như absent (chuỗi rỗng) — không trả lỗi để
// một document hỏng không làm fail cả cursor.
func (t *FlexTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}

	switch bt {
	case bson.TypeString:
		s, ok := rv.StringValueOK()
		if !ok {
			*t = ""
			return nil
		}
		// Chuỗi đã là ISO thì re-format để đảm bảo đúng độ rộng cố định
		if ms, err := utility.ISOToMillis(s); err == nil {
			*t = FlexTime(utility.MillisToISO(ms))
		} else {
			*t = ""
		}
	case bson.TypeDateTime:
		if ms, ok := rv.DateTimeOK(); ok {
			*t = FlexTime(utility.MillisToISO(ms))
		} else {
			*t = ""
		}
	case bson.TypeInt64:
		if ms, ok := rv.Int64OK(); ok && ms > 0 {
			*t = FlexTime(utility.MillisToISO(ms))
		} else {
			*t = ""
		}
	case bson.TypeInt32:
		if v, ok := rv.Int32OK(); ok && v > 0 {
			*t = FlexTime(utility.MillisToISO(int64(v)))
		} else {
			*t = ""
		}
	case bson.TypeDouble:
		if f, ok := rv.DoubleOK(); ok && f > 0 {
			*t = FlexTime(utility.MillisToISO(int64(f)))
		} else {
			*t = ""
		}
	default:
		*t = ""
	}
	return nil
}

// MarshalJSON trả về null khi chưa có giá trị, ngược lại chuỗi ISO
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return []byte(`"` + string(t) + `"`), nil
}

// UnmarshalJSON nhận null hoặc chuỗi ISO
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		if ms, err := utility.ISOToMillis(inner); err == nil {
			*t = FlexTime(utility.MillisToISO(ms))
			return nil
		}
	}
	*t = ""
	return nil
}
