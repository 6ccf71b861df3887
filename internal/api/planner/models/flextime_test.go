package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"

	"content_planner/internal/utility"
)

func TestFlexTimeDecodesLegacyShapes(t *testing.T) {
	ms := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC).UnixMilli()
	want := FlexTime(utility.MillisToISO(ms))

	// Dữ liệu cũ: bson datetime
	var ft FlexTime
	err := ft.UnmarshalBSONValue(bson.TypeDateTime, bsoncore.AppendDateTime(nil, ms))
	assert.NoError(t, err)
	assert.Equal(t, want, ft)

	// Dữ liệu cũ: số millis
	err = ft.UnmarshalBSONValue(bson.TypeInt64, bsoncore.AppendInt64(nil, ms))
	assert.NoError(t, err)
	assert.Equal(t, want, ft)

	// Chuỗi ISO thiếu millis được ép về độ rộng cố định
	err = ft.UnmarshalBSONValue(bson.TypeString, bsoncore.AppendString(nil, "2024-05-01T10:30:00Z"))
	assert.NoError(t, err)
	assert.Equal(t, want, ft)
}

func TestFlexTimeGarbageBecomesAbsent(t *testing.T) {
	// Giá trị hỏng không trả lỗi: coi như chưa có timestamp
	var ft FlexTime
	err := ft.UnmarshalBSONValue(bson.TypeString, bsoncore.AppendString(nil, "not a date"))
	assert.NoError(t, err)
	assert.True(t, ft.IsZero())

	err = ft.UnmarshalBSONValue(bson.TypeNull, nil)
	assert.NoError(t, err)
	assert.True(t, ft.IsZero())

	err = ft.UnmarshalBSONValue(bson.TypeInt64, bsoncore.AppendInt64(nil, -1))
	assert.NoError(t, err)
	assert.True(t, ft.IsZero())
}

func TestFlexTimeJSON(t *testing.T) {
	// Rỗng serialize thành null
	data, err := FlexTime("").MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))

	iso := "2024-05-01T10:30:00.000Z"
	data, err = FlexTime(iso).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"`+iso+`"`, string(data))

	var ft FlexTime
	assert.NoError(t, ft.UnmarshalJSON([]byte(`"`+iso+`"`)))
	assert.Equal(t, FlexTime(iso), ft)

	assert.NoError(t, ft.UnmarshalJSON([]byte("null")))
	assert.True(t, ft.IsZero())
}
