package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDoc struct {
	ClientID primitive.ObjectID
	MonthKey string
	Title    string
	UpdatedAt int64
}

func TestEmitDataChangedFanOut(t *testing.T) {
	var got1, got2 atomic.Int32

	unsub1 := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "planner_posts" {
			got1.Add(1)
		}
	})
	defer unsub1()
	unsub2 := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		got2.Add(1)
	})
	defer unsub2()

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "planner_posts",
		Operation:      OpInsert,
	})

	assert.Eventually(t, func() bool {
		return got1.Load() == 1 && got2.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestOnDataChangedUnsubscribe(t *testing.T) {
	var got atomic.Int32
	unsub := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		got.Add(1)
	})
	unsub()

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "x", Operation: OpDelete})

	// Không có cách chờ "không xảy ra" nên chờ một nhịp ngắn
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), got.Load())
}

func TestEmitDataChangedRecoversPanic(t *testing.T) {
	var got atomic.Int32
	unsubPanic := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	defer unsubPanic()
	unsub := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		got.Add(1)
	})
	defer unsub()

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "x", Operation: OpUpdate})

	assert.Eventually(t, func() bool { return got.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestReflectionFieldHelpers(t *testing.T) {
	id := primitive.NewObjectID()
	doc := &fakeDoc{ClientID: id, MonthKey: "2024-05", UpdatedAt: 42}

	assert.Equal(t, id, GetClientIDFromDocument(doc))
	assert.Equal(t, "2024-05", GetStringField(doc, "MonthKey"))
	assert.Equal(t, int64(42), GetInt64Field(doc, "UpdatedAt"))

	// Thiếu field / document nil trả về zero value
	assert.Equal(t, primitive.NilObjectID, GetClientIDFromDocument(nil))
	assert.Equal(t, "", GetStringField(doc, "Missing"))
	assert.Equal(t, int64(0), GetInt64Field(nil, "UpdatedAt"))
}
