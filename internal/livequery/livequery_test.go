package livequery

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/events"
)

// scopedDoc mô phỏng một document planner trong sự kiện thay đổi
type scopedDoc struct {
	ID       primitive.ObjectID
	ClientID primitive.ObjectID
	MonthKey string
	ThreadID primitive.ObjectID
}

func TestScopeMatchesCollection(t *testing.T) {
	scope := Scope{Collection: "planner_posts"}

	assert.True(t, scope.Matches(events.DataChangeEvent{CollectionName: "planner_posts"}))
	assert.False(t, scope.Matches(events.DataChangeEvent{CollectionName: "planner_events"}))
}

func TestScopeMatchesClientAndMonth(t *testing.T) {
	clientID := primitive.NewObjectID()
	scope := Scope{Collection: "planner_posts", ClientID: clientID, MonthKey: "2024-05"}

	match := events.DataChangeEvent{
		CollectionName: "planner_posts",
		Document:       scopedDoc{ClientID: clientID, MonthKey: "2024-05"},
	}
	assert.True(t, scope.Matches(match))

	otherClient := match
	otherClient.Document = scopedDoc{ClientID: primitive.NewObjectID(), MonthKey: "2024-05"}
	assert.False(t, scope.Matches(otherClient))

	otherMonth := match
	otherMonth.Document = scopedDoc{ClientID: clientID, MonthKey: "2024-06"}
	assert.False(t, scope.Matches(otherMonth))

	// Document trỏ qua pointer vẫn đọc được field
	ptr := match
	ptr.Document = &scopedDoc{ClientID: clientID, MonthKey: "2024-05"}
	assert.True(t, scope.Matches(ptr))
}

func TestScopeMatchesNilDocumentIsConservative(t *testing.T) {
	scope := Scope{
		Collection: "planner_posts",
		ClientID:   primitive.NewObjectID(),
		MonthKey:   "2024-05",
	}

	// Sự kiện không mang document (xóa hàng loạt): luôn match để phía nhận refetch
	assert.True(t, scope.Matches(events.DataChangeEvent{CollectionName: "planner_posts"}))
}

func TestScopeMatchesThread(t *testing.T) {
	threadID := primitive.NewObjectID()
	scope := Scope{Collection: "chat_messages", ThreadID: threadID}

	assert.True(t, scope.Matches(events.DataChangeEvent{
		CollectionName: "chat_messages",
		Document:       scopedDoc{ThreadID: threadID},
	}))
	assert.False(t, scope.Matches(events.DataChangeEvent{
		CollectionName: "chat_messages",
		Document:       scopedDoc{ThreadID: primitive.NewObjectID()},
	}))
}

func TestLiveQueryInitialSnapshot(t *testing.T) {
	fetch := func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}

	q, err := NewLiveQuery(context.Background(), Scope{Collection: "planner_posts"}, fetch, nil)
	assert.NoError(t, err)
	defer q.Close()

	assert.Equal(t, []string{"a", "b"}, q.Snapshot())
	assert.Equal(t, int64(0), q.Version())
	assert.NoError(t, q.LastError())
}

func TestLiveQueryRefetchOnMatchingEvent(t *testing.T) {
	var fetches atomic.Int64
	fetch := func(ctx context.Context) ([]int, error) {
		n := fetches.Add(1)
		return []int{int(n)}, nil
	}

	q, err := NewLiveQuery(context.Background(), Scope{Collection: "planner_posts"}, fetch, nil)
	assert.NoError(t, err)
	defer q.Close()

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "planner_posts",
		Operation:      "insert",
	})

	assert.Eventually(t, func() bool {
		return q.Version() > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{int(fetches.Load())}, q.Snapshot())
}

func TestLiveQueryIgnoresForeignEvent(t *testing.T) {
	var fetches atomic.Int64
	fetch := func(ctx context.Context) ([]int, error) {
		fetches.Add(1)
		return nil, nil
	}

	q, err := NewLiveQuery(context.Background(), Scope{Collection: "planner_posts"}, fetch, nil)
	assert.NoError(t, err)
	defer q.Close()

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "planner_events",
		Operation:      "insert",
	})

	// Sự kiện collection khác không kích hoạt refetch
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), fetches.Load())
	assert.Equal(t, int64(0), q.Version())
}

func TestLiveQueryManualRefetchKeepsSnapshotOnError(t *testing.T) {
	var fail atomic.Bool
	fetch := func(ctx context.Context) ([]string, error) {
		if fail.Load() {
			return nil, assert.AnError
		}
		return []string{"ok"}, nil
	}

	q, err := NewLiveQuery(context.Background(), Scope{Collection: "planner_posts"}, fetch, nil)
	assert.NoError(t, err)
	defer q.Close()

	fail.Store(true)
	assert.Error(t, q.Refetch(context.Background()))

	// Refetch lỗi: snapshot cũ còn nguyên, lỗi đọc được qua LastError
	assert.Equal(t, []string{"ok"}, q.Snapshot())
	assert.Error(t, q.LastError())

	fail.Store(false)
	assert.NoError(t, q.Refetch(context.Background()))
	assert.NoError(t, q.LastError())
	assert.Equal(t, int64(1), q.Version())
}
