package livehdl

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/events"
	"content_planner/internal/api/planner/models"
	"content_planner/internal/livequery"
)

func TestStreamScopesWithSnapshotNotices(t *testing.T) {
	clientID := primitive.NewObjectID()

	scopes := streamScopes(clientID, "2024-05", true)
	assert.Len(t, scopes, 5)
	for _, scope := range scopes {
		assert.Equal(t, clientID, scope.ClientID)
	}

	// Khi snapshot tháng đã có live query riêng, notice cho collection đó tắt đi
	scopes = streamScopes(clientID, "2024-05", false)
	assert.Len(t, scopes, 4)
}

func TestAggregatesFrameShape(t *testing.T) {
	snap := models.MonthSnapshot{
		ClientID:             primitive.NewObjectID(),
		MonthKey:             "2024-05",
		PostCountByChannel:   map[string]int{"Instagram": 3},
		InvestmentByCurrency: map[string]float64{"ARS": 1500},
	}

	frame := aggregatesFrame([]models.MonthSnapshot{snap}, 7)
	assert.NotNil(t, frame)
	text := string(frame)
	assert.True(t, strings.HasPrefix(text, "event: aggregates\ndata: "))
	assert.True(t, strings.HasSuffix(text, "\n\n"))
	assert.Contains(t, text, `"monthKey":"2024-05"`)
	assert.Contains(t, text, `"version":7`)

	// Tháng chưa có snapshot: frame vẫn hợp lệ, chỉ mang version
	frame = aggregatesFrame(nil, 0)
	assert.NotNil(t, frame)
	assert.Contains(t, string(frame), `"version":0`)
	assert.NotContains(t, string(frame), "snapshot")
}

func TestAggregatesLiveQueryPushesFreshFrame(t *testing.T) {
	clientID := primitive.NewObjectID()
	scope := livequery.Scope{
		Collection: "planner_month_snapshots",
		ClientID:   clientID,
		MonthKey:   "2024-05",
	}

	var investment atomic.Value
	investment.Store(float64(1000))
	fetch := func(ctx context.Context) ([]models.MonthSnapshot, error) {
		return []models.MonthSnapshot{{
			ClientID:             clientID,
			MonthKey:             "2024-05",
			InvestmentByCurrency: map[string]float64{"ARS": investment.Load().(float64)},
		}}, nil
	}

	changed := make(chan struct{}, 1)
	q, err := livequery.NewLiveQuery(context.Background(), scope, fetch, signalChange(changed))
	assert.NoError(t, err)
	defer q.Close()

	// Frame mở đầu dựng từ snapshot tải đồng bộ lúc tạo query
	frame := aggregatesFrame(q.Snapshot(), q.Version())
	assert.Contains(t, string(frame), `"ARS":1000`)
	assert.Contains(t, string(frame), `"version":0`)

	// Worker ghi snapshot mới: sự kiện khớp scope kéo theo refetch và tín hiệu đẩy
	investment.Store(float64(2500))
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "planner_month_snapshots",
		Operation:      "update",
		Document: &models.MonthSnapshot{
			ClientID: clientID,
			MonthKey: "2024-05",
		},
	})

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal after a matching snapshot write")
	}

	assert.Eventually(t, func() bool { return q.Version() > 0 }, 2*time.Second, 10*time.Millisecond)
	frame = aggregatesFrame(q.Snapshot(), q.Version())
	assert.Contains(t, string(frame), `"ARS":2500`)
}
