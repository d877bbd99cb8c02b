package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCollectsEveryOutcome(t *testing.T) {
	var inFlight, maxInFlight int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		status, _ := strconv.Atoi(r.URL.Query().Get("status"))
		w.WriteHeader(status)
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		cfg := config.Default()
		cfg.BatchConcurrency = 2
		e := New(cfg, nil, nil)

		statuses := []int{200, 404, 429, 200, 404}
		var calls []Call
		for _, s := range statuses {
			calls = append(calls, Call{Fixture: fixtures.Fixture{
				Name:        "get",
				Method:      "GET",
				URLTemplate: server.URL + "/carts/1?status=" + strconv.Itoa(s),
			}})
		}

		outcomes := e.Batch(context.Background(), calls)
		require.Len(t, outcomes, len(calls))
		seen := map[string]bool{}
		for i, o := range outcomes {
			require.NoError(t, o.Err)
			assert.Equal(t, i, o.Index)
			assert.Equal(t, statuses[i], o.Result.Status)
			assert.False(t, seen[o.Result.RequestID], "duplicate result")
			seen[o.Result.RequestID] = true
		}
		assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
	})
}

func TestBatchKeepsFailuresInTheirSlot(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		calls := []Call{
			{Fixture: fixtures.Fixture{Name: "ok", Method: "GET", URLTemplate: server.URL}},
			{Fixture: fixtures.Fixture{Name: "bad", Method: "GET", URLTemplate: server.URL + "/{{missing}}"}},
			{Fixture: fixtures.Fixture{Name: "ok", Method: "GET", URLTemplate: server.URL}},
		}
		outcomes := New(config.Default(), nil, nil).Batch(context.Background(), calls)
		require.Len(t, outcomes, 3)
		assert.NoError(t, outcomes[0].Err)
		assert.Error(t, outcomes[1].Err)
		assert.NoError(t, outcomes[2].Err)
		assert.Equal(t, 200, outcomes[2].Result.Status)
	})
}
