package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentWebhooks_SameTransaction races conflicting terminal
// events for one transaction. Per-key serialization means exactly one
// event settles the record; every later delivery is a no-op regardless
// of arrival order.
func TestConcurrentWebhooks_SameTransaction(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, env := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
	id := env["data"].(map[string]any)["id"].(string)

	events := []string{
		"transaction.approved",
		"transaction.declined",
		"transaction.refunded",
		"transaction.canceled",
	}

	concurrency := 40
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(i int) {
			defer wg.Done()
			resp, _ := app.postJSON(t, "/api/v1/webhookfx", map[string]any{
				"id":    fmt.Sprintf("evt-race-%d", i),
				"event": events[i%len(events)],
				"data":  map[string]any{"transactionId": id},
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}(i)
	}
	wg.Wait()

	_, env = app.getJSON(t, "/api/v1/transactions/"+id)
	first := env["data"].(map[string]any)["status"].(string)
	assert.Contains(t, []string{"approved", "declined", "refunded", "canceled"}, first)

	// The settled status must survive another wave of conflicting events.
	for i := 0; i < len(events); i++ {
		resp, _ := app.postJSON(t, "/api/v1/webhookfx", map[string]any{
			"id":    fmt.Sprintf("evt-after-%d", i),
			"event": events[i],
			"data":  map[string]any{"transactionId": id},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	_, env = app.getJSON(t, "/api/v1/transactions/"+id)
	assert.Equal(t, first, env["data"].(map[string]any)["status"])
}

// TestConcurrentWebhooks_DifferentTransactions verifies independent
// records settle in parallel without interference.
func TestConcurrentWebhooks_DifferentTransactions(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	count := 20
	ids := make([]string, count)
	for i := range ids {
		_, env := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
		ids[i] = env["data"].(map[string]any)["id"].(string)
	}

	var wg sync.WaitGroup
	wg.Add(count)
	for i, id := range ids {
		go func(i int, id string) {
			defer wg.Done()
			resp, _ := app.postJSON(t, "/api/v1/webhookfx", map[string]any{
				"id":    fmt.Sprintf("evt-par-%d", i),
				"event": "transaction.approved",
				"data":  map[string]any{"transactionId": id},
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}(i, id)
	}
	wg.Wait()

	for _, id := range ids {
		_, env := app.getJSON(t, "/api/v1/transactions/"+id)
		assert.Equal(t, "approved", env["data"].(map[string]any)["status"])
	}
}

// TestConcurrentCreationAndWebhook races transaction creation on one
// goroutine against webhook delivery for already-created records.
func TestConcurrentCreationAndWebhook(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, env := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
	existing := env["data"].(map[string]any)["id"].(string)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			resp, _ := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			resp, _ := app.postJSON(t, "/api/v1/webhookfx", map[string]any{
				"id":    fmt.Sprintf("evt-mix-%d", i),
				"event": "transaction.approved",
				"data":  map[string]any{"transactionId": existing},
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	}()
	wg.Wait()

	_, env = app.getJSON(t, "/api/v1/transactions/"+existing)
	assert.Equal(t, "approved", env["data"].(map[string]any)["status"])
}
