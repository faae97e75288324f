package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pagfx-engine/config"
	"pagfx-engine/internal/adapter/acquirer"
	httpHandler "pagfx-engine/internal/adapter/http/handler"
	"pagfx-engine/internal/adapter/storage/memory"
	redisStorage "pagfx-engine/internal/adapter/storage/redis"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/internal/service"
	"pagfx-engine/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack over the in-memory store with
// a miniredis-backed dedup fast path. This exercises the real HTTP layer,
// middleware, handlers, services and Redis store end-to-end.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("error", false)

	txStore := memory.NewTransactionStore()
	eventStore := memory.NewWebhookEventStore()
	dedup := redisStorage.NewEventDedupStore(rdb)
	gateway := acquirer.NewSimulatedGateway(log)
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes-long!", 24*time.Hour, "test-issuer")

	credCfg := config.CredentialsConfig{
		Development: config.CredentialPair{APIKey: "dev-key", APISecret: "dev-secret", MerchantID: "m-dev"},
		Production:  config.CredentialPair{APIKey: "prod-key", APISecret: "prod-secret", MerchantID: "m-prod"},
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TransactionSvc: service.NewTransactionService(txStore, gateway, log),
		WebhookSvc:     service.NewWebhookService(txStore, eventStore, dedup, log),
		FeeSvc:         service.NewFeeService(log),
		CredentialSvc:  service.NewCredentialService(credCfg),
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	return &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) postJSON(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env
}

func (a *testApp) getJSON(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env
}

func pixTransactionBody() map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"name":  "João Teste",
			"email": "joao@example.com",
			"taxId": "98765432100",
		},
		"product": map[string]any{
			"name":     "Curso online",
			"price":    250.00,
			"quantity": 1,
		},
		"payment": map[string]any{"method": "pix"},
	}
}

func TestFullLifecycle_PixApproved(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, env := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := env["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "pending", data["status"])

	resp, _ = app.postJSON(t, "/api/v1/webhookfx", map[string]any{
		"id":    "evt-lifecycle-1",
		"event": "transaction.approved",
		"data":  map[string]any{"transactionId": id},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = app.getJSON(t, "/api/v1/transactions/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", env["data"].(map[string]any)["status"])
}

func TestWebhook_ExactRedeliveryShortCircuited(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, env := app.postJSON(t, "/api/v1/transactions", pixTransactionBody())
	id := env["data"].(map[string]any)["id"].(string)

	body := map[string]any{
		"id":    "evt-redelivery",
		"event": "transaction.approved",
		"data":  map[string]any{"transactionId": id},
	}
	for i := 0; i < 3; i++ {
		resp, _ := app.postJSON(t, "/api/v1/webhookfx", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	_, env = app.getJSON(t, "/api/v1/transactions/"+id)
	assert.Equal(t, "approved", env["data"].(map[string]any)["status"])
}

func TestFeeQuote_OverHTTP(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, env := app.postJSON(t, "/api/v1/taxas", map[string]any{
		"companyId":     "cmp-1",
		"amount":        100.00,
		"paymentMethod": "pix",
		"installments":  1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := env["data"].(map[string]any)
	assert.InDelta(t, 101.09, data["totalAmount"].(float64), 0.01)
	assert.InDelta(t, 98.91, data["netAmount"].(float64), 0.01)
}

func TestHealth_ReportsRedis(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])

	deps := body["dependencies"].(map[string]any)
	redisDep := deps["redis"].(map[string]any)
	assert.Equal(t, "healthy", redisDep["status"])
}
