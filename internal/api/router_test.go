package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"risk-dashboard/internal/api"
	"risk-dashboard/internal/api/handler/dto"
	mw "risk-dashboard/internal/api/middleware"
	"risk-dashboard/internal/config"
	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/event"
	"risk-dashboard/internal/infrastructure/memory"
	"risk-dashboard/internal/infrastructure/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := memory.NewCustomerRepository(seed.BuiltinCustomers(), logger)
	require.NoError(t, err)
	svc := customer.NewCustomerService(repo, event.NopPublisher{}, logger)

	cfg := &config.Config{
		Server:  config.ServerConfig{RateLimit: config.RateLimitConfig{Enabled: false}},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
	limiter := mw.NewRateLimiter(cfg.Server.RateLimit, nil, logger)
	srv := httptest.NewServer(api.SetupRouter(svc, cfg, limiter, logger))
	t.Cleanup(srv.Close)
	t.Cleanup(limiter.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func listCustomers(t *testing.T, srv *httptest.Server) []dto.CustomerResponse {
	t.Helper()
	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/customers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var customers []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &customers))
	return customers
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "risk_dashboard_http_requests_total")
}

func TestSwaggerDocument(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Risk Dashboard API")
	assert.Contains(t, string(body), "/customers/{customerId}")
}

func TestListCustomersReturnsSeed(t *testing.T) {
	srv := newTestServer(t)

	customers := listCustomers(t, srv)

	require.Len(t, customers, 2)
	assert.Equal(t, "CUST1001", customers[0].CustomerID)
	assert.Equal(t, "Review", customers[0].Status)
	assert.Equal(t, "CUST1002", customers[1].CustomerID)
	assert.Equal(t, "Approved", customers[1].Status)
}

func TestUpdateStatusFlow(t *testing.T) {
	srv := newTestServer(t)
	before := listCustomers(t, srv)

	resp, body := doRequest(t, http.MethodPut, srv.URL+"/api/customers/CUST1001", `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Approved", updated.Status)

	after := listCustomers(t, srv)
	assert.Equal(t, "Approved", after[0].Status)
	after[0].Status = before[0].Status
	assert.Equal(t, before, after, "only the status of CUST1001 may change")
}

func TestUpdateStatusErrors(t *testing.T) {
	srv := newTestServer(t)
	before := listCustomers(t, srv)

	tests := []struct {
		name    string
		id      string
		body    string
		message string
	}{
		{"unknown id", "CUST9999", `{"status":"Approved"}`, "Customer not found"},
		{"unknown id and bad status", "CUST9999", `{"status":"Bogus"}`, "Customer not found"},
		{"bad status", "CUST1001", `{"status":"Bogus"}`, "Invalid status"},
		{"wrong case", "CUST1001", `{"status":"approved"}`, "Invalid status"},
		{"empty status", "CUST1001", `{"status":""}`, "Invalid status"},
		{"numeric status", "CUST1001", `{"status":5}`, "Invalid status"},
		{"null status", "CUST1001", `{"status":null}`, "Invalid status"},
		{"unknown id and numeric status", "CUST9999", `{"status":5}`, "Customer not found"},
		{"malformed body", "CUST1001", `not json`, "Invalid request body"},
		{"truncated body", "CUST1001", `{"status":`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPut, srv.URL+"/api/customers/"+tt.id, tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, string(body))
		})
	}

	assert.Equal(t, before, listCustomers(t, srv), "failed updates must not change the store")
}

func TestRiskEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/customers/CUST1001/risk", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"customerId":"CUST1001","riskScore":56,"band":"medium","highRisk":false}`, string(body))

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/customers/CUST1002/risk", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"customerId":"CUST1002","riskScore":45,"band":"low","highRisk":false}`, string(body))

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/customers/NOPE/risk", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCustomerEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/customers/CUST1002", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, "Bob Smith", c.Name)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/customers/NOPE", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Customer not found"}`, string(body))
}

func TestDashboardSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary dto.SummaryResponse
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 2, summary.TotalCustomers)
	assert.Equal(t, "5500.00", summary.AverageIncome)
	assert.Equal(t, "50.5", summary.AverageRiskScore)
	assert.Equal(t, 0, summary.HighRiskCustomers)
	assert.Equal(t, []dto.RiskBucketResponse{{Range: "40-60", Count: 2}}, summary.RiskDistribution)
}

func TestConcurrentStatusUpdates(t *testing.T) {
	srv := newTestServer(t)
	statuses := []string{"Review", "Approved", "Rejected"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := statuses[i%len(statuses)]
			req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/customers/CUST1002", strings.NewReader(`{"status":"`+status+`"}`))
			resp, err := http.DefaultClient.Do(req)
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	customers := listCustomers(t, srv)
	assert.Contains(t, statuses, customers[1].Status)
	assert.Equal(t, "Bob Smith", customers[1].Name)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 1, 0, 0}, customers[1].LoanRepaymentHistory)
}

func TestSetupRouter_UsesGivenRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := memory.NewCustomerRepository(seed.BuiltinCustomers(), logger)
	require.NoError(t, err)
	svc := customer.NewCustomerService(repo, event.NopPublisher{}, logger)

	cfg := &config.Config{
		Server: config.ServerConfig{RateLimit: config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}},
	}
	limiter := mw.NewRateLimiter(cfg.Server.RateLimit, nil, logger)
	defer limiter.Close()
	srv := httptest.NewServer(api.SetupRouter(svc, cfg, limiter, logger))
	defer srv.Close()

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/customers", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/customers", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestSetupRouter_PanicsWithoutRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.PanicsWithValue(t, "rate limiter cannot be nil", func() {
		api.SetupRouter(nil, &config.Config{}, nil, logger)
	})
}
