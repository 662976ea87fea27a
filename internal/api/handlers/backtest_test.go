package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trade-backtest/internal/api/models"
	"trade-backtest/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*gin.Engine, *BacktestHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewBacktestHandler(store.NewMemory(time.Minute), zap.NewNop())
	r := gin.New()
	r.POST("/api/v1/backtest", h.RunBacktest)
	r.GET("/api/v1/backtest/:id/ledger", h.GetLedger)
	r.GET("/api/v1/backtest/:id/snapshots", h.GetSnapshots)
	return r, h
}

func payload(prices []float64) models.SeriesPayload {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := models.SeriesPayload{Tickers: []string{"AAA"}}
	for i, v := range prices {
		p.Timestamps = append(p.Timestamps, start.AddDate(0, 0, i))
		p.Rows = append(p.Rows, []float64{v})
	}
	return p
}

func post(t *testing.T, r *gin.Engine, req models.BacktestRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, httpReq)
	return w
}

func TestRunBacktest_Completed(t *testing.T) {
	r, _ := newRouter(t)

	w := post(t, r, models.BacktestRequest{
		Data: payload([]float64{10, 11, 12}),
		Config: models.BacktestConfig{
			InitialCash: 5000,
			Strategy:    models.StrategyConfig{Name: "random", Params: map[string]any{"seed": 7}},
		},
		Options: models.BacktestOptions{IncludeSnapshots: true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "completed", resp.Status)
	require.InDelta(t, 5000.0, resp.Summary.InitialCash, 1e-9)
	require.Equal(t, 3, resp.Summary.Steps)
	require.Len(t, resp.Snapshots, 3)
	require.Nil(t, resp.Transactions)
}

func TestRunBacktest_StoredLedgerRoundTrip(t *testing.T) {
	r, _ := newRouter(t)

	w := post(t, r, models.BacktestRequest{
		Data: payload([]float64{10, 11, 12}),
		Config: models.BacktestConfig{
			Strategy: models.StrategyConfig{Name: "random", Params: map[string]any{"seed": 7, "trade_prob": 1.0}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/backtest/"+resp.ID+"/ledger", nil))
	require.Equal(t, http.StatusOK, get.Code)

	var ledger models.LedgerResponse
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &ledger))
	require.Equal(t, resp.ID, ledger.ID)
	require.Equal(t, "random", ledger.Strategy)
	require.Equal(t, resp.Summary.Trades, len(ledger.Transactions))
}

func TestRunBacktest_BadInputs(t *testing.T) {
	tests := []struct {
		name     string
		req      models.BacktestRequest
		status   int
		wantCode string
	}{
		{
			name: "invalid data",
			req: models.BacktestRequest{
				Data: models.SeriesPayload{
					Timestamps: []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
					Tickers:    []string{"AAA", "BBB"},
					Rows:       [][]float64{{1}},
				},
				Config: models.BacktestConfig{Strategy: models.StrategyConfig{Name: "random"}},
			},
			status:   http.StatusBadRequest,
			wantCode: "INVALID_DATA",
		},
		{
			name: "unknown strategy",
			req: models.BacktestRequest{
				Data:   payload([]float64{10, 11}),
				Config: models.BacktestConfig{Strategy: models.StrategyConfig{Name: "momentum"}},
			},
			status:   http.StatusBadRequest,
			wantCode: "INVALID_CONFIG",
		},
		{
			name: "negative initial cash",
			req: models.BacktestRequest{
				Data: payload([]float64{10, 11}),
				Config: models.BacktestConfig{
					InitialCash: -100,
					Strategy:    models.StrategyConfig{Name: "random"},
				},
			},
			status:   http.StatusBadRequest,
			wantCode: "INVALID_CONFIG",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(t)
			w := post(t, r, tt.req)
			require.Equal(t, tt.status, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestGetLedger_UnknownID(t *testing.T) {
	r, _ := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/backtest/nope/ledger", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "NOT_FOUND", resp.Error.Code)
}
