package handlers

import (
	"errors"
	"net/http"

	"trade-backtest/internal/analysis"
	"trade-backtest/internal/api/models"
	"trade-backtest/internal/backtest"
	"trade-backtest/internal/metrics"
	"trade-backtest/internal/model"
	"trade-backtest/internal/store"
	"trade-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BacktestHandler runs backtests over inline price data and serves stored
// results.
type BacktestHandler struct {
	store *store.Memory
	log   *zap.Logger
}

func NewBacktestHandler(st *store.Memory, log *zap.Logger) *BacktestHandler {
	return &BacktestHandler{store: st, log: log}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	series, err := buildSeries(req.Data)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATA", err.Error())
		return
	}

	strat, err := strategy.Build(req.Config.Strategy.Name, req.Config.Strategy.Params)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}

	opts := []backtest.Option{backtest.WithLogger(h.log)}
	if req.Config.InitialCash != 0 {
		opts = append(opts, backtest.WithInitialCash(req.Config.InitialCash))
	}
	if req.Config.TransactionCost != 0 {
		opts = append(opts, backtest.WithTransactionCost(req.Config.TransactionCost))
	}
	if req.Aux != nil {
		aux, err := buildSeries(*req.Aux)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_DATA", err.Error())
			return
		}
		opts = append(opts, backtest.WithAuxData(aux))
	}

	engine, err := backtest.New(series, strat, opts...)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}

	result, err := engine.Run()
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		if errors.Is(err, backtest.ErrNegativeCash) {
			writeError(c, http.StatusUnprocessableEntity, "NEGATIVE_CASH", err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "BACKTEST_ERROR", err.Error())
		return
	}
	metrics.RunsTotal.WithLabelValues("completed").Inc()

	id := h.store.Put(strat.Name(), result)
	resp := models.BacktestResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
	}
	if req.Options.IncludeTransactions {
		resp.Transactions = convertTransactions(result.Transactions)
	}
	if req.Options.IncludeSnapshots {
		resp.Snapshots = convertSnapshots(result.Snapshots)
	}
	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/backtest/:id/ledger.
func (h *BacktestHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	result, name, ok := h.store.Get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "unknown or expired run id")
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:           id,
		Strategy:     name,
		Transactions: convertTransactions(result.Transactions),
	})
}

// GetSnapshots handles GET /api/v1/backtest/:id/snapshots.
func (h *BacktestHandler) GetSnapshots(c *gin.Context) {
	id := c.Param("id")
	result, name, ok := h.store.Get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "unknown or expired run id")
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:        id,
		Strategy:  name,
		Snapshots: convertSnapshots(result.Snapshots),
	})
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

func buildSeries(p models.SeriesPayload) (*model.PriceSeries, error) {
	return model.NewPriceSeries(p.Timestamps, p.Tickers, p.Rows)
}

func buildSummary(result *backtest.Result) models.BacktestSummary {
	perf := analysis.Summarize(result)
	return models.BacktestSummary{
		InitialCash:     perf.InitialValue,
		FinalCash:       perf.FinalValue,
		TotalReturn:     perf.TotalReturn,
		BenchmarkValue:  perf.BenchmarkValue,
		BenchmarkReturn: perf.BenchmarkReturn,
		MaxDrawdown:     perf.MaxDrawdown,
		Trades:          perf.Trades,
		RealizedPnL:     perf.RealizedPnL,
		Steps:           len(result.Snapshots),
	}
}

func convertTransactions(transactions []backtest.Transaction) []models.TransactionRow {
	out := make([]models.TransactionRow, len(transactions))
	for i, t := range transactions {
		out[i] = models.TransactionRow{
			Time:            t.Time,
			Ticker:          t.Ticker,
			Side:            string(t.Side),
			Price:           t.Price,
			Shares:          t.Shares,
			Notional:        t.Notional,
			TransactionCost: t.TransactionCost,
			PnL:             t.PnL,
		}
	}
	return out
}

func convertSnapshots(snapshots []backtest.Snapshot) []models.SnapshotRow {
	out := make([]models.SnapshotRow, len(snapshots))
	for i, s := range snapshots {
		out[i] = models.SnapshotRow{
			Time:           s.Time,
			BidCount:       s.BidCount,
			PositionCount:  s.PositionCount,
			Cash:           s.Cash,
			PositionsValue: s.PositionsValue,
			TotalValue:     s.TotalValue,
			Benchmark:      s.Benchmark,
		}
	}
	return out
}
