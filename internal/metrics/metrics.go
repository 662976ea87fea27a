// Package metrics provides Prometheus instrumentation for the backtester.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunsTotal counts backtest runs, partitioned by outcome.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backtest_runs_total",
		Help: "Total number of backtest runs",
	}, []string{"status"})

	// BidsSettled counts bids that settled, partitioned by side.
	BidsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backtest_bids_settled_total",
		Help: "Total number of settled bids",
	}, []string{"side"})

	// BidsRejected counts bids dropped during settlement validation.
	BidsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backtest_bids_rejected_total",
		Help: "Bids rejected during settlement",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
