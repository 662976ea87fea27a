package handlers

import (
	"net/http"

	"trade-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler serves strategy discovery requests.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "random",
			Description: "Emits a random bid with a fixed probability per step. Baseline for comparing real strategies against noise.",
			Parameters: []models.ParameterInfo{
				{Name: "seed", Type: "int", Description: "RNG seed for reproducible runs", Default: 0},
				{Name: "trade_prob", Type: "float", Description: "Chance of emitting a bid per step", Default: 0.25},
				{Name: "max_shares", Type: "int", Description: "Upper bound on shares per bid", Default: 10},
			},
		},
		{
			Name:        "crossover",
			Description: "Per-ticker SMA crossover: buy on the fast average crossing above the slow one, liquidate on the cross back down.",
			Parameters: []models.ParameterInfo{
				{Name: "fast", Type: "int", Description: "Fast SMA window", Default: 10},
				{Name: "slow", Type: "int", Description: "Slow SMA window", Default: 30},
				{Name: "shares", Type: "int", Description: "Shares bought per entry signal", Default: 10},
			},
		},
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
