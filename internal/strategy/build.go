package strategy

import "fmt"

// Build constructs a named strategy from a loosely typed parameter map
// (YAML config or JSON request body). Unknown names are an error; missing
// parameters fall back to each strategy's defaults.
func Build(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "random":
		return NewRandomStrategy(RandomParams{
			Seed:      int64(num(params, "seed", 0)),
			TradeProb: num(params, "trade_prob", 0.25),
			MaxShares: int64(num(params, "max_shares", 10)),
		}), nil
	case "crossover":
		return NewCrossoverStrategy(CrossoverParams{
			Fast:   int(num(params, "fast", 10)),
			Slow:   int(num(params, "slow", 30)),
			Shares: int64(num(params, "shares", 10)),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Names lists the buildable strategies.
func Names() []string {
	return []string{"random", "crossover"}
}

func num(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		case int64:
			return float64(x)
		}
	}
	return def
}
