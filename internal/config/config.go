package config

import (
	"errors"
	"fmt"
	"os"

	"trade-backtest/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	InitialCash     float64        `yaml:"initial_cash"`
	TransactionCost float64        `yaml:"transaction_cost"`
	Strategy        StrategyConfig `yaml:"strategy"`
	Data            DataConfig     `yaml:"data"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type DataConfig struct {
	// Prices is the wide-format CSV with a timestamp column and one price
	// column per ticker.
	Prices string `yaml:"prices"`
	// Aux is an optional second CSV with the same index (e.g. OHLCV
	// features for the strategy).
	Aux string `yaml:"aux"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.InitialCash == 0 {
		c.InitialCash = 100000
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.InitialCash <= 0 {
		return errors.New("initial_cash must be > 0")
	}
	if c.TransactionCost < 0 {
		return errors.New("transaction_cost must be >= 0")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	// Validate the strategy by constructing it.
	if _, err := strategy.Build(c.Strategy.Name, c.Strategy.Params); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	return nil
}
