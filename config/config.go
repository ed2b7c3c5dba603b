// Package config holds the run configuration for a simulation: business
// parameters, control-loop thresholds, health bands, journaling, and the
// scripted scenario.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/venturekit/venture/ledger"
)

// Config represents the complete simulation configuration.
type Config struct {
	Business BusinessConfig     `json:"business" yaml:"business"`
	Control  ControlConfig      `json:"control" yaml:"control"`
	Health   ledger.HealthBands `json:"health" yaml:"health"`
	Journal  JournalConfig      `json:"journal" yaml:"journal"`
	Scenario ScenarioConfig     `json:"scenario" yaml:"scenario"`
}

// BusinessConfig contains ledger initialization parameters.
type BusinessConfig struct {
	InitialCapital      float64 `json:"initial_capital" yaml:"initial_capital"`
	DailyFee            float64 `json:"daily_fee" yaml:"daily_fee"`
	BankruptcyThreshold int     `json:"bankruptcy_threshold" yaml:"bankruptcy_threshold"`
}

// ControlConfig contains control-loop thresholds. DisableProtection is
// phrased negatively so the zero value keeps bankruptcy protection on.
type ControlConfig struct {
	MinROAS           float64 `json:"min_roas" yaml:"min_roas"`
	MaxDailySpend     float64 `json:"max_daily_spend" yaml:"max_daily_spend"`
	EmergencyReserve  float64 `json:"emergency_reserve" yaml:"emergency_reserve"`
	DisableProtection bool    `json:"disable_protection,omitempty" yaml:"disable_protection,omitempty"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
	AlertsFile    string `json:"alerts_file,omitempty" yaml:"alerts_file,omitempty"`
	ActionsFile   string `json:"actions_file,omitempty" yaml:"actions_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ScenarioConfig scripts the simulated days. Each step is one day.
type ScenarioConfig struct {
	// ContinueAfterBankruptcy keeps stepping after the ledger goes
	// bankrupt instead of halting the run.
	ContinueAfterBankruptcy bool   `json:"continue_after_bankruptcy,omitempty" yaml:"continue_after_bankruptcy,omitempty"`
	Steps                   []Step `json:"steps" yaml:"steps"`
}

// Step describes one simulated business day: entities launched that
// morning, campaign performance during the day, and any extra revenue or
// spend outside the tracked campaigns.
type Step struct {
	Revenue     float64               `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	Spend       float64               `json:"spend,omitempty" yaml:"spend,omitempty"`
	Products    []ProductSpec         `json:"products,omitempty" yaml:"products,omitempty"`
	Campaigns   []CampaignSpec        `json:"campaigns,omitempty" yaml:"campaigns,omitempty"`
	Performance []CampaignPerformance `json:"performance,omitempty" yaml:"performance,omitempty"`
}

type ProductSpec struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string  `json:"name" yaml:"name"`
	Margin float64 `json:"margin" yaml:"margin"`
}

type CampaignSpec struct {
	ID        string  `json:"id,omitempty" yaml:"id,omitempty"`
	ProductID string  `json:"product_id" yaml:"product_id"`
	Platform  string  `json:"platform" yaml:"platform"`
	Budget    float64 `json:"budget" yaml:"budget"`
}

type CampaignPerformance struct {
	CampaignID string  `json:"campaign_id" yaml:"campaign_id"`
	Spend      float64 `json:"spend" yaml:"spend"`
	Revenue    float64 `json:"revenue" yaml:"revenue"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Business.InitialCapital <= 0 {
		return fmt.Errorf("business.initial_capital must be positive")
	}
	if c.Business.DailyFee <= 0 {
		return fmt.Errorf("business.daily_fee must be positive")
	}
	if c.Business.BankruptcyThreshold <= 0 {
		return fmt.Errorf("business.bankruptcy_threshold must be positive")
	}
	if c.Control.MinROAS <= 0 {
		return fmt.Errorf("control.min_roas must be positive")
	}
	if c.Control.MaxDailySpend <= 0 {
		return fmt.Errorf("control.max_daily_spend must be positive")
	}
	if c.Control.EmergencyReserve < 0 {
		return fmt.Errorf("control.emergency_reserve must not be negative")
	}
	if err := c.Health.Validate(); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "none", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.SnapshotsFile == "" || c.Journal.AlertsFile == "" || c.Journal.ActionsFile == "") {
		return fmt.Errorf("journal snapshots_file, alerts_file and actions_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	for i, step := range c.Scenario.Steps {
		if step.Revenue < 0 || step.Spend < 0 {
			return fmt.Errorf("scenario step %d: revenue and spend must not be negative", i)
		}
		for _, p := range step.Performance {
			if p.CampaignID == "" {
				return fmt.Errorf("scenario step %d: performance entry missing campaign_id", i)
			}
			if p.Spend < 0 || p.Revenue < 0 {
				return fmt.Errorf("scenario step %d: performance for %q must not be negative", i, p.CampaignID)
			}
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Business: BusinessConfig{
			InitialCapital:      1000,
			DailyFee:            50,
			BankruptcyThreshold: 10,
		},
		Control: ControlConfig{
			MinROAS:          1.5,
			MaxDailySpend:    500,
			EmergencyReserve: 200,
		},
		Health:  ledger.DefaultHealthBands(),
		Journal: JournalConfig{Type: "none"},
	}
}
