package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000.0, cfg.Business.InitialCapital)
	assert.Equal(t, 50.0, cfg.Business.DailyFee)
	assert.Equal(t, 10, cfg.Business.BankruptcyThreshold)
	assert.Equal(t, 1.5, cfg.Control.MinROAS)
	assert.Equal(t, 500.0, cfg.Control.MaxDailySpend)
	assert.Equal(t, 200.0, cfg.Control.EmergencyReserve)
	assert.False(t, cfg.Control.DisableProtection)
	assert.Equal(t, "none", cfg.Journal.Type)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "venture.yaml", `
business:
  initial_capital: 2000
  daily_fee: 25
  bankruptcy_threshold: 5
control:
  min_roas: 1.2
scenario:
  steps:
    - revenue: 100
      campaigns:
        - id: c1
          product_id: p1
          platform: facebook
          budget: 80
    - performance:
        - campaign_id: c1
          spend: 40
          revenue: 90
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, cfg.Business.InitialCapital)
	assert.Equal(t, 25.0, cfg.Business.DailyFee)
	assert.Equal(t, 5, cfg.Business.BankruptcyThreshold)
	assert.Equal(t, 1.2, cfg.Control.MinROAS)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 500.0, cfg.Control.MaxDailySpend)
	assert.Equal(t, 200.0, cfg.Control.EmergencyReserve)
	assert.Equal(t, "none", cfg.Journal.Type)

	require.Len(t, cfg.Scenario.Steps, 2)
	require.Len(t, cfg.Scenario.Steps[0].Campaigns, 1)
	assert.Equal(t, "c1", cfg.Scenario.Steps[0].Campaigns[0].ID)
	assert.Equal(t, 80.0, cfg.Scenario.Steps[0].Campaigns[0].Budget)
	require.Len(t, cfg.Scenario.Steps[1].Performance, 1)
	assert.Equal(t, 90.0, cfg.Scenario.Steps[1].Performance[0].Revenue)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "venture.json", `{
		"business": {"initial_capital": 750, "daily_fee": 10, "bankruptcy_threshold": 3},
		"journal": {"type": "sqlite", "db_path": "run.db"}
	}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 750.0, cfg.Business.InitialCapital)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "run.db", cfg.Journal.DBPath)
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileGarbage(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bad.yaml", "{{{not a config")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital", func(c *Config) { c.Business.InitialCapital = 0 }},
		{"negative fee", func(c *Config) { c.Business.DailyFee = -1 }},
		{"zero threshold", func(c *Config) { c.Business.BankruptcyThreshold = 0 }},
		{"zero min roas", func(c *Config) { c.Control.MinROAS = 0 }},
		{"zero spend limit", func(c *Config) { c.Control.MaxDailySpend = 0 }},
		{"negative reserve", func(c *Config) { c.Control.EmergencyReserve = -5 }},
		{"inverted health bands", func(c *Config) { c.Health.Good = c.Health.Excellent + 1 }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"csv without paths", func(c *Config) { c.Journal.Type = "csv" }},
		{"sqlite without db path", func(c *Config) { c.Journal.Type = "sqlite" }},
		{"negative step revenue", func(c *Config) {
			c.Scenario.Steps = []Step{{Revenue: -10}}
		}},
		{"performance missing campaign id", func(c *Config) {
			c.Scenario.Steps = []Step{{Performance: []CampaignPerformance{{Spend: 5}}}}
		}},
		{"negative performance spend", func(c *Config) {
			c.Scenario.Steps = []Step{{Performance: []CampaignPerformance{{CampaignID: "c1", Spend: -1}}}}
		}},
	}

	for _, m := range mutations {
		m := m
		t.Run(m.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			m.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := Default()
	cfg.Business.InitialCapital = 1234
	cfg.Control.DisableProtection = true
	cfg.Scenario.Steps = []Step{{Revenue: 50, Spend: 20}}

	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got, name)
	}
}
