package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturekit/venture/config"
	"github.com/venturekit/venture/journal"
	"github.com/venturekit/venture/ledger"
)

func baseConfig() *config.Config {
	cfg := config.Default()
	cfg.Business.InitialCapital = 1000
	cfg.Business.DailyFee = 50
	cfg.Business.BankruptcyThreshold = 3
	return cfg
}

func TestRunnerExecutesScriptedDays(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.Steps = []config.Step{
		{
			Products:  []config.ProductSpec{{ID: "p1", Name: "widget", Margin: 0.4}},
			Campaigns: []config.CampaignSpec{{ID: "c1", ProductID: "p1", Platform: "meta", Budget: 100}},
		},
		{
			Performance: []config.CampaignPerformance{{CampaignID: "c1", Spend: 40, Revenue: 120}},
		},
		{
			Revenue: 50,
			Spend:   10,
		},
	}

	mem := journal.NewMemory()
	r, err := NewRunnerWithJournal(cfg, mem)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, 3, res.Days)
	assert.False(t, res.Halted)
	assert.NotEmpty(t, res.RunID)

	// Three days of fees plus the scripted flows.
	want := 1000.0 - 3*50 + 120 - 40 + 50 - 10
	assert.InDelta(t, want, res.Export.NetWorth, 1e-9)
	assert.Equal(t, 3, res.Export.Day)

	c := r.Ledger().Campaign("c1")
	require.NotNil(t, c)
	assert.InDelta(t, 40, c.Spend, 1e-9)
	assert.InDelta(t, 3.0, c.ROAS, 1e-9)

	require.Len(t, mem.Snapshots, 3)
	assert.Equal(t, res.RunID, mem.Snapshots[0].RunID)
}

func TestRunnerHaltsOnBankruptcy(t *testing.T) {
	cfg := baseConfig()
	cfg.Business.InitialCapital = 100
	cfg.Business.DailyFee = 100
	cfg.Business.BankruptcyThreshold = 2
	// Six idle days; fees alone sink the business well before day six.
	cfg.Scenario.Steps = make([]config.Step, 6)

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	assert.True(t, res.Halted)
	// Day 1: 0, day 2: -100 (1 negative day), day 3: -200 (2: bankrupt).
	assert.Equal(t, 3, res.Days)
	assert.Equal(t, ledger.HealthBankrupt, res.Export.Health)
	assert.False(t, r.More())
}

func TestRunnerContinueAfterBankruptcy(t *testing.T) {
	cfg := baseConfig()
	cfg.Business.InitialCapital = 100
	cfg.Business.DailyFee = 100
	cfg.Business.BankruptcyThreshold = 2
	cfg.Scenario.ContinueAfterBankruptcy = true
	cfg.Scenario.Steps = make([]config.Step, 6)

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)
	assert.False(t, res.Halted)
	assert.Equal(t, 6, res.Days)
}

func TestRunnerRecordsUnknownCampaignAsError(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.Steps = []config.Step{
		{Performance: []config.CampaignPerformance{{CampaignID: "ghost", Spend: 10, Revenue: 5}}},
	}

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, res.Export.ErrorCount)
	// The ghost's numbers never reached the books.
	assert.InDelta(t, 1000-50, res.Export.NetWorth, 1e-9)
}

func TestRunnerGeneratesIDsWhenOmitted(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.Steps = []config.Step{
		{Campaigns: []config.CampaignSpec{{ProductID: "p1", Platform: "tiktok", Budget: 50}}},
	}

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)
	_, err = r.Run()
	require.NoError(t, err)

	campaigns := r.Ledger().Campaigns()
	require.Len(t, campaigns, 1)
	assert.NotEmpty(t, campaigns[0].ID)
}

func TestRunnerProtectionDisabledViaConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Business.InitialCapital = 10000
	cfg.Business.DailyFee = 10
	cfg.Control.DisableProtection = true
	cfg.Scenario.Steps = []config.Step{
		{
			Campaigns:   []config.CampaignSpec{{ID: "c1", ProductID: "p1", Platform: "meta", Budget: 100}},
			Performance: []config.CampaignPerformance{{CampaignID: "c1", Spend: 100, Revenue: 30}},
		},
	}

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)
	_, err = r.Run()
	require.NoError(t, err)

	assert.Equal(t, ledger.CampaignActive, r.Ledger().Campaign("c1").Status)
	assert.False(t, r.Loop().ProtectionEnabled())
}

func TestRunnerStepwise(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.Steps = make([]config.Step, 2)

	r, err := NewRunnerWithJournal(cfg, journal.NewMemory())
	require.NoError(t, err)

	require.True(t, r.More())
	snap, err := r.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Day)

	snap, err = r.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Day)

	require.False(t, r.More())
	_, err = r.Step()
	assert.Error(t, err)
}
