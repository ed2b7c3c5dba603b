package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateROAS(t *testing.T) {
	t.Parallel()

	b, _ := newTestLoop(DefaultConfig()) // MinROAS 1.5

	tests := []struct {
		roas float64
		want ROASRating
	}{
		{3.5, ROASExcellent},
		{3.0, ROASExcellent},
		{2.9, ROASGood},
		{2.0, ROASGood},
		{1.7, ROASAcceptable},
		{1.5, ROASAcceptable},
		{1.2, ROASPoor},
		{1.0, ROASPoor},
		{0.99, ROASCritical},
		{0, ROASCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.rateROAS(tt.roas), "roas %.2f", tt.roas)
	}
}

func TestAnalyzeROASPerformance(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 10000, 10, 10)
	require.NoError(t, l.UpdateFinancials(300, 100)) // business-wide roas 3.0

	scale := addCampaign(t, l, "scale-me", 100, 100, 350) // 3.5
	kill := addCampaign(t, l, "kill-me", 100, 100, 20)    // 0.2

	a := b.AnalyzeROASPerformance(l)

	assert.InDelta(t, 3.0, a.Current, 1e-9)
	assert.Equal(t, ROASExcellent, a.Rating)
	assert.Equal(t, ratingRecommendations[ROASExcellent], a.Recommendations)

	require.Len(t, a.Campaigns, 2)
	assert.Equal(t, scale.ID, a.Campaigns[0].CampaignID)
	assert.Equal(t, ROASExcellent, a.Campaigns[0].Rating)
	assert.Equal(t, "Scale this campaign", a.Campaigns[0].Recommendation)
	assert.Equal(t, kill.ID, a.Campaigns[1].CampaignID)
	assert.Equal(t, ROASCritical, a.Campaigns[1].Rating)
	assert.Equal(t, "Kill this campaign", a.Campaigns[1].Recommendation)
}

func TestAcceptableTierFollowsConfiguredMinimum(t *testing.T) {
	b, _ := newTestLoop(Config{MinROAS: 1.2, MaxDailySpend: 500, EmergencyReserve: 200})

	assert.Equal(t, ROASAcceptable, b.rateROAS(1.2))
	assert.Equal(t, ROASPoor, b.rateROAS(1.19))
}

func TestFinancialReportComposition(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 10000, 10, 10)
	require.NoError(t, l.UpdateFinancials(30, 200)) // roas 0.15: critical rating, ROAS alert

	addCampaign(t, l, "c1", 100, 100, 10) // critical
	addCampaign(t, l, "c2", 100, 100, 15) // critical, same recommendation

	b.UpdateDailyMetrics(l)
	report := b.FinancialReport(l)

	assert.Equal(t, l.CurrentDay(), report.Day)
	assert.Equal(t, l.Health(), report.Health)
	require.NotNil(t, report.Latest)
	assert.InDelta(t, l.TotalSpend(), report.Latest.Spend, 1e-9)
	assert.Equal(t, ROASCritical, report.ROAS.Rating)
	assert.NotEmpty(t, report.ActiveAlerts)
	assert.Equal(t, 30, report.Projections.Days)

	// Recommendations are a set: the shared campaign recommendation
	// appears once, after the rating-level ones.
	counts := map[string]int{}
	for _, rec := range report.Recommendations {
		counts[rec]++
	}
	for rec, n := range counts {
		assert.Equal(t, 1, n, "recommendation %q duplicated", rec)
	}
	assert.Contains(t, report.Recommendations, "Kill this campaign")
	for _, rec := range ratingRecommendations[ROASCritical] {
		assert.Contains(t, report.Recommendations, rec)
	}
}

func TestFinancialReportEmptyHistory(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 1000, 50, 10)

	report := b.FinancialReport(l)
	assert.Nil(t, report.Latest)
	assert.Equal(t, RiskNone, report.Projections.BankruptcyRisk)
	assert.InDelta(t, 1000, report.Projections.ProjectedNetWorth, 1e-9)
}
