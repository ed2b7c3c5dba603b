package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendsStableUnderSevenEntries(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 100000, 10, 10)

	for i := 0; i < 6; i++ {
		l.AdvanceDay()
		b.UpdateDailyMetrics(l)
	}

	tr := b.CalculateTrends()
	assert.Equal(t, TrendStable, tr.Revenue)
	assert.Equal(t, TrendStable, tr.Spend)
	assert.Equal(t, TrendStable, tr.ROAS)
	assert.Equal(t, TrendStable, tr.ProfitMargin)
}

func TestTrendsStableWithEmptyPriorWindow(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 100000, 10, 10)

	// Exactly seven entries: the prior window is empty, no base to
	// compare against.
	for i := 0; i < 7; i++ {
		l.AdvanceDay()
		require.NoError(t, l.UpdateFinancials(100, 0))
		b.UpdateDailyMetrics(l)
	}

	assert.Equal(t, TrendStable, b.Trend(MetricRevenue))
}

func TestTrendsGrowingRevenue(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 100000, 50, 10)

	for i := 0; i < 14; i++ {
		l.AdvanceDay()
		require.NoError(t, l.UpdateFinancials(100, 0))
		b.UpdateDailyMetrics(l)
	}

	assert.Equal(t, TrendUp, b.Trend(MetricRevenue))
	assert.Equal(t, TrendUp, b.Trend(MetricSpend))

	tr := b.CalculateTrends()
	assert.Equal(t, TrendImproving, tr.Revenue)
	assert.Equal(t, TrendImproving, tr.Spend)
	// Constant 2.0 ROAS and constant margin across the run.
	assert.Equal(t, TrendStable, tr.ROAS)
	assert.Equal(t, TrendStable, tr.ProfitMargin)
}

func TestTrendsDecliningROAS(t *testing.T) {
	b, _ := newTestLoop(DefaultConfig())
	l := newTestLedger(t, 100000, 50, 10)

	for i := 0; i < 7; i++ {
		l.AdvanceDay()
		require.NoError(t, l.UpdateFinancials(100, 0))
		b.UpdateDailyMetrics(l)
	}
	for i := 0; i < 7; i++ {
		l.AdvanceDay()
		require.NoError(t, l.UpdateFinancials(0, 300))
		b.UpdateDailyMetrics(l)
	}

	assert.Equal(t, TrendDown, b.Trend(MetricROAS))
	assert.Equal(t, TrendDeclining, b.CalculateTrends().ROAS)
	assert.Equal(t, TrendDown, b.Trend(MetricMargin))
}
