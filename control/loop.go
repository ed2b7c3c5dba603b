// Package control implements the daily financial control loop: derived
// metrics over a per-call history, alerting with literal-message
// deduplication, automatic bankruptcy protection, and the projection
// engine that extrapolates the history forward.
//
// The loop is meant to be driven by exactly one caller, once per simulated
// day. The 7- and 14-entry windows below are defined over call history,
// not calendar time; calling more or less often skews them, and that
// sensitivity is part of the contract.
package control

import (
	"fmt"
	"math"
	"time"

	"github.com/venturekit/venture/journal"
	"github.com/venturekit/venture/ledger"
)

// Config holds the control-loop thresholds.
type Config struct {
	// MinROAS is the return-on-ad-spend floor below which a warning is
	// raised (once cumulative spend is past the noise gate).
	MinROAS float64
	// MaxDailySpend caps the call-over-call increase of cumulative spend
	// before a warning fires.
	MaxDailySpend float64
	// EmergencyReserve is the cash buffer the protective logic tries to
	// keep; it also offsets the bankruptcy-horizon projection.
	EmergencyReserve float64
}

func DefaultConfig() Config {
	return Config{
		MinROAS:          1.5,
		MaxDailySpend:    500,
		EmergencyReserve: 200,
	}
}

// Snapshot is one control-loop invocation's derived metrics. Revenue and
// Spend are the ledger's cumulative totals at call time, not per-period
// deltas; the windowed statistics difference them explicitly.
type Snapshot struct {
	Day                 int           `json:"day"`
	NetWorth            float64       `json:"net_worth"`
	Revenue             float64       `json:"revenue"`
	Spend               float64       `json:"spend"`
	ROAS                float64       `json:"roas"`
	ProfitMargin        float64       `json:"profit_margin"`
	BurnRate            float64       `json:"burn_rate"`
	DaysUntilBankruptcy *int          `json:"days_until_bankruptcy"`
	Health              ledger.Health `json:"health"`
	AvailableBudget     float64       `json:"available_budget"`
	TotalProfit         float64       `json:"total_profit"`
}

// Loop is the financial control loop. It owns the metrics history and the
// alert log, and mutates the ledger's campaigns and products when
// bankruptcy protection is on.
type Loop struct {
	cfg        Config
	runID      string
	history    []Snapshot
	alerts     AlertLog
	protection bool
	journal    journal.Journal
	now        func() time.Time
}

// New creates a control loop reporting into the given journal. A nil
// journal discards the event stream. Protection starts enabled.
func New(cfg Config, runID string, j journal.Journal) *Loop {
	if j == nil {
		j = journal.Noop{}
	}
	return &Loop{
		cfg:        cfg,
		runID:      runID,
		protection: true,
		journal:    j,
		now:        time.Now,
	}
}

// SetBankruptcyProtection toggles the protective mutations. Metrics and
// alerts keep flowing either way.
func (b *Loop) SetBankruptcyProtection(enabled bool) { b.protection = enabled }

func (b *Loop) ProtectionEnabled() bool { return b.protection }

// History returns the snapshot history in call order.
func (b *Loop) History() []Snapshot {
	out := make([]Snapshot, len(b.history))
	copy(out, b.history)
	return out
}

// Alerts returns every alert, resolved or not, in insertion order.
func (b *Loop) Alerts() []Alert { return b.alerts.All() }

// ActiveAlerts returns the unresolved alerts.
func (b *Loop) ActiveAlerts() []Alert { return b.alerts.Unresolved() }

// ResolveAlert marks the alert at the given insertion position resolved.
func (b *Loop) ResolveAlert(index int) error { return b.alerts.Resolve(index) }

// ClearOldAlerts drops resolved alerts older than days relative to the
// latest observed day. Unresolved alerts survive regardless of age.
func (b *Loop) ClearOldAlerts(days int) {
	b.alerts.ClearOld(b.lastDay() - days)
}

func (b *Loop) lastDay() int {
	if len(b.history) == 0 {
		return 0
	}
	return b.history[len(b.history)-1].Day
}

// UpdateDailyMetrics reads the ledger, appends a snapshot to the history,
// evaluates alert conditions, and — when protection is enabled — applies
// the protective mutations. It returns the new snapshot.
func (b *Loop) UpdateDailyMetrics(l *ledger.Ledger) Snapshot {
	burn := b.burnRate(l.DailyFee())

	snap := Snapshot{
		Day:                 l.CurrentDay(),
		NetWorth:            l.NetWorth(),
		Revenue:             l.TotalRevenue(),
		Spend:               l.TotalSpend(),
		ROAS:                l.CurrentROAS(),
		ProfitMargin:        profitMargin(l.TotalRevenue(), l.TotalSpend()),
		BurnRate:            burn,
		DaysUntilBankruptcy: bankruptcyHorizon(l.NetWorth(), burn, b.cfg.EmergencyReserve),
		Health:              l.Health(),
		AvailableBudget:     l.AvailableBudget(),
		TotalProfit:         l.TotalRevenue() - l.TotalSpend(),
	}

	var prev *Snapshot
	if n := len(b.history); n > 0 {
		prev = &b.history[n-1]
	}
	b.history = append(b.history, snap)

	b.evaluateAlerts(l, snap, prev)

	if b.protection {
		b.protect(l, snap)
	}

	_ = b.journal.RecordSnapshot(journal.SnapshotRecord{
		RunID:               b.runID,
		Day:                 snap.Day,
		NetWorth:            snap.NetWorth,
		Revenue:             snap.Revenue,
		Spend:               snap.Spend,
		ROAS:                snap.ROAS,
		ProfitMargin:        snap.ProfitMargin,
		BurnRate:            snap.BurnRate,
		DaysUntilBankruptcy: snap.DaysUntilBankruptcy,
		Health:              string(snap.Health),
		AvailableBudget:     snap.AvailableBudget,
		TotalProfit:         snap.TotalProfit,
	})

	return snap
}

// burnRate averages the call-over-call increase of cumulative spend across
// the trailing window of the existing history. With fewer than two prior
// entries there is nothing to difference, so the fixed daily fee stands in.
func (b *Loop) burnRate(dailyFee float64) float64 {
	if len(b.history) < 2 {
		return dailyFee
	}
	recent := b.history
	if len(recent) > burnWindow {
		recent = recent[len(recent)-burnWindow:]
	}
	var sum float64
	for i := 1; i < len(recent); i++ {
		sum += recent[i].Spend - recent[i-1].Spend
	}
	return sum / float64(len(recent)-1)
}

// burnWindow and trendWindow are call-history windows, not calendar days.
const (
	burnWindow  = 7
	trendWindow = 7
)

func profitMargin(revenue, spend float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (revenue - spend) / revenue * 100
}

// bankruptcyHorizon estimates days of runway left. Zero means already
// under water; nil means no risk at the current burn rate.
func bankruptcyHorizon(netWorth, burn, reserve float64) *int {
	if netWorth <= 0 {
		zero := 0
		return &zero
	}
	if burn <= 0 {
		return nil
	}
	d := int(math.Floor((netWorth - reserve) / burn))
	return &d
}

// evaluateAlerts raises zero or more alerts for this call. Bankruptcy
// short-circuits everything else; the remaining conditions are checked
// independently.
func (b *Loop) evaluateAlerts(l *ledger.Ledger, snap Snapshot, prev *Snapshot) {
	if l.IsBankrupt() {
		b.raise(AlertBankruptcy, snap.Day, fmt.Sprintf(
			"Business is bankrupt: net worth $%.2f negative for %d consecutive days",
			snap.NetWorth, l.BankruptcyDays()))
		return
	}

	if snap.Health == ledger.HealthCritical {
		b.raise(AlertCritical, snap.Day, fmt.Sprintf(
			"Financial health critical: net worth $%.2f against $%.2f initial capital",
			snap.NetWorth, l.InitialCapital()))
	}

	// The spend gate avoids warning on tiny samples where ROAS is noise.
	if snap.ROAS < b.cfg.MinROAS && snap.Spend > 100 {
		b.raise(AlertWarning, snap.Day, fmt.Sprintf(
			"ROAS %.2f below minimum %.2f", snap.ROAS, b.cfg.MinROAS))
	}

	if snap.DaysUntilBankruptcy != nil && *snap.DaysUntilBankruptcy < 7 {
		b.raise(AlertCritical, snap.Day, fmt.Sprintf(
			"Projected bankruptcy in %d days at current burn rate", *snap.DaysUntilBankruptcy))
	}

	if prev != nil {
		if delta := snap.Spend - prev.Spend; delta > b.cfg.MaxDailySpend {
			b.raise(AlertWarning, snap.Day, fmt.Sprintf(
				"Daily spend $%.2f exceeds limit $%.2f", delta, b.cfg.MaxDailySpend))
		}
	}

	if b.negativeCashFlowTrend() {
		b.raise(AlertWarning, snap.Day, "Negative cash flow trend over the last 3 days")
	}

	if snap.AvailableBudget < b.cfg.EmergencyReserve {
		b.raise(AlertCritical, snap.Day, fmt.Sprintf(
			"Available budget $%.2f below emergency reserve $%.2f",
			snap.AvailableBudget, b.cfg.EmergencyReserve))
	}
}

// negativeCashFlowTrend checks the last three call-over-call profit deltas
// (needs four history entries) and reports true when at least two are
// negative.
func (b *Loop) negativeCashFlowTrend() bool {
	n := len(b.history)
	if n < 4 {
		return false
	}
	last := b.history[n-4:]
	negative := 0
	for i := 1; i < len(last); i++ {
		if last[i].TotalProfit-last[i-1].TotalProfit < 0 {
			negative++
		}
	}
	return negative >= 2
}

func (b *Loop) raise(typ AlertType, day int, message string) {
	alert := Alert{
		Type:    typ,
		Message: message,
		Time:    b.now(),
		Day:     day,
	}
	if !b.alerts.Add(alert) {
		return
	}
	_ = b.journal.RecordAlert(journal.AlertRecord{
		RunID:   b.runID,
		Day:     day,
		Type:    string(typ),
		Message: message,
		Time:    alert.Time,
	})
}
