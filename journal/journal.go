// Package journal is the event sink for the financial control loop. The
// core packages stay free of console side effects; everything observable —
// daily metrics snapshots, alerts, protective actions — flows through the
// Journal interface into whichever medium the caller wired up.
package journal

import "time"

// SnapshotRecord is one control-loop invocation's derived metrics.
// Revenue and Spend are the ledger's cumulative totals at call time.
type SnapshotRecord struct {
	RunID               string
	Day                 int
	NetWorth            float64
	Revenue             float64
	Spend               float64
	ROAS                float64
	ProfitMargin        float64
	BurnRate            float64
	DaysUntilBankruptcy *int // nil means no bankruptcy risk at current burn
	Health              string
	AvailableBudget     float64
	TotalProfit         float64
}

// AlertRecord is a raised (deduplicated) alert.
type AlertRecord struct {
	RunID   string
	Day     int
	Type    string
	Message string
	Time    time.Time
}

// ActionRecord is one protective mutation taken by the control loop.
type ActionRecord struct {
	RunID    string
	Day      int
	Action   string // "kill_campaign", "kill_product", "throttle_budget"
	TargetID string
	Detail   string
}

type Journal interface {
	RecordSnapshot(SnapshotRecord) error
	RecordAlert(AlertRecord) error
	RecordAction(ActionRecord) error
	Close() error
}

// Noop discards everything. Useful when a caller has no interest in the
// event stream.
type Noop struct{}

func (Noop) RecordSnapshot(SnapshotRecord) error { return nil }
func (Noop) RecordAlert(AlertRecord) error       { return nil }
func (Noop) RecordAction(ActionRecord) error     { return nil }
func (Noop) Close() error                        { return nil }
