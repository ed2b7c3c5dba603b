// Package sim drives a ledger and control loop through a scripted
// scenario: one configured step per simulated business day, following the
// orchestrator contract (mutate ledger, update the loop, check for
// bankruptcy).
package sim

import (
	"fmt"

	"github.com/venturekit/venture/config"
	"github.com/venturekit/venture/control"
	"github.com/venturekit/venture/journal"
	"github.com/venturekit/venture/ledger"
	"github.com/venturekit/venture/pkg/id"
)

// Result summarizes a finished run.
type Result struct {
	RunID  string           `json:"run_id"`
	Days   int              `json:"days"`
	Halted bool             `json:"halted"` // stopped early on bankruptcy
	Final  control.Snapshot `json:"final"`
	Report control.Report   `json:"report"`
	Export ledger.Export    `json:"export"`
}

// Runner executes a scenario day by day.
type Runner struct {
	cfg         *config.Config
	runID       string
	ledger      *ledger.Ledger
	loop        *control.Loop
	journal     journal.Journal
	ownsJournal bool

	next   int
	halted bool
	last   control.Snapshot
}

// NewRunner builds a runner, opening the journal the config asks for.
func NewRunner(cfg *config.Config) (*Runner, error) {
	j, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}
	r, err := NewRunnerWithJournal(cfg, j)
	if err != nil {
		_ = j.Close()
		return nil, err
	}
	r.ownsJournal = true
	return r, nil
}

// NewRunnerWithJournal builds a runner over a caller-supplied journal,
// which the caller remains responsible for closing.
func NewRunnerWithJournal(cfg *config.Config, j journal.Journal) (*Runner, error) {
	l, err := ledger.New(cfg.Business.InitialCapital, cfg.Business.DailyFee, cfg.Business.BankruptcyThreshold)
	if err != nil {
		return nil, fmt.Errorf("build ledger: %w", err)
	}
	if err := l.SetHealthBands(cfg.Health); err != nil {
		return nil, fmt.Errorf("health bands: %w", err)
	}

	runID := id.New()
	loop := control.New(control.Config{
		MinROAS:          cfg.Control.MinROAS,
		MaxDailySpend:    cfg.Control.MaxDailySpend,
		EmergencyReserve: cfg.Control.EmergencyReserve,
	}, runID, j)
	loop.SetBankruptcyProtection(!cfg.Control.DisableProtection)

	return &Runner{
		cfg:     cfg,
		runID:   runID,
		ledger:  l,
		loop:    loop,
		journal: j,
	}, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.SnapshotsFile, jc.AlertsFile, jc.ActionsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Noop{}, nil
	}
}

func (r *Runner) RunID() string          { return r.runID }
func (r *Runner) Ledger() *ledger.Ledger { return r.ledger }
func (r *Runner) Loop() *control.Loop    { return r.loop }

// More reports whether scripted steps remain and the run has not halted.
func (r *Runner) More() bool {
	return !r.halted && r.next < len(r.cfg.Scenario.Steps)
}

// Step executes the next scripted day and returns its snapshot.
func (r *Runner) Step() (control.Snapshot, error) {
	if !r.More() {
		return control.Snapshot{}, fmt.Errorf("step: no steps remaining")
	}
	step := r.cfg.Scenario.Steps[r.next]
	r.next++

	r.ledger.AdvanceDay()

	for _, spec := range step.Products {
		pid := spec.ID
		if pid == "" {
			pid = id.New()
		}
		err := r.ledger.AddProduct(&ledger.Product{
			ID:         pid,
			Name:       spec.Name,
			Margin:     spec.Margin,
			Status:     ledger.ProductResearching,
			CreatedDay: r.ledger.CurrentDay(),
		})
		if err != nil {
			return control.Snapshot{}, fmt.Errorf("day %d: %w", r.ledger.CurrentDay(), err)
		}
	}

	for _, spec := range step.Campaigns {
		cid := spec.ID
		if cid == "" {
			cid = id.New()
		}
		err := r.ledger.AddCampaign(&ledger.Campaign{
			ID:         cid,
			ProductID:  spec.ProductID,
			Platform:   spec.Platform,
			Budget:     spec.Budget,
			Status:     ledger.CampaignActive,
			CreatedDay: r.ledger.CurrentDay(),
		})
		if err != nil {
			return control.Snapshot{}, fmt.Errorf("day %d: %w", r.ledger.CurrentDay(), err)
		}
	}

	revenue, spend := step.Revenue, step.Spend
	for _, perf := range step.Performance {
		c := r.ledger.Campaign(perf.CampaignID)
		if c == nil {
			r.ledger.RecordError()
			continue
		}
		c.RecordSpend(perf.Spend, perf.Revenue)
		revenue += perf.Revenue
		spend += perf.Spend
	}

	if revenue > 0 || spend > 0 {
		if err := r.ledger.UpdateFinancials(revenue, spend); err != nil {
			return control.Snapshot{}, fmt.Errorf("day %d: %w", r.ledger.CurrentDay(), err)
		}
	}

	snap := r.loop.UpdateDailyMetrics(r.ledger)
	r.last = snap

	if r.ledger.IsBankrupt() && !r.cfg.Scenario.ContinueAfterBankruptcy {
		r.halted = true
	}
	return snap, nil
}

// Run executes every remaining step and returns the final result.
func (r *Runner) Run() (*Result, error) {
	for r.More() {
		if _, err := r.Step(); err != nil {
			return nil, err
		}
	}
	return r.Finish(), nil
}

// Finish composes the run result. The runner can still Step afterwards if
// steps remain.
func (r *Runner) Finish() *Result {
	return &Result{
		RunID:  r.runID,
		Days:   r.next,
		Halted: r.halted,
		Final:  r.last,
		Report: r.loop.FinancialReport(r.ledger),
		Export: r.ledger.Export(),
	}
}

// Close releases the journal if the runner opened it.
func (r *Runner) Close() error {
	if r.ownsJournal {
		return r.journal.Close()
	}
	return nil
}
