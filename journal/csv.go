package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes snapshots, alerts, and actions to three CSV files. Rows are
// flushed per record so a crashed run still leaves usable output.
type CSV struct {
	snapshots *csv.Writer
	alerts    *csv.Writer
	actions   *csv.Writer

	sf, af, xf *os.File
}

func NewCSV(snapshotsPath, alertsPath, actionsPath string) (*CSV, error) {
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		return nil, err
	}
	af, err := os.Create(alertsPath)
	if err != nil {
		return nil, err
	}
	xf, err := os.Create(actionsPath)
	if err != nil {
		return nil, err
	}

	sw := csv.NewWriter(sf)
	aw := csv.NewWriter(af)
	xw := csv.NewWriter(xf)

	if err := sw.Write([]string{"run_id", "day", "net_worth", "revenue", "spend", "roas", "profit_margin", "burn_rate", "days_until_bankruptcy", "health", "available_budget", "total_profit"}); err != nil {
		return nil, err
	}
	if err := aw.Write([]string{"run_id", "day", "type", "message", "time"}); err != nil {
		return nil, err
	}
	if err := xw.Write([]string{"run_id", "day", "action", "target_id", "detail"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{sw, aw, xw} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSV{snapshots: sw, alerts: aw, actions: xw, sf: sf, af: af, xf: xf}, nil
}

func (j *CSV) RecordSnapshot(r SnapshotRecord) error {
	dub := ""
	if r.DaysUntilBankruptcy != nil {
		dub = strconv.Itoa(*r.DaysUntilBankruptcy)
	}
	err := j.snapshots.Write([]string{
		r.RunID,
		strconv.Itoa(r.Day),
		f(r.NetWorth),
		f(r.Revenue),
		f(r.Spend),
		f(r.ROAS),
		f(r.ProfitMargin),
		f(r.BurnRate),
		dub,
		r.Health,
		f(r.AvailableBudget),
		f(r.TotalProfit),
	})
	if err != nil {
		return err
	}
	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSV) RecordAlert(r AlertRecord) error {
	err := j.alerts.Write([]string{
		r.RunID,
		strconv.Itoa(r.Day),
		r.Type,
		r.Message,
		r.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.alerts.Flush()
	return j.alerts.Error()
}

func (j *CSV) RecordAction(r ActionRecord) error {
	err := j.actions.Write([]string{
		r.RunID,
		strconv.Itoa(r.Day),
		r.Action,
		r.TargetID,
		r.Detail,
	})
	if err != nil {
		return err
	}
	j.actions.Flush()
	return j.actions.Error()
}

func (j *CSV) Close() error {
	for _, w := range []*csv.Writer{j.snapshots, j.alerts, j.actions} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, fl := range []*os.File{j.sf, j.af, j.xf} {
		if err := fl.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
