package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordSnapshot(r SnapshotRecord) error {
	var dub any
	if r.DaysUntilBankruptcy != nil {
		dub = *r.DaysUntilBankruptcy
	}
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(run_id, day, net_worth, revenue, spend, roas, profit_margin, burn_rate, days_until_bankruptcy, health, available_budget, total_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Day, r.NetWorth, r.Revenue, r.Spend, r.ROAS,
		r.ProfitMargin, r.BurnRate, dub, r.Health, r.AvailableBudget, r.TotalProfit,
	)
	return err
}

func (j *SQLite) RecordAlert(r AlertRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO alerts
		(run_id, day, type, message, time)
		VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.Day, r.Type, r.Message, r.Time,
	)
	return err
}

func (j *SQLite) RecordAction(r ActionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO actions
		(run_id, day, action, target_id, detail)
		VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.Day, r.Action, r.TargetID, r.Detail,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
