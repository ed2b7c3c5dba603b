package journal

import (
	"database/sql"
	"fmt"
)

// ListRuns returns the distinct run ids present in the journal, oldest
// first (ULIDs sort by creation time).
func (j *SQLite) ListRuns() ([]string, error) {
	rows, err := j.db.Query(`SELECT DISTINCT run_id FROM snapshots ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListSnapshots returns a run's snapshots in call order.
func (j *SQLite) ListSnapshots(runID string) ([]SnapshotRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, day, net_worth, revenue, spend, roas, profit_margin, burn_rate, days_until_bankruptcy, health, available_budget, total_profit
		FROM snapshots
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var dub sql.NullInt64
		if err := rows.Scan(
			&rec.RunID,
			&rec.Day,
			&rec.NetWorth,
			&rec.Revenue,
			&rec.Spend,
			&rec.ROAS,
			&rec.ProfitMargin,
			&rec.BurnRate,
			&dub,
			&rec.Health,
			&rec.AvailableBudget,
			&rec.TotalProfit,
		); err != nil {
			return nil, err
		}
		if dub.Valid {
			v := int(dub.Int64)
			rec.DaysUntilBankruptcy = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	return out, nil
}

// ListAlerts returns a run's alerts in insertion order.
func (j *SQLite) ListAlerts(runID string) ([]AlertRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, day, type, message, time
		FROM alerts
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlertRecord
	for rows.Next() {
		var rec AlertRecord
		if err := rows.Scan(&rec.RunID, &rec.Day, &rec.Type, &rec.Message, &rec.Time); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListActions returns a run's protective actions in insertion order.
func (j *SQLite) ListActions(runID string) ([]ActionRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, day, action, target_id, detail
		FROM actions
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActionRecord
	for rows.Next() {
		var rec ActionRecord
		if err := rows.Scan(&rec.RunID, &rec.Day, &rec.Action, &rec.TargetID, &rec.Detail); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
