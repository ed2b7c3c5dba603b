package journal

const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	net_worth REAL NOT NULL,
	revenue REAL NOT NULL,
	spend REAL NOT NULL,
	roas REAL NOT NULL,
	profit_margin REAL NOT NULL,
	burn_rate REAL NOT NULL,
	days_until_bankruptcy INTEGER,
	health TEXT NOT NULL,
	available_budget REAL NOT NULL,
	total_profit REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS alerts (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	type TEXT NOT NULL,
	message TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS actions (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	action TEXT NOT NULL,
	target_id TEXT NOT NULL,
	detail TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, day);
CREATE INDEX IF NOT EXISTS idx_alerts_run ON alerts(run_id, day);
CREATE INDEX IF NOT EXISTS idx_actions_run ON actions(run_id, day);
`
