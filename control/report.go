package control

import "github.com/venturekit/venture/ledger"

// Report is the composed financial picture handed to the orchestrator and
// external reporting subsystems. JSON-serializable by construction.
type Report struct {
	Day             int           `json:"day"`
	Health          ledger.Health `json:"health"`
	Latest          *Snapshot     `json:"latest"`
	ROAS            ROASAnalysis  `json:"roas"`
	Projections     Projections   `json:"projections"`
	ActiveAlerts    []Alert       `json:"active_alerts"`
	Trends          Trends        `json:"trends"`
	Recommendations []string      `json:"recommendations"`
}

// reportHorizonDays is the default projection horizon for reports.
const reportHorizonDays = 30

// FinancialReport composes health, the latest metrics, ROAS analysis,
// projections, unresolved alerts, trends, and the set-deduplicated union
// of every recommendation produced along the way.
func (b *Loop) FinancialReport(l *ledger.Ledger) Report {
	roas := b.AnalyzeROASPerformance(l)

	var latest *Snapshot
	if n := len(b.history); n > 0 {
		s := b.history[n-1]
		latest = &s
	}

	report := Report{
		Day:          l.CurrentDay(),
		Health:       l.Health(),
		Latest:       latest,
		ROAS:         roas,
		Projections:  b.CalculateProjections(l, reportHorizonDays),
		ActiveAlerts: b.ActiveAlerts(),
		Trends:       b.CalculateTrends(),
	}

	seen := make(map[string]struct{})
	add := func(rec string) {
		if _, ok := seen[rec]; ok {
			return
		}
		seen[rec] = struct{}{}
		report.Recommendations = append(report.Recommendations, rec)
	}
	for _, rec := range roas.Recommendations {
		add(rec)
	}
	for _, c := range roas.Campaigns {
		add(c.Recommendation)
	}

	return report
}
