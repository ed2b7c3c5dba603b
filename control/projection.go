package control

import (
	"fmt"

	"github.com/venturekit/venture/ledger"
)

// Risk bands a projected net worth into a bankruptcy-risk tier.
type Risk string

const (
	RiskNone     Risk = "none"
	RiskLow      Risk = "low"
	RiskMedium   Risk = "medium"
	RiskHigh     Risk = "high"
	RiskCritical Risk = "critical"
)

// Projections extrapolates the metrics history over a forward horizon.
type Projections struct {
	Days              int      `json:"days"`
	ProjectedNetWorth float64  `json:"projected_net_worth"`
	ProjectedRevenue  float64  `json:"projected_revenue"`
	ProjectedSpend    float64  `json:"projected_spend"`
	ProjectedROAS     float64  `json:"projected_roas"`
	BankruptcyRisk    Risk     `json:"bankruptcy_risk"`
	Assumptions       []string `json:"assumptions"`
}

// CalculateProjections extrapolates the last week of history days forward.
// Callers conventionally pass 30. With no history it projects the present:
// net worth unchanged, zero activity, no risk.
func (b *Loop) CalculateProjections(l *ledger.Ledger, days int) Projections {
	if len(b.history) == 0 {
		return Projections{
			Days:              days,
			ProjectedNetWorth: l.NetWorth(),
			BankruptcyRisk:    RiskNone,
			Assumptions:       []string{"No historical data available"},
		}
	}

	recent := b.history
	if len(recent) > burnWindow {
		recent = recent[len(recent)-burnWindow:]
	}

	var sumRev, sumSpend float64
	for _, s := range recent {
		sumRev += s.Revenue
		sumSpend += s.Spend
	}
	avgRev := sumRev / float64(len(recent))
	avgSpend := sumSpend / float64(len(recent))

	projRev := avgRev * float64(days)
	projSpend := avgSpend * float64(days)
	projNetWorth := l.NetWorth() + projRev - projSpend

	projROAS := 0.0
	if projSpend > 0 {
		projROAS = projRev / projSpend
	}

	return Projections{
		Days:              days,
		ProjectedNetWorth: projNetWorth,
		ProjectedRevenue:  projRev,
		ProjectedSpend:    projSpend,
		ProjectedROAS:     projROAS,
		BankruptcyRisk:    bandRisk(projNetWorth),
		Assumptions: []string{
			fmt.Sprintf("Averages taken over the last %d metric entries", len(recent)),
			"Assumes current revenue and spend patterns continue",
		},
	}
}

func bandRisk(projectedNetWorth float64) Risk {
	switch {
	case projectedNetWorth < -500:
		return RiskCritical
	case projectedNetWorth < 0:
		return RiskHigh
	case projectedNetWorth < 200:
		return RiskMedium
	case projectedNetWorth < 500:
		return RiskLow
	default:
		return RiskNone
	}
}
