package control

import (
	"fmt"

	"github.com/venturekit/venture/journal"
	"github.com/venturekit/venture/ledger"
)

const (
	// minKillSpend is how much a campaign must have spent before a
	// loss-based kill is even considered.
	minKillSpend = 50.0
	// criticalKillSpend is the lower gate used by the critical-health
	// cascade, which is more aggressive.
	criticalKillSpend = 25.0

	// ledgerKillThreshold applies when killing over the ledger's own
	// campaign list; ListKillThreshold is the legacy default for
	// caller-supplied lists.
	ledgerKillThreshold = 0.8
	// ListKillThreshold is the default ROAS threshold callers of
	// KillCampaignsBelow historically used when none was chosen.
	ListKillThreshold = 1.0

	criticalBudgetFactor  = 0.3
	emergencyBudgetFactor = 0.5
)

// protect applies the protective mutations in a fixed, compounding order:
// critical-health cascade, budget-cap scaling, losing-campaign kills, then
// near-bankruptcy halving. Later steps see the effects of earlier ones.
func (b *Loop) protect(l *ledger.Ledger, snap Snapshot) {
	if snap.Health == ledger.HealthCritical {
		b.criticalCascade(l, snap.Day)
	}

	b.capBudgets(l, snap.Day)

	b.KillLosingCampaigns(l)

	if snap.DaysUntilBankruptcy != nil && *snap.DaysUntilBankruptcy < 5 {
		b.scaleBudgets(l, snap.Day, emergencyBudgetFactor, "bankruptcy horizon under 5 days")
	}
}

// criticalCascade is the harshest step: kill clearly losing campaigns,
// abandon products still in research, and throttle every surviving active
// budget hard.
func (b *Loop) criticalCascade(l *ledger.Ledger, day int) {
	for _, c := range l.ActiveCampaigns() {
		if c.ROAS < 1.0 && c.Spend > criticalKillSpend {
			b.killCampaign(c, day, fmt.Sprintf("critical health: roas %.2f, spend $%.2f", c.ROAS, c.Spend))
		}
	}

	for _, p := range l.Products() {
		if p.Status == ledger.ProductResearching {
			p.Status = ledger.ProductKilled
			b.recordAction(day, "kill_product", p.ID, "critical health: research abandoned")
		}
	}

	b.scaleBudgets(l, day, criticalBudgetFactor, "critical health")
}

// capBudgets scales all active budgets down proportionally when their sum
// exceeds what the ledger can actually make available.
func (b *Loop) capBudgets(l *ledger.Ledger, day int) {
	active := l.ActiveCampaigns()
	var sum float64
	for _, c := range active {
		sum += c.Budget
	}
	available := l.AvailableBudget()
	if sum <= available || sum <= 0 {
		return
	}

	ratio := available / sum
	for _, c := range active {
		b.setBudget(c, c.Budget*ratio, day, "budgets capped to available cash")
	}
}

// KillLosingCampaigns kills the ledger's active campaigns whose ROAS is
// below the ledger threshold, provided they have spent enough to judge.
// Returns the ids of the campaigns killed.
func (b *Loop) KillLosingCampaigns(l *ledger.Ledger) []string {
	return b.killBelow(l.ActiveCampaigns(), ledgerKillThreshold, l.CurrentDay())
}

// KillCampaignsBelow kills the active campaigns in a caller-supplied list
// whose ROAS is below threshold. The threshold is mandatory; callers
// wanting the historical default pass ListKillThreshold. The spend gate
// applies regardless of threshold.
func (b *Loop) KillCampaignsBelow(campaigns []*ledger.Campaign, threshold float64) []string {
	return b.killBelow(campaigns, threshold, b.lastDay())
}

func (b *Loop) killBelow(campaigns []*ledger.Campaign, threshold float64, day int) []string {
	var killed []string
	for _, c := range campaigns {
		if c.Status != ledger.CampaignActive {
			continue
		}
		if c.Spend < minKillSpend {
			continue
		}
		if c.ROAS < threshold {
			b.killCampaign(c, day, fmt.Sprintf("roas %.2f below %.2f after $%.2f spend", c.ROAS, threshold, c.Spend))
			killed = append(killed, c.ID)
		}
	}
	return killed
}

// scaleBudgets multiplies every active budget by factor, floored at the
// minimum budget.
func (b *Loop) scaleBudgets(l *ledger.Ledger, day int, factor float64, reason string) {
	for _, c := range l.ActiveCampaigns() {
		b.setBudget(c, c.Budget*factor, day, reason)
	}
}

func (b *Loop) setBudget(c *ledger.Campaign, budget float64, day int, reason string) {
	if budget < ledger.MinBudget {
		budget = ledger.MinBudget
	}
	if budget == c.Budget {
		return
	}
	detail := fmt.Sprintf("budget $%.2f -> $%.2f: %s", c.Budget, budget, reason)
	c.Budget = budget
	c.LastOptimized = day
	b.recordAction(day, "throttle_budget", c.ID, detail)
}

func (b *Loop) killCampaign(c *ledger.Campaign, day int, reason string) {
	c.Status = ledger.CampaignKilled
	b.recordAction(day, "kill_campaign", c.ID, reason)
}

func (b *Loop) recordAction(day int, action, targetID, detail string) {
	_ = b.journal.RecordAction(journal.ActionRecord{
		RunID:    b.runID,
		Day:      day,
		Action:   action,
		TargetID: targetID,
		Detail:   detail,
	})
}
