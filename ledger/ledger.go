// Package ledger owns the canonical financial state of a simulated
// business: cash position, revenue/spend accumulators, and the product and
// campaign collections. It is the single source of truth the control loop
// reads from and writes back to.
//
// The ledger is written for a single synchronous caller. Parallel access
// must serialize all mutating calls externally.
package ledger

import "math"

// reserveDays is the fixed cash reserve policy: available budget is
// whatever remains after holding back this many days of fixed fees.
const reserveDays = 7

type Ledger struct {
	currentDay          int
	initialCapital      float64
	netWorth            float64
	dailyFee            float64
	bankruptcyThreshold int

	totalRevenue float64
	totalSpend   float64
	currentROAS  float64

	bankruptcyDays int
	errorCount     int

	bands HealthBands

	// Canonical entity store: map for identity, slice for insertion order.
	products    map[string]*Product
	productIDs  []string
	campaigns   map[string]*Campaign
	campaignIDs []string
}

// New constructs a ledger for a single simulation run. All three arguments
// must be positive.
func New(initialCapital, dailyFee float64, bankruptcyThreshold int) (*Ledger, error) {
	if initialCapital <= 0 {
		return nil, &ValidationError{Field: "initialCapital", Reason: "must be positive"}
	}
	if dailyFee <= 0 {
		return nil, &ValidationError{Field: "dailyFee", Reason: "must be positive"}
	}
	if bankruptcyThreshold <= 0 {
		return nil, &ValidationError{Field: "bankruptcyThreshold", Reason: "must be positive"}
	}

	return &Ledger{
		initialCapital:      initialCapital,
		netWorth:            initialCapital,
		dailyFee:            dailyFee,
		bankruptcyThreshold: bankruptcyThreshold,
		bands:               DefaultHealthBands(),
		products:            make(map[string]*Product),
		campaigns:           make(map[string]*Campaign),
	}, nil
}

// SetHealthBands replaces the default classification breakpoints.
func (l *Ledger) SetHealthBands(b HealthBands) error {
	if err := b.Validate(); err != nil {
		return err
	}
	l.bands = b
	return nil
}

func (l *Ledger) CurrentDay() int         { return l.currentDay }
func (l *Ledger) InitialCapital() float64 { return l.initialCapital }
func (l *Ledger) NetWorth() float64       { return l.netWorth }
func (l *Ledger) DailyFee() float64       { return l.dailyFee }
func (l *Ledger) TotalRevenue() float64   { return l.totalRevenue }
func (l *Ledger) TotalSpend() float64     { return l.totalSpend }
func (l *Ledger) CurrentROAS() float64    { return l.currentROAS }
func (l *Ledger) BankruptcyDays() int     { return l.bankruptcyDays }
func (l *Ledger) ErrorCount() int         { return l.errorCount }

// AdvanceDay charges one day of fixed fees and moves the calendar forward.
// The bankruptcy counter only ever increments here: one tick per day ended
// with negative net worth.
func (l *Ledger) AdvanceDay() {
	l.currentDay++
	l.netWorth -= l.dailyFee
	l.totalSpend += l.dailyFee

	if l.netWorth >= 0 {
		l.bankruptcyDays = 0
	} else {
		l.bankruptcyDays++
	}
}

// UpdateFinancials applies a revenue/spend pair to the books. Negative
// arguments are rejected. A cash injection that brings net worth back to
// non-negative clears the bankruptcy counter immediately, without waiting
// for the next AdvanceDay.
func (l *Ledger) UpdateFinancials(revenue, spend float64) error {
	if revenue < 0 {
		return &ValidationError{Field: "revenue", Reason: "must not be negative"}
	}
	if spend < 0 {
		return &ValidationError{Field: "spend", Reason: "must not be negative"}
	}

	l.totalRevenue += revenue
	l.totalSpend += spend
	l.netWorth += revenue - spend

	if l.totalSpend > 0 {
		l.currentROAS = l.totalRevenue / l.totalSpend
	} else {
		l.currentROAS = 0
	}

	if l.netWorth >= 0 {
		l.bankruptcyDays = 0
	}
	return nil
}

// RecordError bumps the external-facing error counter. Collaborators call
// this when an action against the business fails outside the ledger.
func (l *Ledger) RecordError() {
	l.errorCount++
}

func (l *Ledger) AddProduct(p *Product) error {
	if _, ok := l.products[p.ID]; ok {
		return &DuplicateError{Kind: "product", ID: p.ID}
	}
	l.products[p.ID] = p
	l.productIDs = append(l.productIDs, p.ID)
	return nil
}

func (l *Ledger) AddCampaign(c *Campaign) error {
	if _, ok := l.campaigns[c.ID]; ok {
		return &DuplicateError{Kind: "campaign", ID: c.ID}
	}
	l.campaigns[c.ID] = c
	l.campaignIDs = append(l.campaignIDs, c.ID)
	return nil
}

// RemoveProduct drops a product by id. Removing an unknown id is a no-op.
func (l *Ledger) RemoveProduct(id string) {
	if _, ok := l.products[id]; !ok {
		return
	}
	delete(l.products, id)
	l.productIDs = removeID(l.productIDs, id)
}

// RemoveCampaign drops a campaign by id. Removing an unknown id is a no-op.
func (l *Ledger) RemoveCampaign(id string) {
	if _, ok := l.campaigns[id]; !ok {
		return
	}
	delete(l.campaigns, id)
	l.campaignIDs = removeID(l.campaignIDs, id)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Product returns the canonical product pointer, or nil.
func (l *Ledger) Product(id string) *Product { return l.products[id] }

// Campaign returns the canonical campaign pointer, or nil.
func (l *Ledger) Campaign(id string) *Campaign { return l.campaigns[id] }

// Products returns the products in insertion order. The pointers are the
// canonical objects, not copies.
func (l *Ledger) Products() []*Product {
	out := make([]*Product, 0, len(l.productIDs))
	for _, id := range l.productIDs {
		out = append(out, l.products[id])
	}
	return out
}

// Campaigns returns the campaigns in insertion order. The pointers are the
// canonical objects, not copies.
func (l *Ledger) Campaigns() []*Campaign {
	out := make([]*Campaign, 0, len(l.campaignIDs))
	for _, id := range l.campaignIDs {
		out = append(out, l.campaigns[id])
	}
	return out
}

// ActiveCampaigns returns the campaigns currently in active status, in
// insertion order.
func (l *Ledger) ActiveCampaigns() []*Campaign {
	var out []*Campaign
	for _, id := range l.campaignIDs {
		if c := l.campaigns[id]; c.Status == CampaignActive {
			out = append(out, c)
		}
	}
	return out
}

// CampaignsForProduct returns the campaigns whose ProductID matches.
func (l *Ledger) CampaignsForProduct(productID string) []*Campaign {
	var out []*Campaign
	for _, id := range l.campaignIDs {
		if c := l.campaigns[id]; c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out
}

func (l *Ledger) CanAfford(amount float64) bool {
	return l.netWorth >= amount
}

// AvailableBudget is spendable cash after the fixed-day fee reserve. Never
// negative.
func (l *Ledger) AvailableBudget() float64 {
	return math.Max(0, l.netWorth-reserveDays*l.dailyFee)
}

// IsBankrupt reports whether net worth has stayed negative for at least
// the configured number of consecutive days.
func (l *Ledger) IsBankrupt() bool {
	return l.bankruptcyDays >= l.bankruptcyThreshold
}

// Health classifies the current position. Bankruptcy dominates the
// net-worth bands unconditionally.
func (l *Ledger) Health() Health {
	if l.IsBankrupt() {
		return HealthBankrupt
	}
	return l.bands.Classify(l.netWorth, l.initialCapital)
}
