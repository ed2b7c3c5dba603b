package ledger

// Export is the JSON-serializable snapshot of the whole ledger handed to
// external reporting and memory subsystems. Entity values are copied; the
// export shares no pointers with the live store.
type Export struct {
	Day             int        `json:"day"`
	InitialCapital  float64    `json:"initial_capital"`
	NetWorth        float64    `json:"net_worth"`
	DailyFee        float64    `json:"daily_fee"`
	TotalRevenue    float64    `json:"total_revenue"`
	TotalSpend      float64    `json:"total_spend"`
	CurrentROAS     float64    `json:"current_roas"`
	BankruptcyDays  int        `json:"bankruptcy_days"`
	ErrorCount      int        `json:"error_count"`
	Health          Health     `json:"health"`
	AvailableBudget float64    `json:"available_budget"`
	Products        []Product  `json:"products"`
	Campaigns       []Campaign `json:"campaigns"`
}

// Export captures the full financial state as plain values.
func (l *Ledger) Export() Export {
	products := make([]Product, 0, len(l.productIDs))
	for _, id := range l.productIDs {
		products = append(products, *l.products[id])
	}
	campaigns := make([]Campaign, 0, len(l.campaignIDs))
	for _, id := range l.campaignIDs {
		campaigns = append(campaigns, *l.campaigns[id])
	}

	return Export{
		Day:             l.currentDay,
		InitialCapital:  l.initialCapital,
		NetWorth:        l.netWorth,
		DailyFee:        l.dailyFee,
		TotalRevenue:    l.totalRevenue,
		TotalSpend:      l.totalSpend,
		CurrentROAS:     l.currentROAS,
		BankruptcyDays:  l.bankruptcyDays,
		ErrorCount:      l.errorCount,
		Health:          l.Health(),
		AvailableBudget: l.AvailableBudget(),
		Products:        products,
		Campaigns:       campaigns,
	}
}
