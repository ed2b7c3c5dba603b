package ledger

type ProductStatus string

const (
	ProductResearching ProductStatus = "researching"
	ProductTesting     ProductStatus = "testing"
	ProductScaling     ProductStatus = "scaling"
	ProductKilled      ProductStatus = "killed"
)

type Product struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Margin     float64       `json:"margin"`
	Status     ProductStatus `json:"status"`
	CreatedDay int           `json:"created_day"`
}

type CampaignStatus string

const (
	CampaignActive CampaignStatus = "active"
	CampaignPaused CampaignStatus = "paused"
	CampaignKilled CampaignStatus = "killed"
)

// MinBudget is the floor for any automated budget reduction. Protective
// throttling never pushes an active campaign below this.
const MinBudget = 10.0

// Campaign is an ad campaign attached to a product. ProductID is a weak
// reference; the ledger does not enforce that the product exists.
//
// Campaigns are shared mutable objects: the ledger's store and any external
// holder of the pointer observe the same mutations.
type Campaign struct {
	ID            string         `json:"id"`
	ProductID     string         `json:"product_id"`
	Platform      string         `json:"platform"`
	Budget        float64        `json:"budget"`
	Spend         float64        `json:"spend"`
	Revenue       float64        `json:"revenue"`
	ROAS          float64        `json:"roas"`
	Status        CampaignStatus `json:"status"`
	CreatedDay    int            `json:"created_day"`
	LastOptimized int            `json:"last_optimized"`
}

// RecordSpend accumulates spend and revenue on the campaign and refreshes
// its ROAS.
func (c *Campaign) RecordSpend(spend, revenue float64) {
	c.Spend += spend
	c.Revenue += revenue
	c.RefreshROAS()
}

// RefreshROAS recomputes revenue/spend, 0 when spend is 0.
func (c *Campaign) RefreshROAS() {
	if c.Spend > 0 {
		c.ROAS = c.Revenue / c.Spend
	} else {
		c.ROAS = 0
	}
}
