package control

import "github.com/venturekit/venture/ledger"

// ROASRating is the five-tier classification of return on ad spend.
type ROASRating string

const (
	ROASExcellent  ROASRating = "excellent"
	ROASGood       ROASRating = "good"
	ROASAcceptable ROASRating = "acceptable"
	ROASPoor       ROASRating = "poor"
	ROASCritical   ROASRating = "critical"
)

type CampaignROAS struct {
	CampaignID     string     `json:"campaign_id"`
	ROAS           float64    `json:"roas"`
	Rating         ROASRating `json:"rating"`
	Recommendation string     `json:"recommendation"`
}

type ROASAnalysis struct {
	Current         float64        `json:"current"`
	Rating          ROASRating     `json:"rating"`
	Recommendations []string       `json:"recommendations"`
	Campaigns       []CampaignROAS `json:"campaigns"`
}

// AnalyzeROASPerformance rates the business-wide ROAS and each campaign
// independently against the same cutoffs.
func (b *Loop) AnalyzeROASPerformance(l *ledger.Ledger) ROASAnalysis {
	rating := b.rateROAS(l.CurrentROAS())

	analysis := ROASAnalysis{
		Current:         l.CurrentROAS(),
		Rating:          rating,
		Recommendations: ratingRecommendations[rating],
	}

	for _, c := range l.Campaigns() {
		r := b.rateROAS(c.ROAS)
		analysis.Campaigns = append(analysis.Campaigns, CampaignROAS{
			CampaignID:     c.ID,
			ROAS:           c.ROAS,
			Rating:         r,
			Recommendation: campaignRecommendations[r],
		})
	}

	return analysis
}

func (b *Loop) rateROAS(roas float64) ROASRating {
	switch {
	case roas >= 3.0:
		return ROASExcellent
	case roas >= 2.0:
		return ROASGood
	case roas >= b.cfg.MinROAS:
		return ROASAcceptable
	case roas >= 1.0:
		return ROASPoor
	default:
		return ROASCritical
	}
}

var ratingRecommendations = map[ROASRating][]string{
	ROASExcellent: {
		"Scale winning campaigns aggressively",
		"Test new audiences with current creatives",
	},
	ROASGood: {
		"Increase budgets on top performers gradually",
		"Keep testing creative variations",
	},
	ROASAcceptable: {
		"Hold budgets steady",
		"Optimize targeting before scaling further",
	},
	ROASPoor: {
		"Reduce budgets on underperforming campaigns",
		"Review landing pages and offer positioning",
	},
	ROASCritical: {
		"Pause or kill losing campaigns immediately",
		"Rework the funnel before spending more",
	},
}

var campaignRecommendations = map[ROASRating]string{
	ROASExcellent:  "Scale this campaign",
	ROASGood:       "Increase budget gradually",
	ROASAcceptable: "Maintain and optimize targeting",
	ROASPoor:       "Reduce budget",
	ROASCritical:   "Kill this campaign",
}
