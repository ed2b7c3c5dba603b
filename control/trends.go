package control

// Direction is a windowed trend verdict. Raw queries speak in value
// direction (up/down/stable); CalculateTrends interprets the same
// comparison as improving/stable/declining.
type Direction string

const (
	TrendUp     Direction = "up"
	TrendDown   Direction = "down"
	TrendStable Direction = "stable"

	TrendImproving Direction = "improving"
	TrendDeclining Direction = "declining"
)

// Metric selects a snapshot field for trend queries.
type Metric string

const (
	MetricRevenue Metric = "revenue"
	MetricSpend   Metric = "spend"
	MetricROAS    Metric = "roas"
	MetricMargin  Metric = "profit_margin"
)

// Trends compares the last trend window against the one before it.
type Trends struct {
	Revenue      Direction `json:"revenue"`
	Spend        Direction `json:"spend"`
	ROAS         Direction `json:"roas"`
	ProfitMargin Direction `json:"profit_margin"`
}

const (
	relativeTrendBand = 0.10 // ±10% for revenue, spend, ROAS
	marginTrendBand   = 5.0  // ±5 percentage points for profit margin
)

// Trend reports the raw direction of a metric: the mean of the most recent
// seven entries against the mean of the seven before them. Fewer than
// seven entries always reads stable.
func (b *Loop) Trend(metric Metric) Direction {
	recent, prior, ok := b.trendWindows()
	if !ok || len(prior) == 0 {
		return TrendStable
	}

	r := mean(recent, metric)
	p := mean(prior, metric)

	if metric == MetricMargin {
		switch {
		case r-p > marginTrendBand:
			return TrendUp
		case r-p < -marginTrendBand:
			return TrendDown
		default:
			return TrendStable
		}
	}

	if p == 0 {
		return TrendStable
	}
	rel := (r - p) / p
	switch {
	case rel > relativeTrendBand:
		return TrendUp
	case rel < -relativeTrendBand:
		return TrendDown
	default:
		return TrendStable
	}
}

// CalculateTrends interprets the raw directions: a metric moving up reads
// improving, moving down declining.
func (b *Loop) CalculateTrends() Trends {
	return Trends{
		Revenue:      interpret(b.Trend(MetricRevenue)),
		Spend:        interpret(b.Trend(MetricSpend)),
		ROAS:         interpret(b.Trend(MetricROAS)),
		ProfitMargin: interpret(b.Trend(MetricMargin)),
	}
}

func interpret(d Direction) Direction {
	switch d {
	case TrendUp:
		return TrendImproving
	case TrendDown:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// trendWindows returns the most recent seven entries and the up-to-seven
// entries before them. The prior window may be shorter (or empty) early in
// a run; an empty prior window means there is no base to compare against.
func (b *Loop) trendWindows() (recent, prior []Snapshot, ok bool) {
	n := len(b.history)
	if n < trendWindow {
		return nil, nil, false
	}
	recent = b.history[n-trendWindow:]

	start := n - 2*trendWindow
	if start < 0 {
		start = 0
	}
	prior = b.history[start : n-trendWindow]
	return recent, prior, true
}

func mean(snaps []Snapshot, metric Metric) float64 {
	if len(snaps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range snaps {
		switch metric {
		case MetricRevenue:
			sum += s.Revenue
		case MetricSpend:
			sum += s.Spend
		case MetricROAS:
			sum += s.ROAS
		case MetricMargin:
			sum += s.ProfitMargin
		}
	}
	return sum / float64(len(snaps))
}
