package models

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type Metric struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
	Unit  string `json:"unit"`
	Trend Trend  `json:"trend"`
}

// JournalImpact is how strongly a journal factor moved the health score,
// from -100 to +100.
type JournalImpact struct {
	Factor string `json:"factor"`
	Value  int    `json:"value"`
}

type ChartPoint struct {
	Time  int     `json:"time"`
	Value float64 `json:"value"`
}

type HealthFactor struct {
	Name         string `json:"name"`
	Contribution int    `json:"contribution"`
	Current      int    `json:"current"`
	Optimal      string `json:"optimal"`
}

type Stats struct {
	HealthScore int             `json:"health_score"`
	Streak      int             `json:"streak"`
	Metrics     []Metric        `json:"metrics"`
	Impacts     []JournalImpact `json:"journal_impacts"`
}
