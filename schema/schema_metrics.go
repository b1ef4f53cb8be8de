package schema

// RankingFactor describes one ranking factor for display purposes.
type RankingFactor struct {
	Key         BreakdownKey `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Weight      float64      `json:"weight"`
}

// WeightsRenderModel contains all processed data needed for displaying the ranking formula.
type WeightsRenderModel struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Factors           []RankingFactor `json:"factors"`
	Formula           string          `json:"formula"`
	ContributionFloor float64         `json:"contribution_floor"`
	RecencyHalfLife   float64         `json:"recency_half_life_days"`
}
