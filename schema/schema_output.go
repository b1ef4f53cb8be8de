package schema

// Label values for composite ranking scores.
const (
	StandoutValue = "Standout"
	StrongValue   = "Strong"
	ModerateValue = "Moderate"
	LightValue    = "Light"
)

// EnrichedProjectRanking adds presentation data to a ProjectRanking.
type EnrichedProjectRanking struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ProjectRanking
}

// GetPlainLabel returns a plain text label for a composite score in [0,1].
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.75:
		return StandoutValue
	case score >= 0.5:
		return StrongValue
	case score >= 0.25:
		return ModerateValue
	default:
		return LightValue
	}
}

// EnrichRankings adds rank and label to a list of project rankings.
func EnrichRankings(rankings []ProjectRanking) []EnrichedProjectRanking {
	output := make([]EnrichedProjectRanking, len(rankings))
	for i, r := range rankings {
		output[i] = EnrichedProjectRanking{
			Rank:           i + 1,
			Label:          GetPlainLabel(r.Score),
			ProjectRanking: r,
		}
	}
	return output
}
