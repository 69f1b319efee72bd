package recommender

// Preference weights applied identically to every dancer.
// A suite the dancer did not list still scores the baseline so they stay rankable.
const (
	WeightFirstPreference  = 4.0
	WeightSecondPreference = 3.0
	WeightThirdPreference  = 2.0
	WeightBaseline         = 1.0
)

// DefaultPicksPerTurn caps how many dancers a suite may take in one turn
const DefaultPicksPerTurn = 10

// weightForRank maps a preference rank (1, 2, 3, or 4 for unlisted) to its weight
func weightForRank(rank int) float64 {
	switch rank {
	case 1:
		return WeightFirstPreference
	case 2:
		return WeightSecondPreference
	case 3:
		return WeightThirdPreference
	default:
		return WeightBaseline
	}
}
