package riskposture

// Counts tallies how many scores fall in each tier.
type Counts struct {
	Low      int
	Moderate int
	High     int
	Critical int
}

// CountTiers buckets every score with TierForScore.
func CountTiers(scores ...int) Counts {
	var c Counts
	for _, s := range scores {
		switch TierForScore(s) {
		case TierCritical:
			c.Critical++
		case TierHigh:
			c.High++
		case TierModerate:
			c.Moderate++
		default:
			c.Low++
		}
	}
	return c
}

// Total is the number of scores counted.
func (c Counts) Total() int {
	return c.Low + c.Moderate + c.High + c.Critical
}

// AtLeast returns how many scores are in tier t or a more severe one.
func (c Counts) AtLeast(t Tier) int {
	switch t {
	case TierCritical:
		return c.Critical
	case TierHigh:
		return c.Critical + c.High
	case TierModerate:
		return c.Critical + c.High + c.Moderate
	default:
		return c.Total()
	}
}
