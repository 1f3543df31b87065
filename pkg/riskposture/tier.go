// Package riskposture maps risk levels and numeric scores onto display tiers.
package riskposture

// Tier is the display token attached to a score or a risk level.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
	// TierNeutral is used for risk levels the classifier does not know.
	TierNeutral Tier = "neutral"
)

// Score thresholds, inclusive lower bounds.
const (
	criticalThreshold = 76
	highThreshold     = 51
	moderateThreshold = 26
)

// TierForLevel looks up the tier of a server-declared risk level. The level
// is used verbatim; unknown values yield TierNeutral.
func TierForLevel(level string) Tier {
	switch Tier(level) {
	case TierLow, TierModerate, TierHigh, TierCritical:
		return Tier(level)
	default:
		return TierNeutral
	}
}

// TierForScore buckets a 0-100 score.
func TierForScore(score int) Tier {
	switch {
	case score >= criticalThreshold:
		return TierCritical
	case score >= highThreshold:
		return TierHigh
	case score >= moderateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	return string(t)
}

// Color returns the CSS color token for the tier.
func (t Tier) Color() string {
	switch t {
	case TierLow, TierModerate, TierHigh, TierCritical:
		return "var(--color-" + string(t) + ")"
	default:
		return "var(--color-text)"
	}
}
