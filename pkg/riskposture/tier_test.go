package riskposture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierCritical},
		{76, TierCritical},
		{75, TierHigh},
		{51, TierHigh},
		{50, TierModerate},
		{26, TierModerate},
		{25, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestTierForLevel(t *testing.T) {
	tests := map[string]Tier{
		"low":      TierLow,
		"moderate": TierModerate,
		"high":     TierHigh,
		"critical": TierCritical,
		"HIGH":     TierNeutral,
		"severe":   TierNeutral,
		"":         TierNeutral,
		"neutral":  TierNeutral,
	}

	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			assert.NotPanics(t, func() { TierForLevel(level) })
			assert.Equal(t, want, TierForLevel(level))
		})
	}
}

func TestClassifiersAreIndependent(t *testing.T) {
	// A score of 63 is "high" numerically; the declared level wins for the badge.
	assert.Equal(t, TierHigh, TierForScore(63))
	assert.Equal(t, TierModerate, TierForLevel("moderate"))
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, "var(--color-critical)", TierCritical.Color())
	assert.Equal(t, "var(--color-high)", TierHigh.Color())
	assert.Equal(t, "var(--color-moderate)", TierModerate.Color())
	assert.Equal(t, "var(--color-low)", TierLow.Color())
	assert.Equal(t, "var(--color-text)", TierNeutral.Color())
	assert.Equal(t, "var(--color-text)", Tier("bogus").Color())
	assert.Equal(t, "high", TierHigh.String())
}

func TestCountTiers(t *testing.T) {
	c := CountTiers(100, 76, 75, 51, 50, 26, 25, 0, 90)

	assert.Equal(t, Counts{Low: 2, Moderate: 2, High: 2, Critical: 3}, c)
	assert.Equal(t, 9, c.Total())
	assert.Equal(t, 3, c.AtLeast(TierCritical))
	assert.Equal(t, 5, c.AtLeast(TierHigh))
	assert.Equal(t, 7, c.AtLeast(TierModerate))
	assert.Equal(t, 9, c.AtLeast(TierLow))
	assert.Equal(t, 0, CountTiers().Total())
}
