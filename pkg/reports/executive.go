package reports

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"exposure/pkg/entity"
	"exposure/pkg/riskposture"
)

// ScoreBlock is the headline of the executive view.
type ScoreBlock struct {
	Total int
	// Tier comes from the declared risk level, not from Total.
	Tier       riskposture.Tier
	Color      string
	Badge      string
	BadgeClass string
	Target     string
	ScanID     string
	Timestamp  string
}

// CategoryLine is one row of the category breakdown.
type CategoryLine struct {
	Name    string
	Score   int
	Display string
	Tier    riskposture.Tier
	Color   string
}

// ExecutiveDocument is the business-oriented summary of a scan.
type ExecutiveDocument struct {
	Score           ScoreBlock
	TopRisks        []string
	Recommendations []string
	// Categories are sorted by descending score; ties keep report order.
	Categories []CategoryLine
}

// ComposeExecutive builds the executive view of r.
func ComposeExecutive(r *entity.ScanReport) *ExecutiveDocument {
	level := string(r.RiskScore.RiskLevel)
	tier := riskposture.TierForLevel(level)

	doc := &ExecutiveDocument{
		Score: ScoreBlock{
			Total:      r.RiskScore.TotalScore,
			Tier:       tier,
			Color:      tier.Color(),
			Badge:      strings.ToUpper(level) + " EXPOSURE",
			BadgeClass: "risk-badge risk-" + level,
			Target:     r.Target,
			ScanID:     r.ScanID,
			Timestamp:  r.Timestamp,
		},
		TopRisks:        append([]string(nil), r.ExecutiveView.TopRisks...),
		Recommendations: append([]string(nil), r.ExecutiveView.Recommendations...),
		Categories:      make([]CategoryLine, 0, len(r.RiskScore.CategoryScores)),
	}

	for _, cs := range r.RiskScore.CategoryScores {
		t := riskposture.TierForScore(cs.Score)
		doc.Categories = append(doc.Categories, CategoryLine{
			Name:    cs.Name,
			Score:   cs.Score,
			Display: strconv.Itoa(cs.Score) + "/100",
			Tier:    t,
			Color:   t.Color(),
		})
	}

	slices.SortStableFunc(doc.Categories, func(a, b CategoryLine) int {
		return b.Score - a.Score
	})

	return doc
}
