package reports

import (
	"exposure/pkg/entity"
	"exposure/pkg/riskposture"
)

// DetailKind identifies an optional block under a finding.
type DetailKind string

const (
	DetailEvidence       DetailKind = "evidence"
	DetailImpact         DetailKind = "impact"
	DetailRecommendation DetailKind = "recommendation"
)

// DetailBlock is one labelled optional section of a finding.
type DetailBlock struct {
	Kind  DetailKind
	Label string
	Text  string
}

// FindingBlock is the rendered form of a single finding.
type FindingBlock struct {
	// Class is the block style key, "finding-item <severity>".
	Class       string
	Title       string
	Severity    string
	BadgeClass  string
	Tier        riskposture.Tier
	Description string
	// Details holds evidence, impact and recommendation, in that order,
	// each present only when the source field is non-empty.
	Details []DetailBlock
}

// Detail returns the block of the given kind, if present.
func (b FindingBlock) Detail(kind DetailKind) (DetailBlock, bool) {
	for _, d := range b.Details {
		if d.Kind == kind {
			return d, true
		}
	}
	return DetailBlock{}, false
}

func badgeClass(sev string) string {
	return "severity-badge severity-" + sev
}

// RenderFinding turns a finding into its display block.
func RenderFinding(f entity.Finding) FindingBlock {
	sev := string(f.Severity)

	block := FindingBlock{
		Class:       "finding-item " + sev,
		Title:       f.Title,
		Severity:    sev,
		BadgeClass:  badgeClass(sev),
		Tier:        riskposture.TierForLevel(sev),
		Description: f.Description,
	}

	optional := []DetailBlock{
		{Kind: DetailEvidence, Label: "Evidence", Text: f.Evidence},
		{Kind: DetailImpact, Label: "Impact", Text: f.Impact},
		{Kind: DetailRecommendation, Label: "Recommendation", Text: f.Recommendation},
	}
	for _, d := range optional {
		if d.Text != "" {
			block.Details = append(block.Details, d)
		}
	}

	return block
}
