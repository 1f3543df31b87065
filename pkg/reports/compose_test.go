package reports_test

import (
	"strings"
	"testing"

	"exposure/internal/testutil"
	"exposure/pkg/entity"
	"exposure/pkg/reports"
	"exposure/pkg/riskposture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFinding(t *testing.T) {
	tests := []struct {
		name    string
		finding entity.Finding
		kinds   []reports.DetailKind
	}{
		{
			name:    "description only",
			finding: entity.Finding{Title: "ICMP timestamp", Severity: entity.SeverityLow, Description: "Timestamp replies enabled"},
		},
		{
			name:    "evidence",
			finding: entity.Finding{Title: "Open port 22", Severity: entity.SeverityHigh, Description: "SSH exposed", Evidence: "22/tcp open"},
			kinds:   []reports.DetailKind{reports.DetailEvidence},
		},
		{
			name:    "impact and recommendation",
			finding: entity.Finding{Title: "No DMARC", Severity: entity.SeverityModerate, Description: "d", Impact: "Spoofing", Recommendation: "Publish DMARC"},
			kinds:   []reports.DetailKind{reports.DetailImpact, reports.DetailRecommendation},
		},
		{
			name: "all details",
			finding: entity.Finding{
				Title: "Expired certificate", Severity: entity.SeverityCritical, Description: "d",
				Recommendation: "Renew", Impact: "Outage", Evidence: "notAfter",
			},
			kinds: []reports.DetailKind{reports.DetailEvidence, reports.DetailImpact, reports.DetailRecommendation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := reports.RenderFinding(tt.finding)
			sev := string(tt.finding.Severity)

			assert.Equal(t, "finding-item "+sev, block.Class)
			assert.Equal(t, "severity-badge severity-"+sev, block.BadgeClass)
			assert.Equal(t, sev, block.Severity)
			assert.Equal(t, tt.finding.Title, block.Title)
			assert.Equal(t, tt.finding.Description, block.Description)

			kinds := make([]reports.DetailKind, 0, len(block.Details))
			for _, d := range block.Details {
				kinds = append(kinds, d.Kind)
				assert.NotEmpty(t, d.Text)
			}
			if tt.kinds == nil {
				assert.Empty(t, block.Details)
			} else {
				assert.Equal(t, tt.kinds, kinds)
			}
		})
	}
}

func TestRenderFindingDetailText(t *testing.T) {
	block := reports.RenderFinding(entity.Finding{Title: "t", Severity: entity.SeverityHigh, Description: "d", Evidence: "22/tcp open"})

	d, ok := block.Detail(reports.DetailEvidence)
	require.True(t, ok)
	assert.Equal(t, "Evidence", d.Label)
	assert.Equal(t, "22/tcp open", d.Text)

	_, ok = block.Detail(reports.DetailImpact)
	assert.False(t, ok)
	assert.Equal(t, riskposture.TierHigh, block.Tier)
}

func categoryNames(doc *reports.ExecutiveDocument) []string {
	names := make([]string, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		names = append(names, c.Name)
	}
	return names
}

func TestRenderFindingFromDecodedReport(t *testing.T) {
	evidence := `"evidence": "22/tcp open"`
	tests := []struct {
		name   string
		fields string
		kinds  []reports.DetailKind
	}{
		{"null evidence", `"evidence": null`, nil},
		{"all details null", `"evidence": null, "impact": null, "recommendation": null`, nil},
		{"empty details", `"evidence": "", "impact": "", "recommendation": ""`, nil},
		{"null evidence with impact", `"evidence": null, "impact": "Remote login"`, []reports.DetailKind{reports.DetailImpact}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := strings.Replace(testutil.ExampleReportJSON, evidence, tt.fields, 1)
			require.NotEqual(t, testutil.ExampleReportJSON, raw)

			report, err := entity.DecodeReport(strings.NewReader(raw))
			require.NoError(t, err)

			block := reports.RenderFinding(report.TechnicalView.ModulesResults[0].Findings[0])
			var kinds []reports.DetailKind
			for _, d := range block.Details {
				kinds = append(kinds, d.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestComposeExecutive(t *testing.T) {
	doc := reports.ComposeExecutive(testutil.ExampleReport())

	assert.Equal(t, 63, doc.Score.Total)
	assert.Equal(t, riskposture.TierHigh, doc.Score.Tier)
	assert.Equal(t, "var(--color-high)", doc.Score.Color)
	assert.Equal(t, "HIGH EXPOSURE", doc.Score.Badge)
	assert.Equal(t, "risk-badge risk-high", doc.Score.BadgeClass)
	assert.Equal(t, "example.com", doc.Score.Target)
	assert.Empty(t, doc.Score.ScanID)

	assert.Equal(t, []string{"A", "B"}, doc.TopRisks)
	assert.Equal(t, []string{"R1"}, doc.Recommendations)

	require.Len(t, doc.Categories, 2)
	assert.Equal(t, reports.CategoryLine{Name: "web", Score: 70, Display: "70/100", Tier: riskposture.TierHigh, Color: "var(--color-high)"}, doc.Categories[0])
	assert.Equal(t, reports.CategoryLine{Name: "network", Score: 40, Display: "40/100", Tier: riskposture.TierModerate, Color: "var(--color-moderate)"}, doc.Categories[1])
}

func TestComposeExecutiveStableCategoryOrder(t *testing.T) {
	report := testutil.MultiModuleReport()
	doc := reports.ComposeExecutive(report)

	assert.Equal(t, []string{"TLS", "Email Security", "Network", "HTTP Headers", "Domain"}, categoryNames(doc))
	for i := 1; i < len(doc.Categories); i++ {
		assert.GreaterOrEqual(t, doc.Categories[i-1].Score, doc.Categories[i].Score)
	}

	// The report itself is left untouched.
	assert.Equal(t, "Network", report.RiskScore.CategoryScores[0].Name)
	assert.Equal(t, "3f1c1a52-8c1e-4d0f-9d0b-6b4f5c2d9e10", doc.Score.ScanID)
	assert.Equal(t, "CRITICAL EXPOSURE", doc.Score.Badge)
}

func TestComposeExecutiveUnknownLevel(t *testing.T) {
	report := testutil.ExampleReport()
	report.RiskScore.RiskLevel = "severe"

	doc := reports.ComposeExecutive(report)
	assert.Equal(t, riskposture.TierNeutral, doc.Score.Tier)
	assert.Equal(t, "var(--color-text)", doc.Score.Color)
	assert.Equal(t, "SEVERE EXPOSURE", doc.Score.Badge)
}

func TestComposeExecutiveEmptyCategories(t *testing.T) {
	report := testutil.ExampleReport()
	report.RiskScore.CategoryScores = nil

	doc := reports.ComposeExecutive(report)
	assert.Empty(t, doc.Categories)
}

func TestComposeTechnical(t *testing.T) {
	doc := reports.ComposeTechnical(testutil.ExampleReport())

	labels := make([]string, 0, len(doc.Stats))
	values := make([]string, 0, len(doc.Stats))
	for _, s := range doc.Stats {
		labels = append(labels, s.Label)
		values = append(values, s.Value)
	}
	assert.Equal(t, []string{
		reports.StatTotalFindings, reports.StatCritical, reports.StatHigh,
		reports.StatModerate, reports.StatLow, reports.StatScanDuration,
	}, labels)
	assert.Equal(t, []string{"2", "0", "1", "1", "0", "4.2s"}, values)

	assert.Empty(t, doc.Stats[0].Tier)
	assert.Equal(t, riskposture.TierCritical, doc.Stats[1].Tier)
	assert.Equal(t, "var(--color-low)", doc.Stats[4].Color)
	assert.Empty(t, doc.Stats[5].Tier)

	require.Len(t, doc.Modules, 1)
	module := doc.Modules[0]
	assert.Equal(t, "Port Scan", module.Name)
	assert.Equal(t, "module-status status-completed", module.StatusClass)
	assert.Equal(t, "1.1s", module.ExecutionTime)
	require.Len(t, module.Findings, 1)
	assert.Empty(t, module.Placeholder)
	assert.Equal(t, "Open port 22", module.Findings[0].Title)

	// The declared total is shown even though only one finding is listed.
	assert.Equal(t, 2, doc.TotalFindings)
	assert.Equal(t, 1, doc.CountedFindings)
	assert.True(t, doc.FindingsMismatch())
}

func TestComposeTechnicalModules(t *testing.T) {
	report := testutil.MultiModuleReport()
	doc := reports.ComposeTechnical(report)

	require.Len(t, doc.Modules, len(report.TechnicalView.ModulesResults))
	for i, m := range report.TechnicalView.ModulesResults {
		section := doc.Modules[i]
		assert.Equal(t, m.ModuleName, section.Name)
		assert.Len(t, section.Findings, len(m.Findings))
		if len(m.Findings) == 0 {
			assert.Equal(t, reports.NoFindingsPlaceholder, section.Placeholder)
		} else {
			assert.Empty(t, section.Placeholder)
		}
	}

	assert.Equal(t, "module-status status-skipped", doc.Modules[2].StatusClass)
	assert.Equal(t, "0s", doc.Modules[2].ExecutionTime)
	assert.Equal(t, "12.5s", doc.Stats[5].Value)
	assert.Equal(t, 4, doc.CountedFindings)
}

func TestComposeTechnicalTrustsDeclaredTotal(t *testing.T) {
	report := testutil.ExampleReport()
	report.TechnicalView.TotalFindings = 99

	doc := reports.ComposeTechnical(report)
	assert.Equal(t, "99", doc.Stats[0].Value)
	assert.Equal(t, 99, doc.TotalFindings)
	assert.Equal(t, 1, doc.CountedFindings)
	assert.True(t, doc.FindingsMismatch())
}

func TestParseView(t *testing.T) {
	v, ok := reports.ParseView(" Technical ")
	assert.True(t, ok)
	assert.Equal(t, reports.ViewTechnical, v)

	_, ok = reports.ParseView("summary")
	assert.False(t, ok)
	assert.Equal(t, []reports.View{reports.ViewExecutive, reports.ViewTechnical}, reports.Views())
}
