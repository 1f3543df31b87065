package reports

import (
	"strconv"

	"exposure/pkg/entity"
	"exposure/pkg/riskposture"
)

// Statistic labels, in display order.
const (
	StatTotalFindings = "Total Findings"
	StatCritical      = "Critical"
	StatHigh          = "High"
	StatModerate      = "Moderate"
	StatLow           = "Low"
	StatScanDuration  = "Scan Duration"
)

// NoFindingsPlaceholder is shown for a module that reported nothing.
const NoFindingsPlaceholder = "No findings detected"

// Stat is one cell of the statistics grid. Tier is empty for uncolored
// values.
type Stat struct {
	Label string
	Value string
	Tier  riskposture.Tier
	Color string
}

// ModuleSection is the rendering of one module result.
type ModuleSection struct {
	Name          string
	Status        string
	StatusClass   string
	ExecutionTime string
	Findings      []FindingBlock
	// Placeholder is set if and only if Findings is empty.
	Placeholder string
}

// TechnicalDocument is the analyst-oriented detail of a scan.
type TechnicalDocument struct {
	Stats   []Stat
	Modules []ModuleSection

	// TotalFindings is the server-declared count shown in Stats.
	TotalFindings int
	// CountedFindings is the number of findings actually listed across modules.
	CountedFindings int
}

// FindingsMismatch reports whether the declared total differs from the
// number of findings listed.
func (d *TechnicalDocument) FindingsMismatch() bool {
	return d.TotalFindings != d.CountedFindings
}

// formatSeconds renders a duration in seconds with the shortest exact
// decimal form, e.g. 4.2 -> "4.2s", 3 -> "3s".
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

func severityStat(label string, sev entity.Severity, tv entity.TechnicalSummary) Stat {
	t := riskposture.TierForLevel(string(sev))
	return Stat{
		Label: label,
		Value: strconv.Itoa(tv.SeverityCount(sev)),
		Tier:  t,
		Color: t.Color(),
	}
}

// ComposeTechnical builds the technical view of r.
func ComposeTechnical(r *entity.ScanReport) *TechnicalDocument {
	tv := r.TechnicalView

	doc := &TechnicalDocument{
		Stats: []Stat{
			{Label: StatTotalFindings, Value: strconv.Itoa(tv.TotalFindings)},
			severityStat(StatCritical, entity.SeverityCritical, tv),
			severityStat(StatHigh, entity.SeverityHigh, tv),
			severityStat(StatModerate, entity.SeverityModerate, tv),
			severityStat(StatLow, entity.SeverityLow, tv),
			{Label: StatScanDuration, Value: formatSeconds(r.ScanDuration)},
		},
		Modules:       make([]ModuleSection, 0, len(tv.ModulesResults)),
		TotalFindings: tv.TotalFindings,
	}

	for _, m := range tv.ModulesResults {
		section := ModuleSection{
			Name:          m.ModuleName,
			Status:        m.Status,
			StatusClass:   "module-status status-" + m.Status,
			ExecutionTime: formatSeconds(m.ExecutionTime),
		}
		for _, f := range m.Findings {
			section.Findings = append(section.Findings, RenderFinding(f))
		}
		if len(section.Findings) == 0 {
			section.Placeholder = NoFindingsPlaceholder
		}
		doc.CountedFindings += len(section.Findings)
		doc.Modules = append(doc.Modules, section)
	}

	return doc
}
