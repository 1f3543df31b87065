package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"exposure/pkg/riskposture"
)

func tierColor(t riskposture.Tier) *color.Color {
	switch t {
	case riskposture.TierCritical:
		return color.New(color.FgRed, color.Bold)
	case riskposture.TierHigh:
		return color.New(color.FgHiRed)
	case riskposture.TierModerate:
		return color.New(color.FgYellow)
	case riskposture.TierLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, color.HiBlueString(title))
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// PrintExecutive writes the executive document as colored terminal text.
func PrintExecutive(w io.Writer, doc *ExecutiveDocument) {
	heading(w, "Exposure Score")
	score := tierColor(doc.Score.Tier)
	fmt.Fprintf(w, "%s  %s\n", score.Sprintf("%d", doc.Score.Total), score.Sprint(doc.Score.Badge))
	fmt.Fprintf(w, "Target: %s\n", doc.Score.Target)
	if doc.Score.ScanID != "" {
		fmt.Fprintf(w, "Scan ID: %s\n", doc.Score.ScanID)
	}
	if doc.Score.Timestamp != "" {
		fmt.Fprintf(w, "Scanned at: %s\n", doc.Score.Timestamp)
	}
	fmt.Fprintln(w)

	heading(w, "Top Risks")
	for i, risk := range doc.TopRisks {
		fmt.Fprintf(w, "%d. %s\n", i+1, risk)
	}
	fmt.Fprintln(w)

	heading(w, "Priority Recommendations")
	for i, rec := range doc.Recommendations {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec)
	}
	fmt.Fprintln(w)

	heading(w, "Category Breakdown")
	rowFormat := "%-30s %s\n"
	scores := make([]int, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		fmt.Fprintf(w, rowFormat, c.Name, tierColor(c.Tier).Sprint(c.Display))
		scores = append(scores, c.Score)
	}
	if counts := riskposture.CountTiers(scores...); counts.Total() > 0 {
		fmt.Fprintf(w, "%d of %d categories at high exposure or above\n",
			counts.AtLeast(riskposture.TierHigh), counts.Total())
	}
}

// PrintTechnical writes the technical document as colored terminal text.
func PrintTechnical(w io.Writer, doc *TechnicalDocument) {
	heading(w, "Statistics")
	for _, s := range doc.Stats {
		value := s.Value
		if s.Tier != "" {
			value = tierColor(s.Tier).Sprint(value)
		}
		fmt.Fprintf(w, "%-16s %s\n", s.Label, value)
	}

	headerFormat := "  %-10s %-40s %s\n"
	for _, m := range doc.Modules {
		fmt.Fprintln(w)
		heading(w, fmt.Sprintf("%s [%s] %s", m.Name, m.Status, m.ExecutionTime))
		if len(m.Findings) == 0 {
			fmt.Fprintf(w, "  %s\n", color.New(color.Faint).Sprint(m.Placeholder))
			continue
		}

		fmt.Fprintf(w, headerFormat,
			color.HiBlueString("Severity"),
			color.HiBlueString("Title"),
			color.HiBlueString("Description"))
		for _, f := range m.Findings {
			fmt.Fprintf(w, headerFormat,
				tierColor(f.Tier).Sprint(strings.ToUpper(f.Severity)),
				f.Title,
				color.CyanString(f.Description))
			for _, d := range f.Details {
				fmt.Fprintf(w, "    %s: %s\n", d.Label, d.Text)
			}
		}
	}
}

// PrintReport writes the selected views; "" prints both.
func PrintReport(w io.Writer, rep Report, view View) {
	if view == "" || view == ViewExecutive {
		PrintExecutive(w, rep.Executive)
	}
	if view == "" {
		fmt.Fprintln(w)
	}
	if view == "" || view == ViewTechnical {
		PrintTechnical(w, rep.Technical)
	}
}
