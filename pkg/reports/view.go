package reports

import (
	"strings"

	"exposure/pkg/entity"
)

// View names one of the two alternate renderings of a report.
type View string

const (
	ViewExecutive View = "executive"
	ViewTechnical View = "technical"
)

// Views lists the views in selector order.
func Views() []View {
	return []View{ViewExecutive, ViewTechnical}
}

// ParseView accepts a view name case-insensitively.
func ParseView(name string) (View, bool) {
	switch v := View(strings.ToLower(strings.TrimSpace(name))); v {
	case ViewExecutive, ViewTechnical:
		return v, true
	default:
		return "", false
	}
}

func (v View) String() string {
	return string(v)
}

// Report pairs the two composed documents of one scan.
type Report struct {
	Executive *ExecutiveDocument
	Technical *TechnicalDocument
}

// Compose builds both documents from the same report value.
func Compose(r *entity.ScanReport) Report {
	return Report{
		Executive: ComposeExecutive(r),
		Technical: ComposeTechnical(r),
	}
}
