package scanservice

import (
	"context"
	"strings"

	"exposure/pkg/apperrors"
	"exposure/pkg/entity"
)

// Static serves a report that was loaded ahead of time, e.g. from a file.
// Only the report's own target (case-insensitive) or an empty target is
// answered; any other target is a validation error.
type Static struct {
	report *entity.ScanReport
}

func NewStatic(report *entity.ScanReport) *Static {
	return &Static{report: report}
}

// LoadStatic reads a saved report from path.
func LoadStatic(path string) (*Static, error) {
	report, err := entity.LoadReport(path)
	if err != nil {
		return nil, err
	}
	return NewStatic(report), nil
}

func (s *Static) Scan(ctx context.Context, target string) (*entity.ScanReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Classify(err)
	}
	if s.report == nil {
		return nil, apperrors.NewMalformedError("no report loaded", nil)
	}
	if t := strings.TrimSpace(target); t != "" && !strings.EqualFold(t, s.report.Target) {
		return nil, apperrors.NewValidationError("target", "loaded report is for "+s.report.Target)
	}
	return s.report, nil
}

// Target returns the target of the loaded report.
func (s *Static) Target() string {
	if s.report == nil {
		return ""
	}
	return s.report.Target
}
