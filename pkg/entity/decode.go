package entity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"exposure/pkg/apperrors"
)

// DecodeReport reads one ScanReport from r and checks its structure.
// Any failure is a malformed-response error.
func DecodeReport(r io.Reader) (*ScanReport, error) {
	var report ScanReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, apperrors.NewMalformedError("response is not a valid scan report", err)
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}

// LoadReport decodes a report saved as JSON at path.
func LoadReport(path string) (*ScanReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	return DecodeReport(f)
}

// Validate checks the structural requirements of the report. It does not
// cross-check aggregates: total_findings and risk_level are trusted as sent.
func (r *ScanReport) Validate() error {
	if strings.TrimSpace(r.Target) == "" {
		return malformed("target", "target is required")
	}
	if r.ScanDuration < 0 {
		return malformed("scan_duration", "scan_duration must not be negative")
	}

	rs := r.RiskScore
	if rs.RiskLevel == "" {
		return malformed("risk_score.risk_level", "risk_level is required")
	}
	if rs.TotalScore < 0 || rs.TotalScore > 100 {
		return malformed("risk_score.total_score", fmt.Sprintf("total_score %d out of range [0,100]", rs.TotalScore))
	}
	for _, cs := range rs.CategoryScores {
		if cs.Score < 0 || cs.Score > 100 {
			return malformed("risk_score.category_scores", fmt.Sprintf("score %d for category %q out of range [0,100]", cs.Score, cs.Name))
		}
	}

	tv := r.TechnicalView
	if tv.TotalFindings < 0 {
		return malformed("technical_view.total_findings", "total_findings must not be negative")
	}
	for _, sev := range Severities() {
		count, ok := tv.FindingsBySeverity[string(sev)]
		if !ok {
			return malformed("technical_view.findings_by_severity", fmt.Sprintf("missing %q count", sev))
		}
		if count < 0 {
			return malformed("technical_view.findings_by_severity", fmt.Sprintf("negative %q count", sev))
		}
	}
	for i, m := range tv.ModulesResults {
		if m.ExecutionTime < 0 {
			return malformed("technical_view.modules_results", fmt.Sprintf("module %d (%s) has negative execution_time", i, m.ModuleName))
		}
	}

	return nil
}

func malformed(field, message string) error {
	err := apperrors.NewMalformedError(message, nil)
	err.Field = field
	return err
}
