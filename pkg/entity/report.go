// Package entity holds the scan report received from the scan service.
// Values are treated as immutable once decoded.
package entity

// Severity of a single finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// Severities lists the severities in display order, most severe first.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityModerate, SeverityLow}
}

// RiskLevel is the server-declared classification of the overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ScanReport is the root document returned for one successful scan.
type ScanReport struct {
	// Target is the scanned domain or IP.
	Target string `json:"target"`
	// ScanID and Timestamp are informational and may be absent.
	ScanID    string `json:"scan_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	// ScanDuration is expressed in seconds.
	ScanDuration float64 `json:"scan_duration"`

	RiskScore     RiskScore        `json:"risk_score"`
	ExecutiveView ExecutiveSummary `json:"executive_view"`
	TechnicalView TechnicalSummary `json:"technical_view"`
}

// RiskScore carries the overall score and its per-category breakdown.
type RiskScore struct {
	TotalScore     int            `json:"total_score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	CategoryScores CategoryScores `json:"category_scores"`
}

type ExecutiveSummary struct {
	TopRisks        []string `json:"top_risks"`
	Recommendations []string `json:"recommendations"`

	ExposureScore int       `json:"exposure_score,omitempty"`
	RiskLevel     RiskLevel `json:"risk_level,omitempty"`
	ScanTimestamp string    `json:"scan_timestamp,omitempty"`
	Target        string    `json:"target,omitempty"`
}

type TechnicalSummary struct {
	// TotalFindings is displayed as declared by the server.
	TotalFindings      int            `json:"total_findings"`
	FindingsBySeverity map[string]int `json:"findings_by_severity"`
	ModulesResults     []ModuleResult `json:"modules_results"`

	ExecutionSummary map[string]interface{} `json:"execution_summary,omitempty"`
}

// SeverityCount returns the declared number of findings for sev.
func (t TechnicalSummary) SeverityCount(sev Severity) int {
	return t.FindingsBySeverity[string(sev)]
}

// ModuleResult is the output of one scan module (port scan, TLS, ...).
type ModuleResult struct {
	ModuleName string `json:"module_name"`
	// Status is used verbatim as a style key.
	Status        string    `json:"status"`
	ExecutionTime float64   `json:"execution_time"`
	Findings      []Finding `json:"findings"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Finding is a single detected exposure.
type Finding struct {
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	// Optional detail fields; empty means absent.
	Evidence       string `json:"evidence,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`

	Category    string `json:"category,omitempty"`
	ScoreImpact int    `json:"score_impact,omitempty"`
}
