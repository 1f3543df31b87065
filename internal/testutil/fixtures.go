package testutil

import (
	"strings"

	"exposure/pkg/entity"
)

// ExampleReportJSON is the report returned for example.com in the
// end-to-end scenario.
const ExampleReportJSON = `{
  "target": "example.com",
  "scan_duration": 4.2,
  "risk_score": {
    "total_score": 63,
    "risk_level": "high",
    "category_scores": {"network": 40, "web": 70}
  },
  "executive_view": {
    "top_risks": ["A", "B"],
    "recommendations": ["R1"]
  },
  "technical_view": {
    "total_findings": 2,
    "findings_by_severity": {"critical": 0, "high": 1, "moderate": 1, "low": 0},
    "modules_results": [
      {
        "module_name": "Port Scan",
        "status": "completed",
        "execution_time": 1.1,
        "findings": [
          {"title": "Open port 22", "severity": "high", "description": "SSH exposed", "evidence": "22/tcp open"}
        ]
      }
    ]
  }
}`

// ExampleReport decodes ExampleReportJSON. It panics on failure since the
// fixture is static.
func ExampleReport() *entity.ScanReport {
	report, err := entity.DecodeReport(strings.NewReader(ExampleReportJSON))
	if err != nil {
		panic(err)
	}
	return report
}

// MultiModuleReport returns a report with several modules, one without
// findings, and findings with every combination of optional fields.
func MultiModuleReport() *entity.ScanReport {
	return &entity.ScanReport{
		Target:       "10.0.0.1",
		ScanID:       "3f1c1a52-8c1e-4d0f-9d0b-6b4f5c2d9e10",
		Timestamp:    "2026-10-19T09:00:00Z",
		ScanDuration: 12.5,
		RiskScore: entity.RiskScore{
			TotalScore: 81,
			RiskLevel:  entity.RiskCritical,
			CategoryScores: entity.CategoryScores{
				{Name: "Network", Score: 55},
				{Name: "TLS", Score: 90},
				{Name: "HTTP Headers", Score: 55},
				{Name: "Domain", Score: 10},
				{Name: "Email Security", Score: 90},
			},
		},
		ExecutiveView: entity.ExecutiveSummary{
			TopRisks:        []string{"[TLS] Expired certificate", "[Network] RDP exposed", "[Email Security] No DMARC"},
			Recommendations: []string{"Renew the certificate", "Close 3389/tcp"},
		},
		TechnicalView: entity.TechnicalSummary{
			TotalFindings: 4,
			FindingsBySeverity: map[string]int{
				"critical": 1,
				"high":     2,
				"moderate": 0,
				"low":      1,
			},
			ModulesResults: []entity.ModuleResult{
				{
					ModuleName:    "Network",
					Status:        "success",
					ExecutionTime: 3.2,
					Findings: []entity.Finding{
						{Title: "RDP exposed", Severity: entity.SeverityHigh, Description: "3389/tcp reachable", Impact: "Brute force"},
						{Title: "ICMP timestamp", Severity: entity.SeverityLow, Description: "Timestamp replies enabled"},
					},
				},
				{
					ModuleName:    "TLS",
					Status:        "success",
					ExecutionTime: 2.0,
					Findings: []entity.Finding{
						{
							Title:          "Expired certificate",
							Severity:       entity.SeverityCritical,
							Description:    "Certificate expired 10 days ago",
							Evidence:       "notAfter=2026-10-09",
							Impact:         "Browsers reject the site",
							Recommendation: "Renew the certificate",
						},
					},
				},
				{
					ModuleName:    "Domain",
					Status:        "skipped",
					ExecutionTime: 0,
				},
				{
					ModuleName:    "Email Security",
					Status:        "failed",
					ExecutionTime: 0.4,
					Findings: []entity.Finding{
						{Title: "No DMARC", Severity: entity.SeverityHigh, Description: "No DMARC record", Recommendation: "Publish p=quarantine"},
					},
				},
			},
		},
	}
}
