package entity_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exposure/internal/testutil"
	"exposure/pkg/apperrors"
	"exposure/pkg/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReport(t *testing.T) {
	report, err := entity.DecodeReport(strings.NewReader(testutil.ExampleReportJSON))
	require.NoError(t, err)

	assert.Equal(t, "example.com", report.Target)
	assert.Equal(t, 4.2, report.ScanDuration)
	assert.Equal(t, 63, report.RiskScore.TotalScore)
	assert.Equal(t, entity.RiskHigh, report.RiskScore.RiskLevel)
	assert.Equal(t, entity.CategoryScores{{Name: "network", Score: 40}, {Name: "web", Score: 70}}, report.RiskScore.CategoryScores)
	assert.Equal(t, []string{"A", "B"}, report.ExecutiveView.TopRisks)
	assert.Equal(t, []string{"R1"}, report.ExecutiveView.Recommendations)

	tv := report.TechnicalView
	assert.Equal(t, 2, tv.TotalFindings)
	assert.Equal(t, 1, tv.SeverityCount(entity.SeverityHigh))
	assert.Equal(t, 0, tv.SeverityCount(entity.SeverityCritical))
	require.Len(t, tv.ModulesResults, 1)
	module := tv.ModulesResults[0]
	assert.Equal(t, "Port Scan", module.ModuleName)
	assert.Equal(t, "completed", module.Status)
	require.Len(t, module.Findings, 1)
	assert.Equal(t, "22/tcp open", module.Findings[0].Evidence)
	assert.Empty(t, module.Findings[0].Impact)
}

func TestCategoryScoresKeepWireOrder(t *testing.T) {
	var scores entity.CategoryScores
	require.NoError(t, json.Unmarshal([]byte(`{"web":70,"network":40,"email":70,"tls":0}`), &scores))

	names := make([]string, 0, len(scores))
	for _, cs := range scores {
		names = append(names, cs.Name)
	}
	assert.Equal(t, []string{"web", "network", "email", "tls"}, names)

	score, ok := scores.Get("email")
	assert.True(t, ok)
	assert.Equal(t, 70, score)
	_, ok = scores.Get("dns")
	assert.False(t, ok)

	out, err := json.Marshal(scores)
	require.NoError(t, err)
	assert.JSONEq(t, `{"web":70,"network":40,"email":70,"tls":0}`, string(out))
	assert.True(t, strings.HasPrefix(string(out), `{"web":70,"network":40`))
}

func TestCategoryScoresRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"duplicate": `{"web":70,"web":10}`,
		"array":     `[1,2]`,
		"non int":   `{"web":"high"}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var scores entity.CategoryScores
			assert.Error(t, json.Unmarshal([]byte(raw), &scores))
		})
	}

	var scores entity.CategoryScores
	require.NoError(t, json.Unmarshal([]byte(`null`), &scores))
	assert.Empty(t, scores)
}

func TestDecodeReportMalformed(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `<html>Bad Gateway</html>`, ""},
		{"missing target", strings.Replace(testutil.ExampleReportJSON, `"target": "example.com"`, `"target": "  "`, 1), "target"},
		{"negative duration", strings.Replace(testutil.ExampleReportJSON, `"scan_duration": 4.2`, `"scan_duration": -1`, 1), "scan_duration"},
		{"score out of range", strings.Replace(testutil.ExampleReportJSON, `"total_score": 63`, `"total_score": 101`, 1), "risk_score.total_score"},
		{"category out of range", strings.Replace(testutil.ExampleReportJSON, `"web": 70`, `"web": 170`, 1), "risk_score.category_scores"},
		{"missing risk level", strings.Replace(testutil.ExampleReportJSON, `"risk_level": "high",`, ``, 1), "risk_score.risk_level"},
		{"missing severity key", strings.Replace(testutil.ExampleReportJSON, `"low": 0`, `"info": 0`, 1), "technical_view.findings_by_severity"},
		{"duplicate category", strings.Replace(testutil.ExampleReportJSON, `"web": 70`, `"network": 70`, 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entity.DecodeReport(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeMalformed))

			if tt.field != "" {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.field, appErr.Field)
			}
		})
	}
}

func TestDecodeReportTrustsAggregates(t *testing.T) {
	body := strings.Replace(testutil.ExampleReportJSON, `"total_findings": 2`, `"total_findings": 99`, 1)
	body = strings.Replace(body, `"risk_level": "high"`, `"risk_level": "severe"`, 1)

	report, err := entity.DecodeReport(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 99, report.TechnicalView.TotalFindings)
	assert.Equal(t, entity.RiskLevel("severe"), report.RiskScore.RiskLevel)
}

func TestLoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(testutil.ExampleReportJSON), 0o600))

	report, err := entity.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com", report.Target)

	_, err = entity.LoadReport(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
