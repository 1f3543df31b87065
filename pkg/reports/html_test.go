package reports_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exposure/internal/testutil"
	"exposure/pkg/reports"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExecutiveHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reports.RenderExecutiveHTML(&buf, reports.ComposeExecutive(testutil.ExampleReport())))

	out := buf.String()
	assert.Contains(t, out, "63")
	assert.Contains(t, out, "HIGH EXPOSURE")
	assert.Contains(t, out, `class="risk-badge risk-high"`)
	assert.Contains(t, out, "<li>A</li>")
	assert.Contains(t, out, "<li>R1</li>")
	assert.Contains(t, out, "example.com")
	assert.Less(t, strings.Index(out, "70/100"), strings.Index(out, "40/100"))
	assert.NotContains(t, out, "Scan ID")
}

func TestRenderTechnicalHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reports.RenderTechnicalHTML(&buf, reports.ComposeTechnical(testutil.MultiModuleReport())))

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, `class="module-section"`))
	assert.Equal(t, 1, strings.Count(out, reports.NoFindingsPlaceholder))
	assert.Equal(t, 4, strings.Count(out, `class="finding-item `))
	assert.Contains(t, out, `class="module-status status-skipped"`)
	assert.Contains(t, out, `class="severity-badge severity-critical"`)
	assert.Equal(t, 1, strings.Count(out, `class="finding-evidence"`))
	assert.Contains(t, out, "12.5s")
}

func TestRenderHTMLEscapesReportText(t *testing.T) {
	report := testutil.ExampleReport()
	report.TechnicalView.ModulesResults[0].Findings[0].Title = `<script>alert(1)</script>`

	var buf bytes.Buffer
	require.NoError(t, reports.RenderTechnicalHTML(&buf, reports.ComposeTechnical(report)))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestGenerateHTMLReport(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.html")

	err := reports.GenerateHTMLReport(testutil.ExampleReport(), outputPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "Exposure Report - example.com")
	assert.Contains(t, contentStr, "Open port 22")
	assert.Contains(t, contentStr, "HIGH EXPOSURE")
	assert.Contains(t, contentStr, `id="executiveView" class="view active"`)
	assert.Contains(t, contentStr, `id="technicalView" class="view"`)
	assert.Contains(t, contentStr, "<html>")
	assert.Contains(t, contentStr, "</html>")
}

func TestExportHTMLActiveView(t *testing.T) {
	var buf bytes.Buffer
	rep := reports.Compose(testutil.ExampleReport())

	require.NoError(t, reports.ExportHTML(&buf, rep, "Report", reports.ViewTechnical))
	assert.Contains(t, buf.String(), `id="technicalView" class="view active"`)
	assert.Contains(t, buf.String(), `id="executiveView" class="view"`)

	buf.Reset()
	require.NoError(t, reports.ExportHTML(&buf, rep, "Report", reports.View("Technical")))
	assert.Contains(t, buf.String(), `id="technicalView" class="view active"`)
	assert.Contains(t, buf.String(), `id="executiveView" class="view"`)

	buf.Reset()
	require.NoError(t, reports.ExportHTML(&buf, rep, "Report", "bogus"))
	assert.Contains(t, buf.String(), `id="executiveView" class="view active"`)
}

func TestFragments(t *testing.T) {
	executive, technical, err := reports.Fragments(reports.Compose(testutil.ExampleReport()))
	require.NoError(t, err)
	assert.Contains(t, executive, "HIGH EXPOSURE")
	assert.NotContains(t, executive, "Open port 22")
	assert.Contains(t, technical, "Open port 22")
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reports.RenderPage(&buf, reports.Page{Title: "Exposure", WebSocketPath: "/ws"}))

	out := buf.String()
	for _, id := range []string{`id="target"`, `id="loading"`, `id="results"`, `id="executiveBtn"`, `id="technicalBtn"`, `id="executiveView"`, `id="technicalView"`} {
		assert.Contains(t, out, id)
	}
	assert.Regexp(t, `"\\?/ws"`, out)
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true
	rep := reports.Compose(testutil.MultiModuleReport())

	var buf bytes.Buffer
	reports.PrintReport(&buf, rep, "")
	out := buf.String()
	assert.Contains(t, out, "CRITICAL EXPOSURE")
	assert.Contains(t, out, "Scan ID: 3f1c1a52-8c1e-4d0f-9d0b-6b4f5c2d9e10")
	assert.Less(t, strings.Index(out, "TLS "), strings.Index(out, "Domain "))
	assert.Contains(t, out, "4 of 5 categories at high exposure or above")
	assert.Contains(t, out, reports.NoFindingsPlaceholder)
	assert.Contains(t, out, "Recommendation: Renew the certificate")

	buf.Reset()
	reports.PrintReport(&buf, rep, reports.ViewTechnical)
	assert.NotContains(t, buf.String(), "Exposure Score")
	assert.Contains(t, buf.String(), "Statistics")
}
