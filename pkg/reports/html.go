// Package reports composes scan reports into executive and technical
// documents and renders them as HTML or terminal output.
package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"sync"
	"time"

	"exposure/pkg/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names defined by the embedded files.
var requiredTemplates = []string{"styles", "finding", "executive", "technical", "report", "index"}

var (
	tplOnce sync.Once
	tpl     *template.Template
	tplErr  error
)

func validateEmbeddedTemplates(t *template.Template) error {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read embedded templates root: %w", err)
	}

	if len(entries) == 0 {
		return fmt.Errorf("no embedded templates found (go:embed likely misconfigured)")
	}

	for _, name := range requiredTemplates {
		if t.Lookup(name) == nil {
			return fmt.Errorf("template %q not found in embedded templates", name)
		}
	}

	return nil
}

func templates() (*template.Template, error) {
	tplOnce.Do(func() {
		t, err := template.New("reports").ParseFS(templatesFS, "templates/*.html")
		if err != nil {
			tplErr = fmt.Errorf("parse templates: %w", err)
			return
		}
		if err := validateEmbeddedTemplates(t); err != nil {
			tplErr = err
			return
		}
		tpl = t
	})
	return tpl, tplErr
}

func execute(w io.Writer, name string, data any) error {
	t, err := templates()
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s template: %w", name, err)
	}
	return nil
}

// RenderExecutiveHTML writes the executive view as an HTML fragment.
func RenderExecutiveHTML(w io.Writer, doc *ExecutiveDocument) error {
	return execute(w, "executive", doc)
}

// RenderTechnicalHTML writes the technical view as an HTML fragment.
func RenderTechnicalHTML(w io.Writer, doc *TechnicalDocument) error {
	return execute(w, "technical", doc)
}

// Fragments renders both views to HTML strings.
func Fragments(rep Report) (executive, technical string, err error) {
	var eb, tb bytes.Buffer
	if err := RenderExecutiveHTML(&eb, rep.Executive); err != nil {
		return "", "", err
	}
	if err := RenderTechnicalHTML(&tb, rep.Technical); err != nil {
		return "", "", err
	}
	return eb.String(), tb.String(), nil
}

type exportView struct {
	Title       string
	GeneratedAt string
	Active      View
	Executive   *ExecutiveDocument
	Technical   *TechnicalDocument
}

// ExportHTML writes a standalone page holding both views and a client-side
// switcher, with active selected initially.
func ExportHTML(w io.Writer, rep Report, title string, active View) error {
	if v, ok := ParseView(string(active)); ok {
		active = v
	} else {
		active = ViewExecutive
	}
	return execute(w, "report", exportView{
		Title:       title,
		GeneratedAt: time.Now().Format(time.RFC1123),
		Active:      active,
		Executive:   rep.Executive,
		Technical:   rep.Technical,
	})
}

// GenerateHTMLReport composes r and writes the standalone page to outputPath.
func GenerateHTMLReport(r *entity.ScanReport, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	title := "Exposure Report - " + r.Target
	if err := ExportHTML(f, Compose(r), title, ViewExecutive); err != nil {
		return err
	}
	return nil
}

// Page is the data of the interactive scan page.
type Page struct {
	Title         string
	WebSocketPath string
}

// RenderPage writes the interactive page served by the web surface.
func RenderPage(w io.Writer, page Page) error {
	return execute(w, "index", page)
}
