// Package console is the terminal surface driven by a scan controller.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"exposure/pkg/controller"
	"exposure/pkg/reports"
)

// Presenter prints controller output to a terminal.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer

	// View restricts printed results to one view; "" prints both.
	View reports.View
	// Quiet suppresses the result tables; notices are still printed.
	Quiet bool

	visible bool
	active  reports.View
	report  reports.Report
	notices []controller.Notice
}

func NewPresenter(out, errOut io.Writer, view reports.View, quiet bool) *Presenter {
	return &Presenter{
		out:    out,
		err:    errOut,
		View:   view,
		Quiet:  quiet,
		active: reports.ViewExecutive,
	}
}

func (p *Presenter) ShowLoading(show bool) {
	if !show || p.Quiet {
		return
	}
	color.New(color.FgCyan).Fprintln(p.err, "Scanning, this can take a few minutes...")
}

func (p *Presenter) ShowResults(show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = show
}

func (p *Presenter) Populate(executive *reports.ExecutiveDocument, technical *reports.TechnicalDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.report = reports.Report{Executive: executive, Technical: technical}
}

func (p *Presenter) Activate(view reports.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = view
}

// ScrollToResults prints the populated documents once they are visible.
func (p *Presenter) ScrollToResults() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Quiet || !p.visible || p.report.Executive == nil {
		return
	}
	fmt.Fprintln(p.out)
	reports.PrintReport(p.out, p.report, p.View)
}

func (p *Presenter) Notify(n controller.Notice) {
	p.mu.Lock()
	p.notices = append(p.notices, n)
	p.mu.Unlock()

	switch n.Kind {
	case controller.NoticeValidation:
		color.New(color.FgYellow).Fprintf(p.err, "[WARN] %s\n", n.Message)
	default:
		color.New(color.FgHiRed).Fprintf(p.err, "[ERROR] %s\n", n.Message)
	}
}

// Notices returns every notice shown so far.
func (p *Presenter) Notices() []controller.Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]controller.Notice(nil), p.notices...)
}

// ActiveView is the view last selected by the controller.
func (p *Presenter) ActiveView() reports.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
