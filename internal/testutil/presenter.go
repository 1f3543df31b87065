package testutil

import (
	"sync"

	"exposure/pkg/controller"
	"exposure/pkg/reports"
)

// Call is one recorded presenter invocation.
type Call struct {
	Method string
	Arg    any
}

// RecordingPresenter records every call a controller makes.
type RecordingPresenter struct {
	mu        sync.Mutex
	calls     []Call
	executive *reports.ExecutiveDocument
	technical *reports.TechnicalDocument
}

func (p *RecordingPresenter) record(method string, arg any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Method: method, Arg: arg})
}

func (p *RecordingPresenter) ShowLoading(show bool) { p.record("ShowLoading", show) }

func (p *RecordingPresenter) ShowResults(show bool) { p.record("ShowResults", show) }

func (p *RecordingPresenter) Populate(executive *reports.ExecutiveDocument, technical *reports.TechnicalDocument) {
	p.mu.Lock()
	p.executive, p.technical = executive, technical
	p.mu.Unlock()
	p.record("Populate", nil)
}

func (p *RecordingPresenter) Activate(view reports.View) { p.record("Activate", view) }

func (p *RecordingPresenter) ScrollToResults() { p.record("ScrollToResults", nil) }

func (p *RecordingPresenter) Notify(n controller.Notice) { p.record("Notify", n) }

// Calls returns a copy of the recorded calls.
func (p *RecordingPresenter) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Methods returns the recorded method names in order.
func (p *RecordingPresenter) Methods() []string {
	calls := p.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method)
	}
	return out
}

// Notices returns the notices received so far.
func (p *RecordingPresenter) Notices() []controller.Notice {
	var out []controller.Notice
	for _, c := range p.Calls() {
		if n, ok := c.Arg.(controller.Notice); ok {
			out = append(out, n)
		}
	}
	return out
}

// Documents returns the last populated documents.
func (p *RecordingPresenter) Documents() (*reports.ExecutiveDocument, *reports.TechnicalDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.executive, p.technical
}

// Reset forgets the recorded calls.
func (p *RecordingPresenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}
