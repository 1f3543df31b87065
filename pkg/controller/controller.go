// Package controller drives the scan submission cycle and the view switcher.
package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/projectdiscovery/gologger"

	"exposure/pkg/apperrors"
	"exposure/pkg/entity"
	"exposure/pkg/reports"
)

// State of the submission cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	// StateFailure behaves like StateIdle: results stay hidden and the next
	// submit starts a new cycle. It only records that LastError is set.
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Scanner performs a scan for one target.
type Scanner interface {
	Scan(ctx context.Context, target string) (*entity.ScanReport, error)
}

// Controller owns the current report and serialises every transition.
type Controller struct {
	mu        sync.Mutex
	scanner   Scanner
	presenter Presenter
	messages  Messages

	state   State
	view    reports.View
	current *entity.ScanReport
	lastErr *apperrors.AppError

	// gen identifies the latest submission; responses carrying an older
	// value are dropped.
	gen    uint64
	cancel context.CancelFunc

	ctx      context.Context
	shutdown context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

// Option customises a Controller.
type Option func(*Controller)

// WithLocale selects the message catalog.
func WithLocale(locale string) Option {
	return func(c *Controller) {
		c.messages = MessagesFor(locale)
	}
}

// WithContext sets the parent context of every scan request.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// New creates an idle controller with the executive view selected.
func New(scanner Scanner, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		scanner:   scanner,
		presenter: presenter,
		messages:  MessagesFor(DefaultLocale),
		state:     StateIdle,
		view:      reports.ViewExecutive,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.shutdown = context.WithCancel(c.ctx)
	return c
}

// Submit starts a scan of target and returns its generation. The request
// runs in the background and re-enters through ResponseOK or ResponseFailed.
// An empty target only produces a validation notice.
func (c *Controller) Submit(target string) (uint64, error) {
	target = strings.TrimSpace(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, apperrors.NewInternalError("controller is closed", nil)
	}

	if target == "" {
		c.presenter.Notify(Notice{Kind: NoticeValidation, Message: c.messages.MissingTarget})
		return 0, apperrors.NewValidationError("target", "target is required")
	}

	if c.cancel != nil {
		gologger.Debug().Msgf("Superseding scan generation %d", c.gen)
		c.cancel()
	}

	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.lastErr = nil

	c.presenter.ShowLoading(true)
	c.presenter.ShowResults(false)

	gologger.Info().Msgf("Submitting scan of %s (generation %d)", target, gen)

	c.wg.Add(1)
	go c.run(ctx, gen, target)

	return gen, nil
}

func (c *Controller) run(ctx context.Context, gen uint64, target string) {
	defer c.wg.Done()

	report, err := c.scanner.Scan(ctx, target)
	if err != nil {
		c.ResponseFailed(gen, err)
		return
	}
	c.ResponseOK(gen, report)
}

// accepts reports whether a response for gen may still be applied.
// Callers hold c.mu.
func (c *Controller) accepts(gen uint64) bool {
	if c.closed || gen != c.gen || c.state != StateLoading {
		gologger.Debug().Msgf("Dropping response for generation %d (latest %d, state %s)", gen, c.gen, c.state)
		return false
	}
	return true
}

func (c *Controller) releaseRequest() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// ResponseOK applies a successful scan result. It returns false when the
// response belongs to a superseded submission.
func (c *Controller) ResponseOK(gen uint64, report *entity.ScanReport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.accepts(gen) {
		return false
	}
	if report == nil {
		c.fail(apperrors.NewMalformedError("scan service returned an empty report", nil))
		return true
	}

	c.releaseRequest()
	rep := reports.Compose(report)
	c.current = report
	c.state = StateSuccess

	c.presenter.ShowLoading(false)
	c.presenter.Populate(rep.Executive, rep.Technical)
	c.presenter.ShowResults(true)
	c.activate(reports.ViewExecutive)
	c.presenter.ScrollToResults()

	gologger.Info().Msgf("Scan of %s completed with score %d (%s)",
		report.Target, report.RiskScore.TotalScore, report.RiskScore.RiskLevel)
	if rep.Technical.FindingsMismatch() {
		gologger.Warning().Msgf("Declared total findings %d differs from %d listed findings",
			rep.Technical.TotalFindings, rep.Technical.CountedFindings)
	}
	return true
}

// ResponseFailed applies a failed scan. It returns false when the response
// belongs to a superseded submission.
func (c *Controller) ResponseFailed(gen uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.accepts(gen) {
		return false
	}
	c.fail(err)
	return true
}

func (c *Controller) fail(err error) {
	if err == nil {
		err = apperrors.NewInternalError("scan failed without a cause", nil)
	}
	c.releaseRequest()
	appErr := apperrors.Classify(err)
	c.lastErr = appErr
	c.state = StateFailure

	c.presenter.ShowLoading(false)
	c.presenter.Notify(Notice{Kind: NoticeError, Message: c.messages.ScanFailed(appErr.Cause())})

	gologger.Error().Msgf("Scan failed: %v", appErr)
}

// SwitchView makes view the visible one. Selecting the active view does
// nothing.
func (c *Controller) SwitchView(view reports.View) error {
	if view != reports.ViewExecutive && view != reports.ViewTechnical {
		return apperrors.NewValidationError("view", "unknown view "+string(view))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if view == c.view {
		return nil
	}
	c.activate(view)
	return nil
}

func (c *Controller) activate(view reports.View) {
	c.view = view
	c.presenter.Activate(view)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) ActiveView() reports.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Current returns the last successfully received report, or nil.
func (c *Controller) Current() *entity.ScanReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LastError returns the cause of the latest failure, cleared on submit.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr == nil {
		return nil
	}
	return c.lastErr
}

func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Wait blocks until every dispatched request has re-entered the controller.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels any in-flight request; its response is dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.releaseRequest()
	c.mu.Unlock()

	c.shutdown()
}
