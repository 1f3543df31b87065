package controller

import (
	"exposure/pkg/reports"
)

// NoticeKind distinguishes input problems from scan failures.
type NoticeKind string

const (
	NoticeValidation NoticeKind = "validation"
	NoticeError      NoticeKind = "error"
)

// Notice is a message the user has to acknowledge.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Presenter is the surface a controller drives. Calls are made while the
// controller holds its lock, so implementations must not call back into
// the controller synchronously.
type Presenter interface {
	ShowLoading(show bool)
	ShowResults(show bool)
	Populate(executive *reports.ExecutiveDocument, technical *reports.TechnicalDocument)
	Activate(view reports.View)
	ScrollToResults()
	Notify(n Notice)
}
