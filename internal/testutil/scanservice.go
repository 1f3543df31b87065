package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"exposure/pkg/entity"
)

// ScannerFunc adapts a function to the controller's Scanner interface.
type ScannerFunc func(ctx context.Context, target string) (*entity.ScanReport, error)

func (f ScannerFunc) Scan(ctx context.Context, target string) (*entity.ScanReport, error) {
	return f(ctx, target)
}

// ScanService is a fake scan API answering POST /api/scan with a fixed
// status and body.
type ScanService struct {
	*httptest.Server

	mu      sync.Mutex
	targets []string
}

// NewScanService starts a fake scan API closed at the end of the test.
func NewScanService(t testing.TB, status int, body string) *ScanService {
	t.Helper()

	s := &ScanService{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Target string `json:"target"`
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}

		s.mu.Lock()
		s.targets = append(s.targets, req.Target)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Targets returns the targets received so far.
func (s *ScanService) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.targets...)
}
