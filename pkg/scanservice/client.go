// Package scanservice talks to the external scan API.
package scanservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"

	"exposure/pkg/apperrors"
	"exposure/pkg/entity"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client submits scans to POST <baseURL>/api/scan.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type scanRequest struct {
	Target string `json:"target"`
}

// errorBody matches the error payloads of the scan API.
type errorBody struct {
	Detail any    `json:"detail"`
	Error  string `json:"error"`
}

// NewClient creates a client whose requests time out after timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Scan requests a scan of target and decodes the returned report.
func (c *Client) Scan(ctx context.Context, target string) (*entity.ScanReport, error) {
	payload, err := json.Marshal(scanRequest{Target: target})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode scan request", err)
	}

	url := c.baseURL + "/api/scan"
	gologger.Debug().Msgf("Requesting scan of %s at %s", target, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create HTTP request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.Classify(ctx.Err())
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, apperrors.NewTransportError("request timed out", err)
		}
		return nil, apperrors.NewTransportError("failed to send scan request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	report, err := entity.DecodeReport(resp.Body)
	if err != nil {
		return nil, err
	}

	gologger.Debug().Msgf("Scan of %s answered in %v", target, time.Since(start).Round(time.Millisecond))
	return report, nil
}

func statusError(resp *http.Response) error {
	msg := fmt.Sprintf("HTTP error: %d", resp.StatusCode)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch detail := body.Detail.(type) {
		case string:
			if detail != "" {
				msg += " (" + detail + ")"
			}
		case nil:
			if body.Error != "" {
				msg += " (" + body.Error + ")"
			}
		default:
			if b, err := json.Marshal(detail); err == nil {
				msg += " (" + string(b) + ")"
			}
		}
	}

	return apperrors.NewTransportError(msg, nil)
}

// Health asks the scan API whether it is up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return apperrors.NewInternalError("failed to create HTTP request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError("scan service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}
