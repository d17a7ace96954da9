// v1
// internal/breaker/http.go
package breaker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient wraps a standard http.Client with breaker gating. The probe hits
// the coordinator health endpoint before traffic resumes.
type HTTPClient struct {
	Client *http.Client
	brk    *Breaker
}

func NewHTTPClient(name string, cfg Config, probeURL string, httpClient *http.Client, lg *slog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	probe := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
		if err != nil {
			return err
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.CopyN(io.Discard, resp.Body, 64)
		if resp.StatusCode >= 200 && resp.StatusCode < 500 {
			return nil
		}
		return fmt.Errorf("probe bad status: %d", resp.StatusCode)
	}
	return &HTTPClient{Client: httpClient, brk: New(name, cfg, lg, probe)}
}

// Do executes the request under the breaker.
func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := h.brk.Execute(req.Context(), func(ctx context.Context) error {
		r, err := h.Client.Do(req.WithContext(ctx))
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	return resp, err
}

// State exposes the underlying breaker position for status reporting.
func (h *HTTPClient) State() State { return h.brk.State() }
