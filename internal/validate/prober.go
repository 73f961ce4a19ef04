package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ctconn/pkg/logging"
)

// HTTPProber checks that a host answers HTTPS requests.
//
// A successful probe only proves that something is listening; it does not
// prove the host runs the expected service.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober using client, or http.DefaultClient when nil.
func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProber{client: client}
}

// ProbeURL returns the liveness probe URL for host.
func ProbeURL(host string) string {
	return fmt.Sprintf("https://%s/", host)
}

// Reachable issues GET https://{host}/ and reports whether a 2xx response came back.
// Transport failures and non-2xx responses are both reported as unreachable.
func (p *HTTPProber) Reachable(ctx context.Context, host string) bool {
	if host == "" || strings.ContainsAny(host, "/ \t") {
		logging.Debug("Validate", "Rejecting malformed host %q without probing", host)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ProbeURL(host), nil)
	if err != nil {
		logging.Debug("Validate", "Invalid probe URL for host %q: %v", host, err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		logging.Debug("Validate", "Probe of %s failed: %v", host, err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	logging.Debug("Validate", "Probe of %s returned status %d", host, resp.StatusCode)
	return ok
}
