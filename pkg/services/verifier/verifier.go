// Package verifier performs the post-deployment reachability check. The
// check is advisory: a fresh distribution can take minutes to propagate, so
// failures are reported but never fail the run.
package verifier

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds the single verification request.
const DefaultTimeout = 30 * time.Second

type VerifierI interface {
	Verify(ctx context.Context, url string) error
}

// Doer is the slice of http.Client the verifier needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPVerifier issues one GET against the site URL.
type HTTPVerifier struct {
	Client  Doer
	Timeout time.Duration
}

func NewHTTPVerifier() *HTTPVerifier {
	return &HTTPVerifier{
		Client:  &http.Client{},
		Timeout: DefaultTimeout,
	}
}

// Verify fetches the URL and reports a non-200 status or transport failure
// as an error. The caller decides how severe that is.
func (v *HTTPVerifier) Verify(ctx context.Context, url string) error {
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build verification request for %s: %w", url, err)
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		return fmt.Errorf("verification request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verification of %s returned HTTP %d", url, resp.StatusCode)
	}
	return nil
}
