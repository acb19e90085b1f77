package etherscan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport performs the single GET a fetch needs and returns the body text.
type Transport interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, url string) (string, error)

func (f TransportFunc) FetchText(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// MaxBodyBytes caps the response body HTTPTransport will read.
const MaxBodyBytes = 64 << 20

// HTTPTransport is the net/http Transport. It makes one attempt per call; a
// non-200 status or a body over the size cap is an error.
type HTTPTransport struct {
	httpClient *http.Client
	maxBody    int64
}

// NewHTTPTransport returns a transport whose requests time out after timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{httpClient: &http.Client{Timeout: timeout}, maxBody: MaxBodyBytes}
}

func (t *HTTPTransport) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > t.maxBody {
		return "", fmt.Errorf("response body exceeds %d bytes", t.maxBody)
	}
	return string(body), nil
}
