package httphealth

import (
	"context"
	"net/http"
	"time"
)

const defaultProbeTimeout = 500 * time.Millisecond

// Prober issues short-timeout GETs against the backend health endpoint.
type Prober struct {
	url    string
	client *http.Client
}

func NewProber(url string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the health endpoint answered 200 within the probe
// timeout. Network errors and non-200 responses both mean "not ready yet".
func (p *Prober) Ready(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
