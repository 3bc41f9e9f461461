// Package fetcher performs the crawler's outbound HTTP GETs. A Fetcher is the
// only component that touches the network; PoliteFetcher adds per-worker
// request spacing on top of it.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// Fetcher issues single, non-retried GET requests with a fixed header set.
type Fetcher struct {
	httpClient *http.Client
	cfg        Config
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient uses a copy of c, so the configured request timeout never
// changes the caller's client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		clone := *c
		f.httpClient = &clone
	}
}

// New creates a Fetcher.
func New(cfg Config, opts ...Option) *Fetcher {
	cfg = cfg.WithDefaults()
	f := &Fetcher{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.httpClient.Timeout = cfg.RequestTimeout
	return f
}

// Fetch GETs rawURL and returns the body. Only HTTP 200 is a success; every
// other outcome is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}
	f.setHeaders(req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.cfg.MaxBodySize))
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize+1))
	if err != nil {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(body)) > f.cfg.MaxBodySize {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: ErrBodyTooLarge}
	}

	return body, nil
}

// setHeaders applies the configured header set. User-Agent is always present.
func (f *Fetcher) setHeaders(req *http.Request) {
	for k, v := range f.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
}

// Polite returns a fetcher handle with its own politeness limiter. Each
// worker should own exactly one.
func (f *Fetcher) Polite() *PoliteFetcher {
	limit := rate.Inf
	if f.cfg.PolitenessDelay > 0 {
		limit = rate.Every(f.cfg.PolitenessDelay)
	}
	return &PoliteFetcher{
		fetcher: f,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// PoliteFetcher spaces consecutive requests by at least the politeness delay.
type PoliteFetcher struct {
	fetcher *Fetcher
	limiter *rate.Limiter
}

// Fetch waits for the politeness delay, then fetches rawURL. Cancelling ctx
// aborts the wait; once the request has been issued it is bounded only by the
// request timeout so in-flight fetches can finish during shutdown.
func (p *PoliteFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("politeness wait: %w", err)
	}
	return p.fetcher.Fetch(context.WithoutCancel(ctx), rawURL)
}
