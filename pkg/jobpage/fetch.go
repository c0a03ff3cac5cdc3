package jobpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"resumetuner/pkg/config"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 5 << 20

// Fetcher downloads job posting pages.
type Fetcher struct {
	client    *http.Client
	userAgent string
	extractor *Extractor
}

func NewFetcher(cfg config.JobPageConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		extractor: NewExtractor(cfg.MinChars),
	}
}

// Fetch returns the HTML of the page at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Wrapf(ErrFetch, "invalid job url %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(ErrFetch, err.Error())
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrFetch, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrap(ErrFetch, fmt.Sprintf("GET %s returned status %d", u.Redacted(), resp.StatusCode))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", errors.Wrap(ErrFetch, err.Error())
	}
	return string(b), nil
}

// Description fetches rawURL and extracts the job description.
func (f *Fetcher) Description(ctx context.Context, rawURL string) (string, error) {
	page, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return f.extractor.Extract(page, rawURL)
}
