package nodeindex

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/schollz/progressbar/v3"
)

// DefaultIndexURL is the canonical release index feed.
const DefaultIndexURL = "https://nodejs.org/dist/index.json"

// DefaultHTTPTimeout is the default timeout for index requests.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource fetches the release index over HTTP.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	progress   bool
}

// NewHTTPSource creates a Source that fetches the index from url, or the
// canonical feed when url is empty.
func NewHTTPSource(url string) *HTTPSource {
	if url == "" {
		url = DefaultIndexURL
	}
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}

// NewHTTPSourceWithClient creates an HTTPSource with a custom HTTP client.
// This is useful for testing or custom timeout/transport configuration.
func NewHTTPSourceWithClient(url string, client *http.Client) *HTTPSource {
	if url == "" {
		url = DefaultIndexURL
	}
	return &HTTPSource{url: url, httpClient: client}
}

// ShowProgress enables a terminal progress bar while the feed downloads.
func (s *HTTPSource) ShowProgress(on bool) { s.progress = on }

// Releases fetches and decodes the release index.
func (s *HTTPSource) Releases(ctx context.Context) ([]Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building index request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching release index")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("fetching release index: HTTP %d", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if s.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "fetching release index")
		body = io.TeeReader(body, bar)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "reading release index")
	}

	return parseIndex(data), nil
}
