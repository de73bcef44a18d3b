package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"dlpick/internal/domain"
	"dlpick/internal/logging"
)

// maxManifestSize caps how much of a response body is read
const maxManifestSize = 16 << 20

// retryLogger implements the retryablehttp.LeveledLogger interface
type retryLogger struct {
	log *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

// HTTPSource fetches a JSON manifest from a URL
type HTTPSource struct {
	url    string
	client *retryablehttp.Client
}

// NewHTTPSource creates a source for url with retryMax retries
func NewHTTPSource(url string, retryMax int, log *logging.Logger) *HTTPSource {
	if log == nil {
		log = logging.Nop()
	}

	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = &retryLogger{log: log.With("http-source")}

	return &HTTPSource{url: url, client: client}
}

// Name returns the manifest URL
func (s *HTTPSource) Name() string {
	return s.url
}

// Load fetches and decodes the manifest
func (s *HTTPSource) Load(ctx context.Context) ([]domain.Item, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch manifest: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return DecodeJSON(data)
}
