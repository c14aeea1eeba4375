package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultSourceURL is the published GOV.UK bank holidays document
	DefaultSourceURL = "https://www.gov.uk/bank-holidays.json"

	defaultTimeout = 10 * time.Second
)

// GovUKSource implements HolidaySource using the GOV.UK bank holidays API
type GovUKSource struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	group      singleflight.Group
}

// NewGovUKSource creates a new GovUKSource instance
func NewGovUKSource(url string, logger *zap.Logger) *GovUKSource {
	if url == "" {
		url = DefaultSourceURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GovUKSource{
		url: url,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Fetch downloads the dataset. Concurrent callers share one request.
func (s *GovUKSource) Fetch() (Dataset, error) {
	v, err, shared := s.group.Do(s.url, func() (interface{}, error) {
		return s.fetch()
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.logger.Debug("Shared in-flight holiday fetch", zap.String("url", s.url))
	}

	return v.(Dataset), nil
}

func (s *GovUKSource) fetch() (Dataset, error) {
	s.logger.Debug("Fetching bank holidays", zap.String("url", s.url))

	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %w", ErrSourceUnavailable, s.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot reach %s: %w", ErrSourceUnavailable, s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d %s",
			ErrSourceStatus, s.url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrSourceUnavailable, err)
	}

	dataset, err := decodeDataset(body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bank holidays fetched",
		zap.String("url", s.url),
		zap.Int("divisions", len(dataset)),
		zap.Int("bytes", len(body)))

	return dataset, nil
}

// decodeDataset parses a bank-holidays.json document
func decodeDataset(data []byte) (Dataset, error) {
	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("%w: failed to parse holiday JSON: %w", ErrParse, err)
	}
	if dataset == nil {
		return nil, fmt.Errorf("%w: empty holiday document", ErrParse)
	}
	return dataset, nil
}
