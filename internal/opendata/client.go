// Package opendata fetches the school directory and SAT results from the open data API.
package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/huangsam/satscout/core/algo"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"
	"go.uber.org/zap"
)

// ErrUnexpectedStatus is returned when the API answers with anything but 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client implements the SchoolsClient interface over HTTP.
type Client struct {
	http         *http.Client
	directoryURL string
	scoresURL    string
	logger       *zap.Logger
}

var _ contract.SchoolsClient = &Client{} // Compile-time check

// NewClient creates a client for the given endpoints. A zero timeout leaves requests
// bounded only by the caller's context. A nil logger disables logging.
func NewClient(directoryURL, scoresURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		directoryURL: directoryURL,
		scoresURL:    scoresURL,
		logger:       logger,
	}
}

// NewClientFromConfig creates a client from the validated configuration.
func NewClientFromConfig(cfg *contract.Config, logger *zap.Logger) *Client {
	return NewClient(cfg.DirectoryURL, cfg.ScoresURL, cfg.Timeout, logger)
}

// FetchSchools returns the school directory, or an empty list if the fetch failed for any reason.
func (c *Client) FetchSchools(ctx context.Context) []schema.School {
	schools, _ := c.FetchSchoolsOutcome(ctx)
	return schools
}

// FetchSchoolsOutcome implements the SchoolsClient interface.
func (c *Client) FetchSchoolsOutcome(ctx context.Context) ([]schema.School, schema.FetchOutcome) {
	var schools []schema.School
	if err := c.getJSON(ctx, c.directoryURL, &schools); err != nil {
		c.logger.Debug("Directory fetch failed", zap.String("url", c.directoryURL), zap.Error(err))
		return []schema.School{}, failed(err)
	}
	c.logger.Debug("Directory fetched", zap.Int("schools", len(schools)))
	if len(schools) == 0 {
		return []schema.School{}, schema.FetchOutcome{Status: schema.FetchEmpty}
	}
	return schools, schema.FetchOutcome{Status: schema.FetchOK}
}

// FetchScore returns the classified score for a school. The second return value is false
// when the API has no record for the school or the fetch failed for any reason.
func (c *Client) FetchScore(ctx context.Context, dbn string) (*schema.Score, bool) {
	score, outcome := c.FetchScoreOutcome(ctx, dbn)
	return score, outcome.OK()
}

// FetchScoreOutcome implements the SchoolsClient interface.
func (c *Client) FetchScoreOutcome(ctx context.Context, dbn string) (*schema.Score, schema.FetchOutcome) {
	endpoint, err := withQuery(c.scoresURL, "dbn", dbn)
	if err != nil {
		return nil, failed(err)
	}

	var rows []schema.RawScore
	if err := c.getJSON(ctx, endpoint, &rows); err != nil {
		c.logger.Debug("Score fetch failed", zap.String("dbn", dbn), zap.Error(err))
		return nil, failed(err)
	}
	if len(rows) == 0 {
		c.logger.Debug("No score record", zap.String("dbn", dbn))
		return nil, schema.FetchOutcome{Status: schema.FetchEmpty}
	}

	score := algo.ClassifyRaw(rows[0])
	if score.DBN == "" {
		score.DBN = dbn
	}
	c.logger.Debug("Score fetched", zap.String("dbn", dbn), zap.Int("test_takers", score.TestTakers))
	return score, schema.FetchOutcome{Status: schema.FetchOK}
}

// getJSON issues a GET request and decodes a 200 response body into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// withQuery returns base with key=value merged into its query string.
func withQuery(base, key, value string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", base, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func failed(err error) schema.FetchOutcome {
	return schema.FetchOutcome{Status: schema.FetchFailed, Reason: err.Error()}
}
