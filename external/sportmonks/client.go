package sportmonks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v5"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/football-standings/internal/platform/logging"
	"github.com/riskibarqy/football-standings/internal/platform/resilience"
	"github.com/riskibarqy/football-standings/internal/usecase"
)

const (
	defaultBaseURL         = "https://api.sportmonks.com/v3/football"
	defaultTimeout         = 20 * time.Second
	defaultRetryInterval   = time.Second
	defaultIncludeStanding = "participant;details.type"
	maxResponseBodySize    = 6 << 20
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errTransient = crerr.New("sportmonks transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryInterval  time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads live league tables from SportMonks v3.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	maxRetries    int
	retryInterval time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}
	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		token:         strings.TrimSpace(cfg.Token),
		maxRetries:    max(cfg.MaxRetries, 0),
		retryInterval: retryInterval,
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// FetchStandings takes a SportMonks league id as the competition code.
func (c *Client) FetchStandings(ctx context.Context, competitionCode string) ([]usecase.ExternalStanding, error) {
	leagueID, err := strconv.ParseInt(strings.TrimSpace(competitionCode), 10, 64)
	if err != nil || leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be a positive integer, got %q", usecase.ErrInvalidInput, competitionCode)
	}

	path := fmt.Sprintf("/standings/live/leagues/%d", leagueID)
	var envelope standingsEnvelope
	raw, err := c.doJSON(ctx, path, map[string]string{"include": defaultIncludeStanding}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch live standings league_id=%d: %w", leagueID, err)
	}

	rows := parseStandingsPayload(raw, envelope.Data)
	out := make([]usecase.ExternalStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ExternalStanding)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)
	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, crerr.Wrap(err, "decode provider payload")
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval

	raw, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.send(ctx, fullURL)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(c.maxRetries+1)))
	if err != nil {
		c.logger.WarnContext(ctx, "sportmonks request failed",
			"url", redactAPIURL(fullURL),
			"error", sanitizeSensitiveText(err.Error(), c.token),
		)
		return nil, err
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, backoff.Permanent(crerr.Wrap(err, "build request"))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return raw, nil
	}

	statusErr := crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	if isRetryableStatus(resp.StatusCode) {
		return nil, crerr.Mark(statusErr, errTransient)
	}
	return nil, backoff.Permanent(statusErr)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
