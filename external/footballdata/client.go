package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v5"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/football-standings/internal/platform/logging"
	"github.com/riskibarqy/football-standings/internal/platform/resilience"
	"github.com/riskibarqy/football-standings/internal/usecase"
)

const (
	defaultBaseURL       = "https://api.football-data.org/v4"
	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
	maxResponseBodySize  = 4 << 20
	tableTypeTotal       = "TOTAL"
)

var errTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryInterval  time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads competition tables from the football-data.org v4 API.
type Client struct {
	http          *fasthttp.Client
	baseURL       string
	token         string
	timeout       time.Duration
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

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
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
		http: &fasthttp.Client{
			Name:                "football-standings",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		},
		baseURL:       baseURL,
		token:         strings.TrimSpace(cfg.Token),
		timeout:       timeout,
		maxRetries:    max(cfg.MaxRetries, 0),
		retryInterval: retryInterval,
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// FetchStandings returns the TOTAL table of the competition's current season.
func (c *Client) FetchStandings(ctx context.Context, competitionCode string) ([]usecase.ExternalStanding, error) {
	code := strings.ToUpper(strings.TrimSpace(competitionCode))
	if code == "" {
		return nil, fmt.Errorf("%w: competition code is required", usecase.ErrInvalidInput)
	}

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/competitions/"+url.PathEscape(code)+"/standings", &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings competition=%s: %w", code, err)
	}

	return parseStandings(envelope), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path

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
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: standings provider is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval

	raw, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.send(ctx, fullURL)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(c.maxRetries+1)))
	if err != nil {
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", err)
		return nil, err
	}
	return raw, nil
}

// send performs one GET. Retryable failures are marked transient; anything
// else is wrapped as permanent so the retry loop stops.
func (c *Client) send(ctx context.Context, fullURL string) ([]byte, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, backoff.Permanent(context.DeadlineExceeded)
		}
		timeout = min(timeout, remaining)
	}
	if err := ctx.Err(); err != nil {
		return nil, backoff.Permanent(err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), errTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return body, nil
	}

	statusErr := crerr.Newf("provider status=%d message=%s", status, providerMessage(body))
	if isRetryableStatus(status) {
		return nil, crerr.Mark(statusErr, errTransient)
	}
	return nil, backoff.Permanent(statusErr)
}

func parseStandings(envelope standingsEnvelope) []usecase.ExternalStanding {
	table := selectTotalTable(envelope.Standings)
	updatedAt := parseProviderTime(envelope.Competition.LastUpdated)

	out := make([]usecase.ExternalStanding, 0, len(table))
	for _, row := range table {
		out = append(out, usecase.ExternalStanding{
			TeamName:        teamDisplayName(row.Team),
			Position:        row.Position,
			Played:          row.PlayedGames,
			Won:             row.Won,
			Draw:            row.Draw,
			Lost:            row.Lost,
			GoalsFor:        row.GoalsFor,
			GoalsAgainst:    row.GoalsAgainst,
			GoalDifference:  row.GoalDifference,
			Points:          row.Points,
			SourceUpdatedAt: updatedAt,
		})
	}
	return out
}

func selectTotalTable(groups []standingGroup) []tableRow {
	for _, group := range groups {
		if strings.EqualFold(group.Type, tableTypeTotal) {
			return group.Table
		}
	}
	if len(groups) > 0 {
		return groups[0].Table
	}
	return nil
}

func teamDisplayName(t team) string {
	if name := strings.TrimSpace(t.ShortName); name != "" {
		return name
	}
	return strings.TrimSpace(t.Name)
}

func parseProviderTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}

func providerMessage(body []byte) string {
	var envelope errorEnvelope
	if err := sonic.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
		return envelope.Message
	}
	return abbreviateBody(body)
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
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
