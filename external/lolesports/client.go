package lolesports

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/resilience"
	"github.com/riskibarqy/esports-sync/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL          = "https://esports-api.lolesports.com/persisted/gw"
	defaultLiveStatsBaseURL = "https://feed.lolesports.com/livestats/v1"
	defaultLocale           = "en-US"
	defaultOrigin           = "https://lolesports.com"
	maxResponseBytes        = 8 << 20
)

var errFeedTransient = crerr.New("esports feed transient failure")

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	LiveStatsBaseURL   string
	APIKey             string
	Locale             string
	Origin             string
	Timeout            time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
}

// Client talks to the lolesports persisted gateway and live stats feed.
// It performs exactly one HTTP call per request; retries belong to the job harness.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	liveStatsBaseURL string
	apiKey           string
	locale           string
	origin           string
	logger           *logging.Logger
	limiter          *rate.Limiter
	breaker          *resilience.CircuitBreaker
	flight           singleflight.Group
	validate         *validator.Validate
	now              func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	limit := rate.Inf
	burst := cfg.RateLimitBurst
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	logger = logger.Named("lolesports")
	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("esports feed circuit breaker state changed", "from", from, "to", to)
	}

	return &Client{
		httpClient:       httpClient,
		baseURL:          trimBaseURL(cfg.BaseURL, defaultBaseURL),
		liveStatsBaseURL: trimBaseURL(cfg.LiveStatsBaseURL, defaultLiveStatsBaseURL),
		apiKey:           strings.TrimSpace(cfg.APIKey),
		locale:           firstNonEmpty(cfg.Locale, defaultLocale),
		origin:           strings.TrimRight(firstNonEmpty(cfg.Origin, defaultOrigin), "/"),
		logger:           logger,
		limiter:          rate.NewLimiter(limit, burst),
		breaker:          resilience.NewCircuitBreaker(breakerCfg),
		validate:         validator.New(),
		now:              time.Now,
	}
}

// request is one endpoint call with the statuses it accepts. 200 is always
// accepted; NoContentOK adds 204 as an empty result.
type request struct {
	url         string
	noContentOK bool
}

func (r request) accepted() []int {
	if r.noContentOK {
		return []int{http.StatusOK, http.StatusNoContent}
	}
	return []int{http.StatusOK}
}

func (c *Client) gatewayRequest(path string, query url.Values) request {
	if query == nil {
		query = url.Values{}
	}
	query.Set("hl", c.locale)
	return request{url: c.baseURL + path + "?" + query.Encode()}
}

func (c *Client) liveStatsRequest(path string, query url.Values) request {
	full := c.liveStatsBaseURL + path
	if encoded := query.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return request{url: full, noContentOK: true}
}

// doJSON decodes the response into target. It reports false when the
// endpoint answered with an accepted empty status.
func (c *Client) doJSON(ctx context.Context, req request, target any) (bool, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "esports feed circuit breaker rejected request", "state", c.breaker.State())
		return false, fmt.Errorf("%w: esports feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	out, err, _ := c.flight.Do(req.url, func() (any, error) {
		raw, reqErr := c.makeRequest(ctx, req)
		if reqErr != nil && isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return false, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", out)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("%w: decode feed payload url=%s: %v", usecase.ErrMalformedPayload, req.url, err)
	}
	return true, nil
}

// makeRequest issues a single GET and classifies the status. A nil body with
// a nil error is the accepted no-content answer.
func (c *Client) makeRequest(ctx context.Context, req request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for feed rate limiter: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Origin", c.origin)
	httpReq.Header.Set("Referer", c.origin+"/")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request url=%s: %v", errFeedTransient, req.url, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, fmt.Errorf("%w: read response body url=%s: %v", errFeedTransient, req.url, err)
	}

	accepted := req.accepted()
	if !slices.Contains(accepted, resp.StatusCode) {
		statusErr := &UnexpectedStatusError{
			Expected: accepted,
			Actual:   resp.StatusCode,
			URL:      req.url,
			Body:     abbreviateBody(buf.B),
		}
		c.logger.WarnContext(ctx, "esports feed returned unexpected status",
			"url", req.url,
			"status", resp.StatusCode,
			"body", statusErr.Body,
		)
		return nil, statusErr
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	return append([]byte(nil), buf.B...), nil
}

func trimBaseURL(raw, fallback string) string {
	value := strings.TrimRight(strings.TrimSpace(raw), "/")
	if value == "" {
		return fallback
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 240 {
		return text[:240] + "..."
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
