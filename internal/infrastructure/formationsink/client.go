package formationsink

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/platform/logging"
	"github.com/riskibarqy/formation-editor/internal/platform/resilience"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBodySize = 1 << 20
)

var errSinkTransient = crerr.New("formation sink transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client forwards saved formations to the legacy save endpoint.
type Client struct {
	httpClient   *fasthttp.Client
	url          string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

// payload is the body the legacy endpoint accepts.
type payload struct {
	TeamID        string            `json:"team_id"`
	FormationType string            `json:"formation_type"`
	Positions     map[string]string `json:"positions"`
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func NewClient(cfg ClientConfig) (*Client, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed == nil {
		return nil, fmt.Errorf("invalid formation sink url: %q", rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("formation sink url must use http or https")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("formation sink url host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "formation-editor",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	client := &Client{
		httpClient:   httpClient,
		url:          parsed.String(),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logging.OrDefault(cfg.Logger).Named("formation_sink"),
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
	client.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		client.logger.Warn("formation sink circuit state changed", "from", string(from), "to", string(to))
	})

	return client, nil
}

// Publish posts snapshot and returns the sink verdict. An error means the
// sink could not be reached or answered with something other than a verdict.
func (c *Client) Publish(ctx context.Context, snapshot formation.Snapshot) (formation.PublishResult, error) {
	body := payload{
		TeamID:        snapshot.TeamID,
		FormationType: snapshot.TemplateName,
		Positions:     make(map[string]string, len(snapshot.Positions)),
	}
	for _, item := range snapshot.Positions {
		if item.PlayerID.IsZero() {
			continue
		}
		body.Positions[item.SlotID] = item.PlayerID.String()
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(body); err != nil {
		return formation.PublishResult{}, fmt.Errorf("encode formation sink payload: %w", err)
	}

	var result response
	err := c.breaker.Do(func() error {
		var sendErr error
		result, sendErr = c.send(ctx, buf.B)
		return sendErr
	}, isTransient)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			return formation.PublishResult{}, fmt.Errorf("formation sink: %w", err)
		}
		c.logger.WarnContext(ctx, "formation sink request failed", "team_id", snapshot.TeamID, "error", err)
		return formation.PublishResult{}, err
	}

	return formation.PublishResult{Success: result.Success, Error: result.Error}, nil
}

func (c *Client) send(ctx context.Context, body []byte) (response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return response{}, err
		}

		result, done, err := c.attempt(ctx, body)
		if done {
			return result, err
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return response{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("formation sink request failed")
	}
	return response{}, lastErr
}

// attempt performs one request. done is false when the failure is worth retrying.
func (c *Client) attempt(ctx context.Context, body []byte) (response, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBody(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return response{}, true, context.DeadlineExceeded
	}

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return response{}, false, fmt.Errorf("%w: send request: %v", errSinkTransient, err)
	}

	status := resp.StatusCode()
	raw := resp.Body()
	if isRetryableStatus(status) {
		return response{}, false, fmt.Errorf("%w: sink status=%d body=%s", errSinkTransient, status, abbreviateBody(raw))
	}

	var decoded response
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return response{}, true, fmt.Errorf("decode formation sink response status=%d body=%s: %w", status, abbreviateBody(raw), err)
	}
	if status < 200 || status >= 300 {
		// A rejection with a verdict body is still a verdict.
		if !decoded.Success && decoded.Error != "" {
			return decoded, true, nil
		}
		return response{}, true, fmt.Errorf("sink status=%d body=%s", status, abbreviateBody(raw))
	}

	return decoded, true, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errSinkTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusRequestTimeout || code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
