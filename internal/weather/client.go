package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raphi011/weather/internal/log"
)

const (
	// DefaultBaseURL is the weatherapi.com v1 API root.
	DefaultBaseURL = "http://api.weatherapi.com/v1"

	// ForecastDays is the forecast horizon requested from the provider.
	ForecastDays = 5

	// MaxRedirects bounds the redirect chain before KindRedirect.
	MaxRedirects = 30

	// DefaultTimeout bounds one request round trip.
	DefaultTimeout = 10 * time.Second

	maxBodySize = 4 << 20
)

// Client fetches forecasts from weatherapi.com.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
// A zero timeout uses DefaultTimeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxRedirects {
					return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, MaxRedirects)
				}
				return nil
			},
		},
	}, nil
}

// Fetch retrieves current conditions and the ForecastDays-day forecast for city.
// The returned document has a zero FetchedOn; stamping is the caller's job.
// All failures are *FetchError.
func (c *Client) Fetch(ctx context.Context, city string) (*Document, error) {
	req, err := c.buildRequest(ctx, city)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Err: err}
	}

	done := log.FromContext(ctx).Request(req.Method, redact(req.URL))
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		done(0, time.Since(start))
		return nil, &FetchError{Kind: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()
	done(resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Kind: classifyTransport(err), Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		// Go follows every redirect it can; a 3xx here had no usable Location.
		return nil, &FetchError{Kind: KindRedirect, Status: resp.StatusCode, Err: fmt.Errorf("unfollowable redirect: HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Kind: KindHTTP, Status: resp.StatusCode, Message: providerMessage(body)}
	}

	var envelope struct {
		Error *ProviderError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &FetchError{Kind: KindSchema, Status: resp.StatusCode, Err: &SchemaError{Err: err}}
	}
	if envelope.Error != nil {
		return nil, &FetchError{Kind: KindProvider, Status: resp.StatusCode, Message: envelope.Error.Message}
	}

	doc, err := Decode(body)
	if err != nil {
		var se *SchemaError
		msg := ""
		if errors.As(err, &se) {
			msg = se.Field
		}
		return nil, &FetchError{Kind: KindSchema, Status: resp.StatusCode, Message: msg, Err: err}
	}
	return doc, nil
}

func (c *Client) buildRequest(ctx context.Context, city string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + "/forecast.json")
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", city)
	params.Set("days", strconv.Itoa(ForecastDays))
	params.Set("aqi", "no")
	params.Set("alerts", "no")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func classifyTransport(err error) Kind {
	if errors.Is(err, ErrTooManyRedirects) {
		return KindRedirect
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var nerr interface{ Timeout() bool }
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}

// providerMessage extracts error.message from an error body, if there is one.
func providerMessage(body []byte) string {
	var envelope struct {
		Error *ProviderError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return ""
	}
	return envelope.Error.Message
}

// redact hides the API key for diagnostics.
func redact(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	c.RawQuery = q.Encode()
	return c.String()
}
