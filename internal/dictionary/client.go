package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Danish lemma register; the word is appended as a path segment.
const DefaultBaseURL = "https://ordregister.dk/lemma/COR/json"

// errUndecodable marks a response that arrived but could not be parsed.
// Retrying will not change the answer.
var errUndecodable = errors.New("dictionary: undecodable response")

// ClientConfig configures the HTTP lookup.
type ClientConfig struct {
	BaseURL string
	// Timeout bounds one IsValidWord call, retries included.
	Timeout time.Duration

	RetryMaxAttempts  int
	RetryInitialDelay time.Duration

	// BreakerThreshold consecutive failures open the breaker for BreakerTimeout.
	BreakerThreshold int
	BreakerTimeout   time.Duration

	HTTPClient *http.Client
}

// DefaultClientConfig returns the production defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:           DefaultBaseURL,
		Timeout:           3 * time.Second,
		RetryMaxAttempts:  2,
		RetryInitialDelay: 100 * time.Millisecond,
		BreakerThreshold:  5,
		BreakerTimeout:    30 * time.Second,
	}
}

// Client queries the lemma register over HTTP.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker circuitbreaker.CircuitBreaker[bool]
	retrier retry.Retry[bool]
}

// lookupResponse is the part of the register's JSON we read.
type lookupResponse struct {
	Status string `json:"status"`
}

// NewClient applies defaults to zero fields of cfg.
func NewClient(cfg ClientConfig) *Client {
	def := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if cfg.RetryInitialDelay <= 0 {
		cfg.RetryInitialDelay = def.RetryInitialDelay
	}
	if cfg.BreakerThreshold <= 0 {
		cfg.BreakerThreshold = def.BreakerThreshold
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	threshold := cfg.BreakerThreshold

	return &Client{
		cfg:  cfg,
		http: hc,
		breaker: circuitbreaker.New[bool](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    cfg.BreakerTimeout,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- threshold > 0
			},
		}),
		retrier: retry.New[bool](retry.Config{
			MaxAttempts:        cfg.RetryMaxAttempts,
			InitialDelay:       cfg.RetryInitialDelay,
			BackoffPolicy:      retry.BackoffExponential,
			Multiplier:         2.0,
			NonRetryableErrors: []error{errUndecodable},
		}),
	}
}

// IsValidWord reports whether the register knows word. Any failure (timeout,
// transport, undecodable body, open breaker) is logged and answers true.
func (c *Client) IsValidWord(ctx context.Context, word string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	ok, err := c.breaker.Execute(ctx, func(ctx context.Context) (bool, error) {
		return c.retrier.Do(ctx, func(ctx context.Context) (bool, error) {
			return c.lookup(ctx, word)
		})
	})
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed, accepting word")
		return true
	}
	return ok
}

// BreakerState exposes the breaker state for diagnostics.
func (c *Client) BreakerState() string { return c.breaker.State().String() }

func (c *Client) lookup(ctx context.Context, word string) (bool, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	// The register answers unknown words with a JSON body too, whatever the
	// status code, so the body decides.
	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("%w: status %d: %v", errUndecodable, resp.StatusCode, err)
	}
	return body.Status == "ok", nil
}
