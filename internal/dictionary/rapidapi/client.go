package rapidapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultHost = "wordsapiv1.p.rapidapi.com"

	headerRateLimitRemaining = "X-RateLimit-Requests-Remaining"
	headerRateLimitLimit     = "X-RateLimit-Requests-Limit"
)

// ErrMissingToken is returned when no API key is configured for a lookup.
var ErrMissingToken = errors.New("no API token configured. Pass it as an argument or set WORD_TOKEN")

// StatusError is a non-2xx response from WordsAPI.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code: %d, body: %s", e.StatusCode, e.Body)
}

// Client looks words up on WordsAPI through RapidAPI.
type Client struct {
	httpClient       *resty.Client
	host             string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var _ dictionary.Fetcher = (*Client)(nil)

func NewClient(host string, retryAttempts uint) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		httpClient:       resty.New().SetBaseURL("https://" + host),
		host:             host,
		maxRetryAttempts: retryAttempts,
		retryDelay:       retry.DefaultDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError reports whether a failed request may succeed if repeated.
// Rate limiting (429) is not retried.
func isRetryableError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Fetch implements the dictionary.Fetcher interface
func (client *Client) Fetch(ctx context.Context, token string, word string) (dictionary.FetchResult, error) {
	if token == "" {
		return dictionary.FetchResult{}, ErrMissingToken
	}

	var result dictionary.FetchResult
	if err := retry.Do(
		func() error {
			response, err := client.lookup(ctx, token, word)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().DebugContext(ctx, "retrying WordsAPI lookup", "word", word, "error", err)
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return dictionary.FetchResult{}, err
	}
	return result, nil
}

func (client *Client) lookup(ctx context.Context, token string, word string) (dictionary.FetchResult, error) {
	res, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-host", client.host).
		SetHeader("x-rapidapi-key", token).
		SetPathParam("word", word).
		Get("/words/{word}")
	if err != nil {
		return dictionary.FetchResult{}, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.IsError() || res.StatusCode() != http.StatusOK {
		return dictionary.FetchResult{}, &StatusError{StatusCode: res.StatusCode(), Body: res.String()}
	}

	return dictionary.FetchResult{
		Payload: string(res.Bytes()),
		RateLimit: dictionary.RateLimit{
			Remaining: headerInt(res.Header(), headerRateLimitRemaining),
			Limit:     headerInt(res.Header(), headerRateLimitLimit),
		},
	}, nil
}

func headerInt(header http.Header, name string) int {
	value, err := strconv.Atoi(header.Get(name))
	if err != nil {
		return -1
	}
	return value
}
