package rapidapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func newTestClient(serverURL string, retryAttempts uint) *Client {
	return &Client{
		httpClient:       resty.New().SetBaseURL(serverURL),
		host:             "wordsapiv1.p.rapidapi.com",
		maxRetryAttempts: retryAttempts,
		retryDelay:       time.Millisecond,
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantHost string
	}{
		{
			name:     "default host",
			host:     "",
			wantHost: DefaultHost,
		},
		{
			name:     "custom host",
			host:     "example.com",
			wantHost: "example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.host, 2)
			defer func() {
				_ = client.Close()
			}()
			assert.Equal(t, tt.wantHost, client.host)
			assert.Equal(t, uint(2), client.maxRetryAttempts)
			assert.Equal(t, "https://"+tt.wantHost, client.httpClient.BaseURL())
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	body := `{"word":"happy","results":[{"definition":"feeling pleasure"}]}`

	tests := []struct {
		name              string
		word              string
		retryAttempts     uint
		mockServerHandler func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request)

		wantResult     dictionary.FetchResult
		wantCalls      int32
		wantStatusCode int
		wantError      bool
	}{
		{
			name: "success with rate limit headers",
			word: "happy",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/words/happy", r.URL.Path)
				assert.Equal(t, "wordsapiv1.p.rapidapi.com", r.Header.Get("x-rapidapi-host"))
				assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))

				w.Header().Set("X-RateLimit-Requests-Remaining", "2499")
				w.Header().Set("X-RateLimit-Requests-Limit", "2500")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(body))
			},
			wantResult: dictionary.FetchResult{
				Payload:   body,
				RateLimit: dictionary.RateLimit{Remaining: 2499, Limit: 2500},
			},
			wantCalls: 1,
		},
		{
			name: "word with a space is escaped and rate limit unknown",
			word: "fire engine",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/words/fire engine", r.URL.Path)
				assert.Equal(t, "/words/fire%20engine", r.URL.EscapedPath())
				_, _ = w.Write([]byte(`{"word":"fire engine"}`))
			},
			wantResult: dictionary.FetchResult{
				Payload:   `{"word":"fire engine"}`,
				RateLimit: dictionary.RateLimit{Remaining: -1, Limit: -1},
			},
			wantCalls: 1,
		},
		{
			name:          "server error is retried",
			word:          "happy",
			retryAttempts: 2,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				if calls < 3 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(body))
			},
			wantResult: dictionary.FetchResult{
				Payload:   body,
				RateLimit: dictionary.RateLimit{Remaining: -1, Limit: -1},
			},
			wantCalls: 3,
		},
		{
			name:          "server error after all attempts",
			word:          "happy",
			retryAttempts: 1,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantCalls:      2,
			wantError:      true,
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:          "not found is not retried",
			word:          "asdfgh",
			retryAttempts: 2,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"success":false,"message":"word not found"}`))
			},
			wantCalls:      1,
			wantError:      true,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:          "rate limiting is not retried",
			word:          "happy",
			retryAttempts: 2,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Requests-Remaining", "0")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantCalls:      1,
			wantError:      true,
			wantStatusCode: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, calls.Add(1), w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL, tt.retryAttempts)
			defer func() {
				_ = client.Close()
			}()

			got, err := client.Fetch(context.Background(), "secret", tt.word)
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantError {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatusCode, statusErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, got)
		})
	}
}

func TestClient_Fetch_MissingToken(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	_, err := client.Fetch(context.Background(), "", "happy")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Zero(t, calls.Load())
}

func TestClient_Fetch_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL, 3)
	_, err := client.Fetch(ctx, "secret", "happy")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "server error", err: &StatusError{StatusCode: http.StatusServiceUnavailable}, want: true},
		{name: "client error", err: &StatusError{StatusCode: http.StatusBadRequest}, want: false},
		{name: "rate limited", err: &StatusError{StatusCode: http.StatusTooManyRequests}, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "transport error", err: assert.AnError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
