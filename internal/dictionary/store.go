package dictionary

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=store.go -destination=../mocks/dictionary/mock_store.go -package=mock_dictionary

// ErrCacheMiss is returned by Store.Read when nothing usable is cached for a key.
var ErrCacheMiss = errors.New("cache miss")

// ErrEmptyWord is returned for a word that normalizes to an empty key.
var ErrEmptyWord = errors.New("word is empty")

// Store keeps raw API responses by lookup key.
type Store interface {
	// Prepare creates the backing storage if it does not exist yet.
	Prepare(ctx context.Context) error
	Read(ctx context.Context, key LookupKey) (string, error)
	Write(ctx context.Context, key LookupKey, payload string) error
	// ReadAll returns every cached entry, newest first.
	ReadAll(ctx context.Context) ([]CacheEntry, error)
	Delete(ctx context.Context, key LookupKey) error
}

// RateLimit is the quota reported by the API. -1 means unknown.
type RateLimit struct {
	Remaining int
	Limit     int
}

// FetchResult is a successful API response.
type FetchResult struct {
	Payload   string
	RateLimit RateLimit
}

// Fetcher looks a word up on the remote API.
type Fetcher interface {
	Fetch(ctx context.Context, token string, word string) (FetchResult, error)
}

// FetchError is returned when a word is neither cached nor fetchable.
type FetchError struct {
	Word string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q > %v", e.Word, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response is not a valid dictionary document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response > %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
