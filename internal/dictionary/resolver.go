package dictionary

import (
	"context"
	"fmt"
	"log/slog"
)

// Resolver returns the raw response for a word, from the Store when possible.
// Cached entries are never refreshed.
type Resolver struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
}

func NewResolver(store Store, fetcher Fetcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Resolve returns the cached response for word, or fetches it with token and caches it.
// Failures of the cache are logged and never hide a successful fetch.
func (r *Resolver) Resolve(ctx context.Context, word string, token string) (string, error) {
	key := NewLookupKey(word)
	if key.IsEmpty() {
		return "", fmt.Errorf("%w: %q", ErrEmptyWord, word)
	}
	r.logger.DebugContext(ctx, "resolved lookup key", "word", word, "key", key)

	if err := r.store.Prepare(ctx); err != nil {
		r.logger.WarnContext(ctx, "could not create cache directory", "error", err)
	}

	cached, err := r.store.Read(ctx, key)
	if err == nil {
		r.logger.DebugContext(ctx, "found cached json", "key", key)
		return cached, nil
	}
	r.logger.DebugContext(ctx, "could not find cached json, calling service", "key", key, "reason", err)

	result, err := r.fetcher.Fetch(ctx, token, word)
	if err != nil {
		return "", &FetchError{Word: word, Err: err}
	}
	r.logger.DebugContext(ctx, "API requests remaining",
		"remaining", result.RateLimit.Remaining,
		"limit", result.RateLimit.Limit,
	)

	if err := r.store.Write(ctx, key, result.Payload); err != nil {
		r.logger.WarnContext(ctx, "could not write cache file", "key", key, "error", err)
	}
	return result.Payload, nil
}
