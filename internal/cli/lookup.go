package cli

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/word/internal/dictionary/rapidapi"
)

type WordResolver interface {
	Resolve(ctx context.Context, word string, token string) (string, error)
}

// Lookup resolves word and prints it. Fetch and parse failures are returned
// as *dictionary.FetchError and *dictionary.ParseError.
func Lookup(ctx context.Context, resolver WordResolver, presenter *Presenter, word string, token string) error {
	payload, err := resolver.Resolve(ctx, word, token)
	if err != nil {
		return err
	}

	if presenter.options.RawJSON {
		return presenter.Raw(payload)
	}

	record, err := rapidapi.Parse(payload)
	if err != nil {
		return err
	}
	if err := presenter.Show(record); err != nil {
		return fmt.Errorf("presenter.Show > %w", err)
	}
	return nil
}
