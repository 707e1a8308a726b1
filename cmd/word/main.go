package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/at-ishikawa/word/internal/cli"
	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/at-ishikawa/word/internal/dictionary/rapidapi"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintln(os.Stderr, errorMessage(err)); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// errorMessage tells network or API failures apart from malformed responses.
func errorMessage(err error) string {
	var fetchErr *dictionary.FetchError
	if errors.As(err, &fetchErr) {
		return fmt.Sprintf("Could not load word json: %v", err)
	}
	var parseErr *dictionary.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("Could not parse word json: %v", err)
	}
	return fmt.Sprintf("failed to execute a command: %+v", err)
}

func newRootCommand() *cobra.Command {
	var (
		configFile   string
		cacheBackend cli.CacheBackend
		options      cli.DisplayOptions
	)

	rootCommand := cobra.Command{
		Use:           "word <word> [token]",
		Short:         "Look up a word.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Every argument is a word, so no help or completion subcommand may claim one.
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd.ErrOrStderr(), options.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			var token string
			if len(args) > 1 {
				token = args[1]
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			cfg, err := cli.LoadConfig(configFile, cacheBackend, token)
			if err != nil {
				return err
			}
			store, closeStore, err := cli.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			fetcher := rapidapi.NewClient(cfg.Host, cfg.RetryAttempts)
			defer func() {
				_ = fetcher.Close()
			}()

			resolver := dictionary.NewResolver(store, fetcher, slog.Default())
			presenter := cli.NewPresenter(cmd.OutOrStdout(), options)
			return cli.Lookup(ctx, resolver, presenter, word, cfg.Token)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVar(&configFile, "config", "", "Settings file path")
	flags.Var(&cacheBackend, "cache-backend", fmt.Sprintf("Cache backend. Possible values are %v", cli.AllCacheBackends))
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "Show verbose output")
	flags.BoolVarP(&options.Antonym, "antonym", "a", false, "Show antonyms for the word")
	flags.BoolVarP(&options.Synonym, "synonym", "s", false, "Show synonyms for the word")
	flags.BoolVarP(&options.Hypernym, "hypernym", "e", false, "Show hypernyms for the word")
	flags.BoolVarP(&options.Hyponym, "hyponym", "o", false, "Show hyponyms for the word")
	flags.BoolVarP(&options.Holonym, "holonym", "l", false, "Show holonyms for the word")
	flags.BoolVarP(&options.ShowAll, "all", "A", false, "Show all the nyms")
	flags.BoolVarP(&options.RawJSON, "json", "j", false, "Output raw json")

	return &rootCommand
}

// setupLogger configures the default logger based on verbose mode
func setupLogger(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: verbose,
		})),
	)
}
