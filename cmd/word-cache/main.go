package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/at-ishikawa/word/internal/cli"
	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// globalOptions are shared by the cache subcommands.
type globalOptions struct {
	configFile   string
	cacheBackend cli.CacheBackend
	verbose      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var global globalOptions

	rootCommand := &cobra.Command{
		Use:           "word-cache",
		Short:         "Manage responses cached by word",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd.ErrOrStderr(), global.verbose)
			return nil
		},
	}

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&global.configFile, "config", "", "Settings file path")
	persistentFlags.Var(&global.cacheBackend, "cache-backend", fmt.Sprintf("Cache backend. Possible values are %v", cli.AllCacheBackends))
	persistentFlags.BoolVarP(&global.verbose, "verbose", "v", false, "Show verbose output")

	rootCommand.AddCommand(
		newExportCommand(&global),
		newDeleteCommand(&global),
	)
	return rootCommand
}

// withStore opens the configured cache for the duration of run.
func withStore(cmd *cobra.Command, global *globalOptions, run func(store dictionary.Store) error) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	cfg, err := cli.LoadConfig(global.configFile, global.cacheBackend, "")
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
	cmd.SetContext(ctx)
	return run(store)
}

func newExportCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export every cached response as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, global, func(store dictionary.Store) error {
				ctx := cmd.Context()
				entries, err := store.ReadAll(ctx)
				if err != nil {
					return fmt.Errorf("store.ReadAll > %w", err)
				}
				if entries == nil {
					entries = []dictionary.CacheEntry{}
				}

				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent(2)
				if err := encoder.Encode(entries); err != nil {
					return fmt.Errorf("encoder.Encode > %w", err)
				}
				if err := encoder.Close(); err != nil {
					return fmt.Errorf("encoder.Close > %w", err)
				}
				slog.Default().DebugContext(ctx, "exported cache entries", "count", len(entries))
				return nil
			})
		},
	}
}

func newDeleteCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <word>",
		Short: "Delete the cached response of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := dictionary.NewLookupKey(args[0])
			if key.IsEmpty() {
				return fmt.Errorf("%w: %q", dictionary.ErrEmptyWord, args[0])
			}
			return withStore(cmd, global, func(store dictionary.Store) error {
				if err := store.Delete(cmd.Context(), key); err != nil {
					return fmt.Errorf("store.Delete(%s) > %w", key, err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key); err != nil {
					return fmt.Errorf("fmt.Fprintf > %w", err)
				}
				return nil
			})
		},
	}
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
