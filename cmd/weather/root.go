package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raphi011/weather/internal/cache"
	"github.com/raphi011/weather/internal/config"
	"github.com/raphi011/weather/internal/log"
	"github.com/raphi011/weather/internal/output"
	"github.com/raphi011/weather/internal/ui/styles"
	"github.com/raphi011/weather/internal/weather"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// fetcher retrieves a forecast document for a city.
type fetcher interface {
	Fetch(ctx context.Context, city string) (*weather.Document, error)
}

// app is the state shared by all commands of one invocation.
type app struct {
	cfg     config.Config
	journal *zap.Logger
	store   *cache.Store

	// fetcher is built from cfg when nil
	fetcher fetcher

	now         func() time.Time
	interactive bool
}

func newApp(cfg config.Config, journal *zap.Logger) *app {
	return &app{
		cfg:     cfg,
		journal: journal,
		store:   cache.NewStore(cfg.CacheFile),
		now:     time.Now,
	}
}

// usageError is a command line mistake; it exits with status 2.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func newRootCmd(a *app) *cobra.Command {
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Current weather and a 5-day forecast in your terminal",
		Long: `weather shows current conditions and a 5-day forecast for a city,
using weatherapi.com.

The last successful response is cached in a local file and reused for the
rest of the day when you ask for the same city again.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), verbose, quiet)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show outgoing requests")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{cmd: c, msg: err.Error()}
	})

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newForecastCmd(a))
	cmd.AddCommand(newCacheCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute loads configuration, runs the command line and exits.
func Execute() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Display)

	journal, err := log.OpenJournal(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		journal = log.NopJournal()
	}

	a := newApp(cfg, journal.With(zap.String("invocation", uuid.NewString())))
	a.interactive = output.IsTerminal(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, a, os.Args[1:], output.NewWriter(os.Stdout, os.Environ()), os.Stderr)

	cancel()
	_ = journal.Close()
	os.Exit(code)
}

// execute runs args against a fresh command tree and returns the exit status.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx = output.WithPrinter(ctx, stdout)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Usage: %s\n", uerr.cmd.UseLine())
		fmt.Fprintf(stderr, "Try '%s -h' for help.\n\n", uerr.cmd.CommandPath())
		fmt.Fprintf(stderr, "Error: %s\n", uerr.msg)
		return 2
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "Run 'weather -h' for help")
	return 1
}
