package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/raphi011/weather/internal/history"
	"github.com/raphi011/weather/internal/log"
	"github.com/raphi011/weather/internal/output"
	"github.com/raphi011/weather/internal/weather"
)

func newForecastCmd(a *app) *cobra.Command {
	var copyToClipboard bool
	var f fetcher

	cmd := &cobra.Command{
		Use:     "forecast CITY",
		Short:   "Show current weather and the 5-day forecast for a city",
		GroupID: GroupCore,
		Args:    requireCity,
		Long: `Show current weather and the 5-day forecast for a city.

The last successful response is kept in the cache file (data.json in the
current directory by default). It is reused without a network request when
it was fetched today and its location name contains CITY, ignoring case.
Otherwise weatherapi.com is queried and the cache is replaced.

Requires API_KEY, set in the environment, a .env file or the config file.`,
		Example: `  weather forecast Pune          # forecast for Pune
  weather forecast "New York"    # quote names with spaces
  weather forecast pune --copy   # also copy the report to the clipboard`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireAPIKey(); err != nil {
				return err
			}
			if a.fetcher != nil {
				f = a.fetcher
				return nil
			}
			client, err := weather.NewClient(a.cfg.APIKey, a.cfg.BaseURL, weather.DefaultTimeout)
			if err != nil {
				return fmt.Errorf("create weather client: %w", err)
			}
			f = client
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			report, err := runForecast(ctx, a, f, args[0])
			if err != nil {
				return err
			}

			out.Print(report)

			if copyToClipboard {
				if err := clipboard.WriteAll(ansi.Strip(report)); err != nil {
					log.FromContext(ctx).Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the report to the clipboard")

	cmd.ValidArgsFunction = completeCity(a)

	return cmd
}

// requireCity accepts exactly one CITY argument.
func requireCity(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &usageError{cmd: cmd, msg: "Missing argument 'CITY'."}
	case len(args) > 1:
		return &usageError{cmd: cmd, msg: fmt.Sprintf("Got unexpected extra argument (%s)", args[1])}
	}
	return nil
}

// completeCity offers recently looked-up cities, ranked by fuzzy match.
func completeCity(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || a.cfg.HistoryFile == "" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		h, err := history.Load(a.cfg.HistoryFile)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return h.Match(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}
