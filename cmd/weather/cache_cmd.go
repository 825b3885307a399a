package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raphi011/weather/internal/cache"
	"github.com/raphi011/weather/internal/output"
	"github.com/raphi011/weather/internal/ui/styles"
	"github.com/raphi011/weather/internal/weather"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   "Inspect or clear the forecast cache",
		GroupID: GroupConfig,
		Long: `Inspect or clear the forecast cache.

The cache holds the last successful response, stamped with the time it was
fetched. Its location is set by cache_file (default: data.json in the current
directory) or WEATHER_CACHE_FILE.`,
		Example: `  weather cache show    # what is cached and whether it is still fresh
  weather cache clear   # force the next forecast to fetch`,
	}

	cmd.AddCommand(newCacheShowCmd(a))
	cmd.AddCommand(newCacheClearCmd(a))

	return cmd
}

func newCacheShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cached location and when it was fetched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			doc, ok := a.store.Load()
			if !ok {
				out.Printf("No cached forecast in %s\n", a.store.Path())
				return nil
			}

			freshness := styles.SuccessStyle.Render("fresh")
			if !cache.IsFresh(doc, a.now()) {
				freshness = styles.WarningStyle.Render("stale (fetched on another day)")
			}

			row := func(name, value string) {
				out.Printf("%s%s %s\n", styles.MutedStyle.Render(name), strings.Repeat(" ", 11-len(name)), value)
			}
			row("File:", a.store.Path())
			row("Location:", doc.Location.Address())
			row("Fetched on:", doc.FetchedOn.Format(weather.TimestampLayout))
			row("Days:", strconv.Itoa(len(doc.Forecast.Days)))
			row("Status:", freshness)
			return nil
		},
	}
}

func newCacheClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			a.journal.Info("cache cleared", zap.String("file", a.store.Path()))
			output.FromContext(cmd.Context()).Printf("Removed %s\n", a.store.Path())
			return nil
		},
	}
}
