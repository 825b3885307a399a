package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/raphi011/weather/internal/cache"
	"github.com/raphi011/weather/internal/format"
	"github.com/raphi011/weather/internal/history"
	"github.com/raphi011/weather/internal/log"
	"github.com/raphi011/weather/internal/ui/progress"
	"github.com/raphi011/weather/internal/weather"
)

// Fixed user-facing messages for fetch failures.
const (
	msgHTTPFailure   = "Error: Failed to retrieve weather data. Please enter a valid city."
	msgUnknownCity   = "The city you entered does not exist. Please try again."
	msgTimeout       = "The server didn't respond. Please try again later."
	msgBadRedirect   = "The URL was bad. Try a different one."
	msgProviderError = "Error: "
)

// runForecast serves the report for city from the cache when the cached
// document is for a matching location, was fetched today and holds no
// error. Otherwise it fetches, persists and renders a fresh document.
//
// Fetch failures with a known kind become a rendered message. Only
// transport failures are returned as errors.
func runForecast(ctx context.Context, a *app, f fetcher, city string) (string, error) {
	l := log.FromContext(ctx)
	now := a.now()

	if doc, ok := a.store.Load(); ok && cache.IsHit(doc, city, now) {
		a.journal.Info("cache hit", zap.String("city", city))
		l.Debug("cache hit", "file", a.store.Path(), "location", doc.Location.Name)
		return format.Forecast(doc), nil
	}

	a.journal.Info("cache miss", zap.String("city", city))
	l.Debug("cache miss", "file", a.store.Path())

	doc, err := fetch(ctx, a, f, city)
	if err != nil {
		return failureReport(a, city, err)
	}

	doc.FetchedOn = weather.NewTimestamp(now)
	if err := a.store.Save(doc); err != nil {
		l.Printf("Warning: failed to save forecast cache %s: %v\n", a.store.Path(), err)
		a.journal.Warn("cache save failed", zap.String("city", city), zap.Error(err))
	}

	if a.cfg.HistoryFile != "" {
		if err := history.RecordAccess(doc.Location.Name, a.cfg.HistoryFile, now); err != nil {
			l.Debug("failed to record history", "error", err)
		}
	}

	return format.Forecast(doc), nil
}

func fetch(ctx context.Context, a *app, f fetcher, city string) (*weather.Document, error) {
	if a.interactive && !log.FromContext(ctx).IsVerbose() {
		sp := progress.NewSpinner(log.FromContext(ctx).Writer(), "Fetching forecast for "+city)
		sp.Start()
		defer sp.Stop()
	}
	return f.Fetch(ctx, city)
}

func failureReport(a *app, city string, err error) (string, error) {
	var ferr *weather.FetchError
	if !errors.As(err, &ferr) {
		return "", err
	}

	a.journal.Warn("fetch failed",
		zap.String("city", city),
		zap.Stringer("kind", ferr.Kind),
		zap.Int("status", ferr.Status),
		zap.Error(err),
	)

	switch ferr.Kind {
	case weather.KindProvider:
		return format.Failure(msgProviderError + ferr.Message), nil
	case weather.KindHTTP:
		return format.Alert(msgHTTPFailure), nil
	case weather.KindSchema:
		return format.Alert(msgUnknownCity), nil
	case weather.KindTimeout:
		return format.Notice(msgTimeout), nil
	case weather.KindRedirect:
		return format.Notice(msgBadRedirect), nil
	case weather.KindTransport:
		return "", err
	default:
		return "", err
	}
}
