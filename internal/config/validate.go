package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"default", "none", "dracula", "nord", "gruvbox"}
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Validate checks enum fields and the API root.
func (c *Config) Validate() error {
	if err := validateEnum(strings.ToLower(c.LogLevel), "log_level", ValidLogLevels); err != nil {
		return err
	}
	if err := validateEnum(c.Display.Theme, "display.theme", ValidThemeNames); err != nil {
		return err
	}
	if err := validateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if c.CacheFile == "" {
		return fmt.Errorf("cache_file must not be empty")
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", raw)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
