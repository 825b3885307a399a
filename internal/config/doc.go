// Package config handles loading and validation of weather configuration.
//
// Configuration is read from ~/.config/weather/config.toml with environment
// variable overrides. A .env file in the working directory is loaded into
// the environment first (see cmd/weather), so API_KEY can live there.
//
// # Configuration Sources (highest priority first)
//
//   - Environment: API_KEY, WEATHER_BASE_URL, WEATHER_CACHE_FILE,
//     WEATHER_LOG_FILE, WEATHER_HISTORY_FILE, WEATHER_LOG_LEVEL
//   - Config file settings (path overridable with WEATHER_CONFIG)
//   - Default values
//
// # Key Settings
//
//   - api_key: weatherapi.com key; required by the forecast command
//   - base_url: API root (default: http://api.weatherapi.com/v1)
//   - cache_file: forecast cache (default: data.json, relative to the cwd)
//   - log_file: append-only journal (default: weather.log)
//   - history_file: recent cities for completion (default: ~/.weather/history.json)
//   - log_level: journal level, one of debug, info, warn, error
//
// # Display
//
//	[display]
//	icons = true        # emoji icons in front of each line
//	theme = "default"   # default, none, dracula, nord, gruvbox
//
// # Path Handling
//
// Paths may be relative (resolved against the working directory, like the
// default cache file) or start with ~.
package config
