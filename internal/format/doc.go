// Package format renders weather documents as terminal text.
//
// [Forecast] produces the full report: a bordered "current weather" panel
// followed by one block per forecast day, in the order the provider
// returned them. Every line is prefixed with an icon from the active
// [styles.Symbols] set, so disabling icons in config yields plain ASCII
// prefixes.
//
// # Dates
//
// Forecast days arrive as YYYY-MM-DD and are shown as "02 January 2006".
// A date that does not parse is printed as received.
//
// # Numbers
//
// Measurements are printed with the shortest representation that round
// trips, keeping one decimal for whole values (29.3 stays 29.3, 30 prints
// as 30.0).
//
// Rendering is pure: it reads the document and the active theme and
// returns a string. Callers decide where it goes.
package format
