package format

import "github.com/raphi011/weather/internal/ui/styles"

// Alert renders an error line prefixed with the alert icon.
func Alert(text string) string {
	return styles.CurrentSymbols().Alert + " " + styles.ErrorStyle.Bold(true).Render(text) + "\n"
}

// Notice renders a plain informational line.
func Notice(text string) string {
	return styles.NormalStyle.Render(text) + "\n"
}

// Failure renders an error line without an icon.
func Failure(text string) string {
	return styles.ErrorStyle.Render(text) + "\n"
}
