package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/weather/internal/ui/styles"
	"github.com/raphi011/weather/internal/weather"
)

// DisplayDateLayout is how forecast days are headed.
const DisplayDateLayout = "02 January 2006"

// Forecast renders the current conditions panel and the daily forecast.
func Forecast(doc *weather.Document) string {
	sym := styles.CurrentSymbols()

	current := []string{
		styles.HeadingStyle.Render("CURRENT WEATHER | " + doc.Location.Name),
		"",
		line(sym.Location, "Location", doc.Location.Address()),
		line(sym.Temperature, "Current Temperature", num(doc.Current.TempC)+"°C"),
		line(sym.Wind, "Current Wind", fmt.Sprintf("%s mph, %s", num(doc.Current.WindMPH), doc.Current.WindDir)),
		line(sym.Humidity, "Current Humidity", strconv.Itoa(doc.Current.Humidity)+"%"),
		line(sym.Condition, "Current Condition", doc.Current.Condition.Text),
	}

	var b strings.Builder
	b.WriteString(styles.RoundedBorder.Render(lipgloss.JoinVertical(lipgloss.Left, current...)))
	b.WriteString("\n")

	days := doc.Forecast.Days
	if len(days) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(styles.HeadingStyle.Render(fmt.Sprintf("FORECAST FOR THE NEXT %d DAYS", len(days))))
	b.WriteString("\n\n")

	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(day(sym, d))
	}

	return b.String()
}

func day(sym styles.Symbols, d weather.Day) string {
	lines := []string{
		sym.Calendar + "  " + styles.AccentStyle.Render("Forecast for "+Date(d.Date)),
		line(sym.MaxTemp, "Max Temperature", num(d.Day.MaxTempC)+"°C"),
		line(sym.MinTemp, "Min Temperature", num(d.Day.MinTempC)+"°C"),
		line(sym.AvgTemp, "Avg Temperature", num(d.Day.AvgTempC)+"°C"),
		line(sym.Wind, "Max Wind", num(d.Day.MaxWindKPH)+" kph"),
		line(sym.Precip, "Total Precipitation", num(d.Day.TotalPrecipMM)+" mm"),
		line(sym.Condition, "Condition", d.Day.Condition.Text),
		line(sym.UV, "UV", num(d.Day.UV)),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Date converts a provider date to DisplayDateLayout.
// Unparseable input is returned unchanged.
func Date(s string) string {
	t, err := time.Parse(weather.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(DisplayDateLayout)
}

func line(icon, label, value string) string {
	return icon + "  " + styles.MutedStyle.Render(label+":") + " " + styles.NormalStyle.Render(value)
}

func num(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
