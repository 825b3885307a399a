package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format of fetched_on.
const TimestampLayout = "02 January 2006, 15:04:05"

// DateLayout is the provider's machine date format for forecast days.
const DateLayout = "2006-01-02"

// Document is one forecast response for a location.
type Document struct {
	Location  Location       `json:"location"`
	Current   Current        `json:"current"`
	Forecast  Forecast       `json:"forecast"`
	FetchedOn Timestamp      `json:"fetched_on"`
	Error     *ProviderError `json:"error,omitempty"`
}

// Location identifies the place a forecast is for.
type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Address joins name, region and country for display.
func (l Location) Address() string {
	return fmt.Sprintf("%s, %s, %s", l.Name, l.Region, l.Country)
}

// Condition is the provider's textual weather condition.
type Condition struct {
	Text string `json:"text"`
}

// Current holds the conditions at fetch time.
type Current struct {
	TempC     float64   `json:"temp_c"`
	TempF     float64   `json:"temp_f"`
	Condition Condition `json:"condition"`
	WindMPH   float64   `json:"wind_mph"`
	WindDir   string    `json:"wind_dir"`
	Humidity  int       `json:"humidity"`
}

// Forecast wraps the ordered forecast days.
type Forecast struct {
	Days []Day `json:"forecastday"`
}

// Day is one forecast day.
type Day struct {
	Date string     `json:"date"` // YYYY-MM-DD
	Day  DaySummary `json:"day"`
}

// DaySummary is the aggregated prediction for a forecast day.
type DaySummary struct {
	MaxTempC      float64   `json:"maxtemp_c"`
	MinTempC      float64   `json:"mintemp_c"`
	AvgTempC      float64   `json:"avgtemp_c"`
	MaxWindKPH    float64   `json:"maxwind_kph"`
	TotalPrecipMM float64   `json:"totalprecip_mm"`
	Condition     Condition `json:"condition"`
	UV            float64   `json:"uv"`
}

// ProviderError is the error object the provider returns in place of a forecast.
type ProviderError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

// IsZero reports whether the error object carries nothing.
func (e *ProviderError) IsZero() bool {
	return e == nil || (e.Code == 0 && e.Message == "")
}

// Timestamp is a local wall-clock time serialized as TimestampLayout.
// The zero value marshals to null.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds, matching the stored precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Local().Format(TimestampLayout))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fetched_on: %w", err)
	}
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("fetched_on: %w", err)
	}
	ts.Time = t
	return nil
}

// SameDay reports whether ts falls on the same local calendar date as t.
func (ts Timestamp) SameDay(t time.Time) bool {
	if ts.IsZero() {
		return false
	}
	y1, m1, d1 := ts.Local().Date()
	y2, m2, d2 := t.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
