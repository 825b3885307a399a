package weather

import (
	"encoding/json"
	"fmt"
)

// SchemaError reports a payload that is not a forecast document.
type SchemaError struct {
	Field string // dotted path of the first missing field; empty for syntax errors
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("malformed document: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// raw* mirror Document with pointer fields so absent keys are detectable.
type rawCondition struct {
	Text *string `json:"text"`
}

type rawDocument struct {
	Location *struct {
		Name    *string `json:"name"`
		Region  *string `json:"region"`
		Country *string `json:"country"`
	} `json:"location"`
	Current *struct {
		TempC     *float64      `json:"temp_c"`
		TempF     *float64      `json:"temp_f"`
		Condition *rawCondition `json:"condition"`
		WindMPH   *float64      `json:"wind_mph"`
		WindDir   *string       `json:"wind_dir"`
		Humidity  *float64      `json:"humidity"`
	} `json:"current"`
	Forecast *struct {
		Days *[]rawDay `json:"forecastday"`
	} `json:"forecast"`
	FetchedOn Timestamp      `json:"fetched_on"`
	Error     *ProviderError `json:"error"`
}

type rawDay struct {
	Date *string `json:"date"`
	Day  *struct {
		MaxTempC      *float64      `json:"maxtemp_c"`
		MinTempC      *float64      `json:"mintemp_c"`
		AvgTempC      *float64      `json:"avgtemp_c"`
		MaxWindKPH    *float64      `json:"maxwind_kph"`
		TotalPrecipMM *float64      `json:"totalprecip_mm"`
		Condition     *rawCondition `json:"condition"`
		UV            *float64      `json:"uv"`
	} `json:"day"`
}

// field records the first missing path while walking a raw document.
type field struct {
	missing string
}

func (f *field) str(path string, v *string) string {
	if v == nil {
		f.miss(path)
		return ""
	}
	return *v
}

func (f *field) num(path string, v *float64) float64 {
	if v == nil {
		f.miss(path)
		return 0
	}
	return *v
}

func (f *field) cond(path string, c *rawCondition) Condition {
	if c == nil {
		f.miss(path)
		return Condition{}
	}
	return Condition{Text: f.str(path+".text", c.Text)}
}

func (f *field) day(i int, d rawDay) Day {
	prefix := fmt.Sprintf("forecast.forecastday[%d]", i)
	day := Day{Date: f.str(prefix+".date", d.Date)}
	if d.Day == nil {
		f.miss(prefix + ".day")
		return day
	}
	day.Day = DaySummary{
		MaxTempC:      f.num(prefix+".day.maxtemp_c", d.Day.MaxTempC),
		MinTempC:      f.num(prefix+".day.mintemp_c", d.Day.MinTempC),
		AvgTempC:      f.num(prefix+".day.avgtemp_c", d.Day.AvgTempC),
		MaxWindKPH:    f.num(prefix+".day.maxwind_kph", d.Day.MaxWindKPH),
		TotalPrecipMM: f.num(prefix+".day.totalprecip_mm", d.Day.TotalPrecipMM),
		Condition:     f.cond(prefix+".day.condition", d.Day.Condition),
		UV:            f.num(prefix+".day.uv", d.Day.UV),
	}
	return day
}

func (f *field) miss(path string) {
	if f.missing == "" {
		f.missing = path
	}
}

// Decode converts a provider or cache payload into a Document.
// Every field the renderer needs must be present; the error marker and
// fetched_on are optional.
func Decode(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Err: err}
	}

	var f field
	doc := &Document{FetchedOn: raw.FetchedOn, Error: raw.Error}

	if raw.Location == nil {
		f.miss("location")
	} else {
		doc.Location = Location{
			Name:    f.str("location.name", raw.Location.Name),
			Region:  f.str("location.region", raw.Location.Region),
			Country: f.str("location.country", raw.Location.Country),
		}
	}

	if c := raw.Current; c == nil {
		f.miss("current")
	} else {
		doc.Current = Current{
			TempC:     f.num("current.temp_c", c.TempC),
			TempF:     f.num("current.temp_f", c.TempF),
			Condition: f.cond("current.condition", c.Condition),
			WindMPH:   f.num("current.wind_mph", c.WindMPH),
			WindDir:   f.str("current.wind_dir", c.WindDir),
			Humidity:  int(f.num("current.humidity", c.Humidity)),
		}
	}

	if raw.Forecast == nil || raw.Forecast.Days == nil {
		f.miss("forecast.forecastday")
	} else {
		days := *raw.Forecast.Days
		doc.Forecast.Days = make([]Day, 0, len(days))
		for i, d := range days {
			doc.Forecast.Days = append(doc.Forecast.Days, f.day(i, d))
		}
	}

	if f.missing != "" {
		return nil, &SchemaError{Field: f.missing}
	}
	return doc, nil
}
