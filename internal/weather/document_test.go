package weather

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_JSON(t *testing.T) {
	t.Parallel()

	ts := NewTimestamp(time.Date(2026, time.October, 17, 9, 5, 3, 999, time.Local))

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"17 October 2026, 09:05:03"` {
		t.Errorf("Marshal = %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Errorf("roundtrip = %v, want %v", back, ts)
	}
}

func TestTimestamp_Null(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Timestamp{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("zero Timestamp marshals to %s, want null", data)
	}

	ts := NewTimestamp(time.Now())
	if err := json.Unmarshal([]byte("null"), &ts); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("null should reset to zero, got %v", ts)
	}
}

func TestTimestamp_SameDay(t *testing.T) {
	t.Parallel()

	fetched := NewTimestamp(time.Date(2026, time.October, 17, 10, 0, 0, 0, time.Local))

	tests := []struct {
		name string
		ts   Timestamp
		now  time.Time
		want bool
	}{
		{"same day later", fetched, time.Date(2026, time.October, 17, 23, 59, 59, 0, time.Local), true},
		{"same day earlier", fetched, time.Date(2026, time.October, 17, 0, 0, 1, 0, time.Local), true},
		{"next day", fetched, time.Date(2026, time.October, 18, 0, 0, 0, 0, time.Local), false},
		{"previous day", fetched, time.Date(2026, time.October, 16, 23, 0, 0, 0, time.Local), false},
		{"same day last year", fetched, time.Date(2025, time.October, 17, 10, 0, 0, 0, time.Local), false},
		{"zero never fresh", Timestamp{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ts.SameDay(tt.now); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProviderError_IsZero(t *testing.T) {
	t.Parallel()

	var nilErr *ProviderError
	if !nilErr.IsZero() {
		t.Error("nil error should be zero")
	}
	if !(&ProviderError{}).IsZero() {
		t.Error("empty error should be zero")
	}
	if (&ProviderError{Message: "No matching location found."}).IsZero() {
		t.Error("error with message should not be zero")
	}
}
