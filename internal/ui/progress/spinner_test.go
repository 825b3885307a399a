package progress

import (
	"bytes"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
)

func TestSpinner_StopWithoutStart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, "Fetching forecast")
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("Stop on an idle spinner wrote %q", buf.String())
	}
}

func TestSpinnerModel_View(t *testing.T) {
	t.Parallel()

	m := spinnerModel{spinner: spinner.New(), message: "Fetching forecast for Pune"}
	if got := m.View().Content; !strings.Contains(got, "Fetching forecast for Pune") {
		t.Errorf("View = %q, want the fetch message", got)
	}

	m.quit = true
	if got := m.View().Content; got != "" {
		t.Errorf("View after quit = %q, want empty", got)
	}
}

func TestSpinnerModel_QuitsOnceStopped(t *testing.T) {
	t.Parallel()

	m := spinnerModel{spinner: spinner.New(), quit: true}
	if _, cmd := m.Update(nil); cmd == nil {
		t.Error("expected a quit command after stop")
	}
}
