package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, "http://api.test")
	res := run(t, a, "--version")

	if res.code != 0 {
		t.Fatalf("exit code = %d", res.code)
	}
	if !strings.HasPrefix(res.stdout, "weather dev (none, unknown, go") {
		t.Errorf("version = %q", res.stdout)
	}
}

func TestVerboseAndQuietAreExclusive(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, "http://api.test")
	res := run(t, a, "-v", "-q", "cache", "show")

	if res.code == 0 {
		t.Error("expected failure for -v with -q")
	}
	if !strings.Contains(res.stderr, "verbose") || !strings.Contains(res.stderr, "quiet") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, "http://api.test")
	res := run(t, a, "forcast", "Pune")

	if res.code != 1 {
		t.Errorf("exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stderr, "forecast") {
		t.Errorf("stderr should suggest forecast: %q", res.stderr)
	}
}

func TestUsageError(t *testing.T) {
	t.Parallel()

	var err error = &usageError{cmd: &cobra.Command{Use: "x"}, msg: "Missing argument 'CITY'."}
	if err.Error() != "Missing argument 'CITY'." {
		t.Errorf("Error() = %q", err.Error())
	}

	var uerr *usageError
	if !errors.As(err, &uerr) {
		t.Error("errors.As failed for usageError")
	}
}

func TestRequireCity(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "forecast CITY"}
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{nil, true},
		{[]string{"Pune"}, false},
		{[]string{"New York"}, false},
		{[]string{"Pune", "Mumbai"}, true},
	}
	for _, tt := range tests {
		err := requireCity(cmd, tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("requireCity(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
		}
	}
}

func TestCompletionScripts(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()

			a, _ := newTestApp(t, "http://api.test")
			res := run(t, a, "completion", shell)
			if res.code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
			}
			if !strings.Contains(res.stdout, "weather") {
				t.Errorf("%s completion does not mention weather", shell)
			}
		})
	}

	a, _ := newTestApp(t, "http://api.test")
	if res := run(t, a, "completion", "tcsh"); res.code == 0 {
		t.Error("expected failure for unsupported shell")
	}
}
