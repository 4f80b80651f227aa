package osascript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	for _, test := range []struct {
		desc       string
		stderr     string
		notRunning bool
	}{
		{
			desc:       "application not running",
			stderr:     `27:33: execution error: MoneyMoney got an error: Application isn't running. (-600)`,
			notRunning: true,
		},
		{
			desc:       "numeric code only",
			stderr:     "execution error: An error occurred. (-600)",
			notRunning: true,
		},
		{
			desc:       "syntax error",
			stderr:     "syntax error: Expected end of line but found identifier. (-2741)",
			notRunning: false,
		},
		{
			desc:       "no stderr",
			stderr:     "",
			notRunning: false,
		},
	} {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()
			err := classify(errors.New("exit status 1"), test.stderr)
			if err == nil {
				t.Fatal("classify() = nil, want error")
			}
			if got := errors.Is(err, ErrNotRunning); got != test.notRunning {
				t.Errorf("errors.Is(err, ErrNotRunning) = %t, want %t", got, test.notRunning)
			}
			if test.stderr != "" && !strings.Contains(err.Error(), strings.TrimSpace(test.stderr)) {
				t.Errorf("classify() = %q, want the bridge message preserved", err)
			}
		})
	}
}

// writeShim installs an executable stand-in for the osascript binary.
func writeShim(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shim requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "osascript")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	r := &Runner{Binary: writeShim(t, `#!/bin/sh
printf '%s\n' "$*"
`)}

	out, err := r.Execute(context.Background(), "export accounts")

	if err != nil {
		t.Fatalf("Execute() = %v, want nil error", err)
	}
	if want := "-e export accounts\n"; out != want {
		t.Errorf("Execute() = %q, want %q", out, want)
	}
}

func TestExecuteArgsPrecedeCommand(t *testing.T) {
	r := &Runner{
		Binary: writeShim(t, `#!/bin/sh
printf '%s\n' "$*"
`),
		Args: []string{"-l", "AppleScript"},
	}

	out, err := r.Execute(context.Background(), "export accounts")

	if err != nil {
		t.Fatalf("Execute() = %v, want nil error", err)
	}
	if want := "-l AppleScript -e export accounts\n"; out != want {
		t.Errorf("Execute() = %q, want %q", out, want)
	}
}

func TestExecuteNotRunning(t *testing.T) {
	r := &Runner{Binary: writeShim(t, `#!/bin/sh
echo "27:33: execution error: MoneyMoney got an error: Application isn't running. (-600)" >&2
exit 1
`)}

	_, err := r.Execute(context.Background(), "export accounts")

	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Execute() = %v, want ErrNotRunning", err)
	}
	if !strings.Contains(err.Error(), "(-600)") {
		t.Errorf("Execute() = %q, want the bridge message preserved", err)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	r := &Runner{Binary: "definitely-not-a-real-binary"}

	_, err := r.Execute(context.Background(), "export accounts")

	if err == nil {
		t.Fatal("Execute() = nil, want error")
	}
	if errors.Is(err, ErrNotRunning) {
		t.Error("Execute() classified a missing binary as ErrNotRunning")
	}
}
