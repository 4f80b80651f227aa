// Copyright 2023 Niklas Kohl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package osascript submits scripting commands to macOS applications
// through the osascript binary.
package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotRunning reports that the target application is not running. The
// scripting bridge raises AppleScript error -600 in that case.
var ErrNotRunning = errors.New("application is not running")

// Runner executes one command per call via `osascript -e`. The zero value
// is ready to use.
type Runner struct {
	// Binary is the osascript executable, "osascript" when empty.
	Binary string
	// Args are placed before the -e flag, for cases like selecting a
	// different OSA language.
	Args []string
}

// Execute runs the command and returns its standard output. Failures carry
// the scripting bridge's message verbatim; the "isn't running" condition is
// additionally matchable as ErrNotRunning.
func (r *Runner) Execute(ctx context.Context, command string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "osascript"
	}
	args := make([]string, 0, len(r.Args)+2)
	args = append(args, r.Args...)
	args = append(args, "-e", command)
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", classify(err, stderr.String())
	}
	return stdout.String(), nil
}

func classify(err error, stderr string) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = err.Error()
	}
	if strings.Contains(msg, "(-600)") || strings.Contains(msg, "isn't running") {
		return fmt.Errorf("%s: %w", msg, ErrNotRunning)
	}
	return fmt.Errorf("osascript: %s", msg)
}
