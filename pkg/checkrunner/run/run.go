/*
Copyright 2026 the ark-nettest Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package run executes one named shell check, retrying with a fixed wait
// between attempts until it succeeds or the retry budget is exhausted, per
// spec section 4.9.
package run

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ArkCase/ark-nettest/pkg/checkrunner/settings"
)

// timeoutExitCode is the conventional shell exit status for "command timed
// out", matching what coreutils' timeout(1) reports.
const timeoutExitCode = 124

// NameRE is the validation pattern for a check name: it must be usable
// verbatim as a shell-safe env var prefix.
var NameRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Outcome records what happened running one named check.
type Outcome struct {
	Name     string
	Skipped  bool
	Attempts int
	Success  bool
	ExitCode int
	Err      error
}

// Check runs the shell body found in the env var whose name is name
// upper-cased (the positional argument names the variable holding the body),
// applying that check's resolved Settings. A check whose env var is unset
// or empty, or whose Settings.Disable is true, is skipped rather than run.
func Check(ctx context.Context, name string) Outcome {
	out := Outcome{Name: name}

	if !NameRE.MatchString(name) {
		out.Err = errors.Errorf("%q is not a valid check name", name)
		out.ExitCode = 1
		return out
	}

	s := settings.Resolve(name)
	if s.Disable {
		out.Skipped = true
		logrus.WithField("check", name).Info("check disabled, skipping")
		return out
	}

	body, ok := os.LookupEnv(strings.ToUpper(name))
	if !ok || body == "" {
		out.Skipped = true
		logrus.WithField("check", name).Info("no check body defined, skipping")
		return out
	}

	maxAttempts := s.RetryCount
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out.Attempts = attempt

		attemptCtx := ctx
		var cancel context.CancelFunc
		if s.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		}

		exitCode, err := execute(attemptCtx, name, body, s.Debug)
		if cancel != nil {
			cancel()
		}

		out.ExitCode = exitCode
		if err == nil {
			out.Success = true
			out.Err = nil
			logrus.WithFields(logrus.Fields{"check": name, "attempt": attempt}).Info("check succeeded")
			return out
		}

		out.Err = err
		logrus.WithFields(logrus.Fields{
			"check":    name,
			"attempt":  attempt,
			"max":      maxAttempts,
			"exitCode": exitCode,
		}).Warn(errors.Wrap(err, "check attempt failed"))

		if ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts && !sleep(ctx, s.RetryWait) {
			break
		}
	}

	return out
}

// execute runs body through "sh -c" in its own process group, killing the
// whole group if ctx is cancelled or its timeout elapses before it
// finishes (so a script that forks children doesn't leave orphans behind).
// With debug set, "set -x" tracing is enabled in the subshell and its
// output is always logged; otherwise output is only captured to build the
// returned error on failure. The returned exit code is the subshell's own
// status, or timeoutExitCode if ctx's deadline was the reason it stopped.
func execute(ctx context.Context, name, body string, debug bool) (int, error) {
	script := body
	if debug {
		script = "set -x\n" + body
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 2 * time.Second

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()

	if debug {
		logrus.WithField("check", name).Debugf("output:\n%s", out.String())
	}

	if ctx.Err() == context.DeadlineExceeded {
		return timeoutExitCode, errors.Errorf("timed out: %s", out.String())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), errors.Errorf("%v: %s", err, out.String())
		}
		return 1, errors.Errorf("%v: %s", err, out.String())
	}
	return 0, nil
}

// sleep blocks for d or until ctx is cancelled, whichever comes first. It
// reports whether it completed the full wait without cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
