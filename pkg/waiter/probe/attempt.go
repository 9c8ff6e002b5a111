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

package probe

import (
	"context"
	"time"

	"github.com/ArkCase/ark-nettest/pkg/errlog"
	"github.com/ArkCase/ark-nettest/pkg/waiter/compile"
	"github.com/ArkCase/ark-nettest/pkg/waiter/quorum"
)

// Run executes p's attempt loop against dep. It is the sole place that
// calls dep.ReportSuccess/ReportFailure for this probe: there is exactly one
// Run call in flight per compiled Probe, spawned by the executor pool.
//
// initialDelay, if set, is slept once before the very first attempt (attempt
// index 0). The original source applied it before the *second* attempt
// instead, which reads as an off-by-one; this implementation takes the
// natural reading and treats the source behavior as the bug, per the
// resolved open question.
func Run(ctx context.Context, p compile.Probe, dep *quorum.Dependency) {
	opts := p.Options

	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		if dep.Result() != quorum.Unknown {
			return
		}

		if attempt == 1 && opts.InitialDelay > 0 {
			if !sleep(ctx, time.Duration(opts.InitialDelay)*time.Second) {
				return
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, time.Duration(opts.Timeout)*time.Second)
		ok, quiet, err := execute(attemptCtx, p)
		cancel()

		if ok {
			dep.ReportSuccess()
			return
		}

		if err != nil {
			if quiet {
				errlog.LogQuiet(err)
			} else {
				errlog.LogError(err)
			}
		}

		if dep.Result() != quorum.Unknown {
			return
		}

		if attempt < opts.Attempts {
			if !sleep(ctx, time.Duration(opts.Delay)*time.Second) {
				return
			}
		}
	}

	dep.ReportFailure()
}

// execute dispatches to the probe executor matching p.Kind.
func execute(ctx context.Context, p compile.Probe) (ok, quiet bool, err error) {
	switch p.Kind {
	case compile.KindHTTP:
		return executeHTTP(ctx, p)
	default:
		return executeTCP(ctx, p)
	}
}

// sleep waits for d or until ctx is cancelled, reporting which happened
// first. A zero or negative duration returns immediately as a successful
// sleep.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
