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

package quorum

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
)

// Run is the Exit Arbiter: the sole authority that decides the process's
// final exit status, by consuming dependency outcomes as they arrive (not in
// any fixed order) and applying the run-level quorum mode.
type Run struct {
	mode  options.Mode
	total int
}

// NewRun constructs a Run-level arbiter for total dependencies under mode.
func NewRun(mode options.Mode, total int) *Run {
	return &Run{mode: mode, total: total}
}

// Arbitrate blocks until the run-level quorum is satisfied or ctx is done,
// reading one Outcome per dependency off outcomes as each dependency
// decides. It returns the process exit status: 0 for an overall success
// decision, 1 for overall failure (including ctx cancellation with no
// decision yet reached).
func (r *Run) Arbitrate(ctx context.Context, outcomes <-chan Outcome) int {
	remaining := r.total
	for remaining > 0 {
		select {
		case outcome := <-outcomes:
			remaining--
			switch outcome {
			case Success:
				if r.mode == options.ModeAny || remaining <= 0 {
					logrus.WithField("mode", r.mode).Info("run succeeded")
					return 0
				}
			case Failure:
				if r.mode == options.ModeAll || remaining <= 0 {
					logrus.WithField("mode", r.mode).Warn("run failed")
					return 1
				}
			}
		case <-ctx.Done():
			logrus.Warn("run aborted before a quorum was reached")
			return 1
		}
	}
	// total == 0: no dependencies declared. Treat as vacuously successful,
	// matching "all" quorum's "every member succeeds" over an empty set.
	return 0
}
