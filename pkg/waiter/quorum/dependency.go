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

// Package quorum implements the two-level quorum state machine: probe
// quorum within a Dependency, and dependency quorum within a Run. A
// Dependency is reported into concurrently, so it uses an atomic countdown
// plus a single CAS-guarded transition; a Run is driven by one goroutine
// reading outcomes off a channel, so it counts down with a plain local
// counter and decides by returning.
package quorum

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
)

// Outcome is a terminal decision: Unknown is the only state a decision can
// start from, and it is written at most once.
type Outcome int32

const (
	Unknown Outcome = iota
	Success
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Dependency tracks the probe quorum for one named dependency. It has no
// back-reference to the probes it owns or to the run that owns it: probes
// report into it by calling ReportSuccess/ReportFailure directly, and it
// reports its own decision upward through onDecided, a plain function
// parameter supplied at construction time.
type Dependency struct {
	Name string
	mode options.Mode

	active    int64 // atomic countdown of probes that haven't reported yet
	result    int32 // atomic Outcome
	cancel    func()
	onDecided func(Outcome)
}

// NewDependency constructs a Dependency with its probe countdown primed to
// probeCount. cancel is invoked exactly once, the moment the quorum is
// decided, to stop any probes still in flight. onDecided is invoked exactly
// once with the decided Outcome.
func NewDependency(name string, mode options.Mode, probeCount int, cancel func(), onDecided func(Outcome)) *Dependency {
	return &Dependency{
		Name:      name,
		mode:      mode,
		active:    int64(probeCount),
		cancel:    cancel,
		onDecided: onDecided,
	}
}

// Result returns the current outcome without blocking. Probes consult this
// at attempt boundaries to short-circuit once their dependency is decided.
func (d *Dependency) Result() Outcome {
	return Outcome(atomic.LoadInt32(&d.result))
}

// ReportSuccess records one probe's success. If the dependency's mode is
// "any", or this was the last outstanding probe, the dependency transitions
// to Success.
func (d *Dependency) ReportSuccess() {
	remaining := atomic.AddInt64(&d.active, -1)
	if d.mode == options.ModeAny || remaining <= 0 {
		d.transition(Success)
	}
}

// ReportFailure records one probe's failure. If the dependency's mode is
// "all", or this was the last outstanding probe, the dependency transitions
// to Failure.
func (d *Dependency) ReportFailure() {
	remaining := atomic.AddInt64(&d.active, -1)
	if d.mode == options.ModeAll || remaining <= 0 {
		d.transition(Failure)
	}
}

// transition performs the single allowed Unknown -> {Success, Failure}
// write. Every caller that loses the CAS returns silently: it already
// decremented the counter, and that is the only contribution a losing
// report is allowed to make.
func (d *Dependency) transition(outcome Outcome) {
	if !atomic.CompareAndSwapInt32(&d.result, int32(Unknown), int32(outcome)) {
		return
	}

	logEvent := logrus.WithField("dependency", d.Name).WithField("outcome", outcome.String())
	if outcome == Success {
		logEvent.Info("dependency reachable")
	} else {
		logEvent.Warn("dependency unreachable")
	}

	if d.cancel != nil {
		d.cancel()
	}
	atomic.StoreInt64(&d.active, 0)

	if d.onDecided != nil {
		d.onDecided(outcome)
	}
}
