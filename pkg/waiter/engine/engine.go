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

// Package engine wires the compiled dependencies into the probe executor
// pool and the quorum state machine, and is the single place that decides
// the process's exit status. It never calls os.Exit itself: callers (the
// cmd/waiter binary) do that once, after Run returns.
package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ArkCase/ark-nettest/pkg/waiter/compile"
	"github.com/ArkCase/ark-nettest/pkg/waiter/config"
	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
	"github.com/ArkCase/ark-nettest/pkg/waiter/probe"
	"github.com/ArkCase/ark-nettest/pkg/waiter/quorum"
	"github.com/ArkCase/ark-nettest/pkg/waiter/resolve"
)

// Result summarizes one run, for logging and for the optional report
// callback (pkg/waiter/report).
type Result struct {
	ExitCode     int
	Dependencies []DependencyResult
}

// DependencyResult is one dependency's final outcome.
type DependencyResult struct {
	Name    string
	Outcome quorum.Outcome
}

// Compile validates every dependency in doc in name order, stopping at and
// returning the first dependency's compile.Error. It is exported separately from Run so that
// callers needing just a lint/validate pass (or tests) don't have to run
// probes to exercise the compiler.
func Compile(doc *config.Document) ([]*compile.Dependency, error) {
	names := make([]string, 0, len(doc.Dependencies))
	for name := range doc.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic compile-error ordering; probing itself doesn't care

	compiled := make([]*compile.Dependency, 0, len(names))
	for _, name := range names {
		dep, err := compile.Compile(name, doc.Dependencies[name], doc.Template, resolve.Value)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, dep)
	}
	return compiled, nil
}

// Run compiles doc and, if enabled, probes every dependency concurrently
// until the run-level quorum decides. It returns the process exit status:
// 0 for success (including enabled=false and the zero-dependencies case),
// 1 for failure.
func Run(ctx context.Context, doc *config.Document) (Result, error) {
	if !doc.IsEnabled() {
		logrus.Info("run disabled (enabled: false); exiting successfully without probing")
		return Result{ExitCode: 0}, nil
	}

	runModeStr := doc.Mode
	if runModeStr == "" {
		runModeStr = string(options.DefaultMode)
	}
	runMode, err := options.ParseMode(runModeStr)
	if err != nil {
		return Result{}, err
	}

	compiled, err := Compile(doc)
	if err != nil {
		return Result{}, err
	}

	if len(compiled) == 0 {
		logrus.Info("no dependencies declared; exiting successfully")
		return Result{ExitCode: 0}, nil
	}

	totalProbes := 0
	for _, d := range compiled {
		totalProbes += len(d.Probes)
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	pool := semaphore.NewWeighted(int64(totalProbes) + 1)
	outcomes := make(chan quorum.Outcome, len(compiled))
	results := make([]DependencyResult, len(compiled))
	var resultsMu sync.Mutex

	for i, dep := range compiled {
		depCtx, cancel := context.WithCancel(runCtx)
		idx := i
		qdep := quorum.NewDependency(dep.Name, dep.Mode, len(dep.Probes), cancel, func(o quorum.Outcome) {
			resultsMu.Lock()
			results[idx] = DependencyResult{Name: dep.Name, Outcome: o}
			resultsMu.Unlock()
			outcomes <- o
		})

		// Fan out this dependency's probes via errgroup, matching the
		// fan-out-with-cancel shape used elsewhere in the corpus; the group's
		// own error-triggered cancellation is unused here on purpose — the
		// quorum's cancel func (above) is the only thing allowed to cut off
		// sibling probes.
		var g errgroup.Group
		for _, p := range dep.Probes {
			p := p
			if err := pool.Acquire(ctx, 1); err != nil {
				// ctx already cancelled; record the dependency as failed via a
				// direct report rather than silently dropping the probe.
				qdep.ReportFailure()
				continue
			}
			g.Go(func() error {
				defer pool.Release(1)
				probe.Run(depCtx, p, qdep)
				return nil
			})
		}
		go func() { _ = g.Wait() }()
	}

	arbiter := quorum.NewRun(runMode, len(compiled))
	exitCode := arbiter.Arbitrate(ctx, outcomes)

	resultsMu.Lock()
	deps := append([]DependencyResult(nil), results...)
	resultsMu.Unlock()

	return Result{ExitCode: exitCode, Dependencies: deps}, nil
}
