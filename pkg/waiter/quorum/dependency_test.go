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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
)

func TestDependencyAllModeRequiresEverySuccess(t *testing.T) {
	var cancelled int32
	var decided Outcome
	dep := NewDependency("db", options.ModeAll, 2,
		func() { atomic.StoreInt32(&cancelled, 1) },
		func(o Outcome) { decided = o })

	dep.ReportSuccess()
	assert.Equal(t, Unknown, dep.Result())
	assert.Equal(t, int32(0), atomic.LoadInt32(&cancelled))

	dep.ReportSuccess()
	assert.Equal(t, Success, dep.Result())
	assert.Equal(t, Success, decided)
	assert.Equal(t, int32(1), atomic.LoadInt32(&cancelled))
}

func TestDependencyAllModeOneFailureDecidesFailure(t *testing.T) {
	dep := NewDependency("db", options.ModeAll, 3, func() {}, func(Outcome) {})

	dep.ReportSuccess()
	dep.ReportFailure()
	assert.Equal(t, Failure, dep.Result())
}

func TestDependencyAnyModeOneSuccessDecidesSuccess(t *testing.T) {
	dep := NewDependency("db", options.ModeAny, 3, func() {}, func(Outcome) {})

	dep.ReportFailure()
	assert.Equal(t, Unknown, dep.Result())
	dep.ReportSuccess()
	assert.Equal(t, Success, dep.Result())
}

func TestDependencyAnyModeAllFailuresDecidesFailure(t *testing.T) {
	dep := NewDependency("db", options.ModeAny, 2, func() {}, func(Outcome) {})

	dep.ReportFailure()
	assert.Equal(t, Unknown, dep.Result())
	dep.ReportFailure()
	assert.Equal(t, Failure, dep.Result())
}

func TestDependencyTransitionsExactlyOnce(t *testing.T) {
	var decisions int32
	dep := NewDependency("db", options.ModeAny, 10, func() {}, func(Outcome) {
		atomic.AddInt32(&decisions, 1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dep.ReportSuccess()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&decisions))
	assert.Equal(t, Success, dep.Result())
}
