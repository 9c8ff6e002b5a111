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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
)

func TestArbitrateAllModeRequiresEverySuccess(t *testing.T) {
	outcomes := make(chan Outcome, 2)
	outcomes <- Success
	outcomes <- Success

	r := NewRun(options.ModeAll, 2)
	assert.Equal(t, 0, r.Arbitrate(context.Background(), outcomes))
}

func TestArbitrateAllModeOneFailureFailsRun(t *testing.T) {
	outcomes := make(chan Outcome, 2)
	outcomes <- Success
	outcomes <- Failure

	r := NewRun(options.ModeAll, 2)
	assert.Equal(t, 1, r.Arbitrate(context.Background(), outcomes))
}

func TestArbitrateAnyModeOneSuccessWinsImmediately(t *testing.T) {
	outcomes := make(chan Outcome, 1)
	outcomes <- Success
	// A second dependency's outcome never arrives; Arbitrate must not block
	// on it once "any" mode already has its one success.

	r := NewRun(options.ModeAny, 2)
	assert.Equal(t, 0, r.Arbitrate(context.Background(), outcomes))
}

func TestArbitrateZeroDependenciesVacuouslySucceeds(t *testing.T) {
	r := NewRun(options.ModeAll, 0)
	outcomes := make(chan Outcome)
	assert.Equal(t, 0, r.Arbitrate(context.Background(), outcomes))
}

func TestArbitrateContextCancellationFailsRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	r := NewRun(options.ModeAll, 2)
	outcomes := make(chan Outcome) // never written to
	assert.Equal(t, 1, r.Arbitrate(ctx, outcomes))
}

func TestArbitrateArrivalOrderNotDeclarationOrder(t *testing.T) {
	// The second-declared dependency decides first; "any" mode must act on
	// it immediately rather than waiting on the first-declared one.
	outcomes := make(chan Outcome, 2)
	go func() {
		outcomes <- Success
	}()

	r := NewRun(options.ModeAny, 2)
	assert.Equal(t, 0, r.Arbitrate(context.Background(), outcomes))
}
