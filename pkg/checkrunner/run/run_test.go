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

package run

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSkipsWhenDisabled(t *testing.T) {
	t.Setenv("MYCHECK_DISABLE", "true")
	t.Setenv("MYCHECK", "exit 1")

	out := Check(context.Background(), "mycheck")
	assert.True(t, out.Skipped)
	assert.False(t, out.Success)
}

func TestCheckSkipsWhenNoBodyDefined(t *testing.T) {
	out := Check(context.Background(), "undefinedcheck")
	assert.True(t, out.Skipped)
}

func TestCheckSucceedsFirstTry(t *testing.T) {
	t.Setenv("MYCHECK", "true")
	t.Setenv("MYCHECK_RETRY_COUNT", "1")
	t.Setenv("MYCHECK_RETRY_WAIT", "1")

	out := Check(context.Background(), "mycheck")
	require.False(t, out.Skipped)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, 0, out.ExitCode)
}

func TestCheckRetriesThenSucceeds(t *testing.T) {
	_ = os.Remove("/tmp/ark-nettest-run-test-marker")
	t.Setenv("MYCHECK", "test -f /tmp/ark-nettest-run-test-marker && true || { touch /tmp/ark-nettest-run-test-marker; false; }")
	t.Setenv("MYCHECK_RETRY_COUNT", "3")
	t.Setenv("MYCHECK_RETRY_WAIT", "1")
	t.Cleanup(func() { _ = os.Remove("/tmp/ark-nettest-run-test-marker") })

	out := Check(context.Background(), "mycheck")
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Attempts)
}

func TestCheckExhaustsRetriesThenFails(t *testing.T) {
	t.Setenv("MYCHECK", "false")
	t.Setenv("MYCHECK_RETRY_COUNT", "2")
	t.Setenv("MYCHECK_RETRY_WAIT", "1")

	out := Check(context.Background(), "mycheck")
	assert.False(t, out.Success)
	assert.Equal(t, 2, out.Attempts) // RETRY_COUNT is the total attempt budget, not retries beyond one
	assert.Equal(t, 1, out.ExitCode)
	assert.Error(t, out.Err)
}

func TestCheckTimesOutAndIsKilled(t *testing.T) {
	t.Setenv("MYCHECK", "sleep 5")
	t.Setenv("MYCHECK_TIMEOUT", "1")
	t.Setenv("MYCHECK_RETRY_COUNT", "1")
	t.Setenv("MYCHECK_RETRY_WAIT", "1")

	start := time.Now()
	out := Check(context.Background(), "mycheck")
	elapsed := time.Since(start)

	assert.False(t, out.Success)
	assert.Equal(t, 124, out.ExitCode)
	assert.Less(t, elapsed, 4*time.Second)
}

func TestCheckRejectsInvalidName(t *testing.T) {
	out := Check(context.Background(), "123-not-a-valid-name")
	assert.Error(t, out.Err)
	assert.False(t, out.Skipped)
}
