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

package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveHardDefaults(t *testing.T) {
	s := Resolve("mycheck")
	assert.False(t, s.Disable)
	assert.False(t, s.Debug)
	assert.Equal(t, time.Duration(0), s.Timeout)
	assert.Equal(t, DefaultRetryCount, s.RetryCount)
	assert.Equal(t, DefaultRetryWait*time.Second, s.RetryWait)
}

func TestResolveUnprefixedGlobalOverridesDefault(t *testing.T) {
	t.Setenv("RETRY_COUNT", "9")
	s := Resolve("mycheck")
	assert.Equal(t, 9, s.RetryCount)
}

func TestResolvePerCheckOverridesGlobal(t *testing.T) {
	t.Setenv("RETRY_COUNT", "9")
	t.Setenv("MYCHECK_RETRY_COUNT", "2")
	s := Resolve("mycheck")
	assert.Equal(t, 2, s.RetryCount)
}

func TestResolveCaseInsensitiveName(t *testing.T) {
	t.Setenv("MYCHECK_DISABLE", "true")
	s := Resolve("MyCheck")
	assert.True(t, s.Disable)
}

func TestResolveInvalidOverrideFallsThroughToGlobal(t *testing.T) {
	t.Setenv("RETRY_COUNT", "7")
	t.Setenv("MYCHECK_RETRY_COUNT", "not-a-number")
	s := Resolve("mycheck")
	assert.Equal(t, 7, s.RetryCount)
}

func TestResolveEmptyOverrideFallsThroughToDefault(t *testing.T) {
	t.Setenv("MYCHECK_TIMEOUT", "")
	s := Resolve("mycheck")
	assert.Equal(t, time.Duration(DefaultTimeout)*time.Second, s.Timeout)
}

func TestResolveBoolCaseInsensitive(t *testing.T) {
	t.Setenv("MYCHECK_DEBUG", "TRUE")
	s := Resolve("mycheck")
	assert.True(t, s.Debug)
}

func TestResolveZeroTimeoutMeansNoTimeout(t *testing.T) {
	t.Setenv("MYCHECK_TIMEOUT", "0")
	s := Resolve("mycheck")
	assert.Equal(t, time.Duration(0), s.Timeout)
}

func TestResolveRetryCountMustBePositive(t *testing.T) {
	t.Setenv("MYCHECK_RETRY_COUNT", "0")
	s := Resolve("mycheck")
	// 0 fails the positive-int pattern, so it falls through to the default.
	assert.Equal(t, DefaultRetryCount, s.RetryCount)
}
