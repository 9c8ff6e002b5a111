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

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEmptyPassesThrough(t *testing.T) {
	v, err := Value("", "label")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestValueEnv(t *testing.T) {
	t.Setenv("ARK_NETTEST_TEST_VAR", "hello")

	v, err := Value("@env:ARK_NETTEST_TEST_VAR", "label")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestValueEnvMissingIsFatal(t *testing.T) {
	_, err := Value("@env:ARK_NETTEST_DOES_NOT_EXIST", "label")
	require.Error(t, err)
}

func TestValueFileTrimmed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "value.txt")
	require.NoError(t, os.WriteFile(path, []byte("  trimmed-value\n"), 0o600))

	v, err := Value("@file:"+path, "label")
	require.NoError(t, err)
	assert.Equal(t, "trimmed-value", v)
}

func TestValueFileMissingIsFatal(t *testing.T) {
	_, err := Value("@file:/nonexistent/path/for/sure", "label")
	require.Error(t, err)
}

func TestValueExpandsShellStyleVars(t *testing.T) {
	t.Setenv("ARK_NETTEST_HOST", "db.internal")

	v, err := Value("${ARK_NETTEST_HOST}", "label")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", v)
}

func TestValueLiteralUnchanged(t *testing.T) {
	v, err := Value("plain-literal", "label")
	require.NoError(t, err)
	assert.Equal(t, "plain-literal", v)
}
