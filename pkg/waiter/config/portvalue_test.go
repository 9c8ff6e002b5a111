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

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPortValueYAMLNumber(t *testing.T) {
	var p PortValue
	require.NoError(t, yaml.Unmarshal([]byte("8080"), &p))
	assert.Equal(t, "8080", p.Raw)
}

func TestPortValueYAMLServiceName(t *testing.T) {
	var p PortValue
	require.NoError(t, yaml.Unmarshal([]byte("https"), &p))
	assert.Equal(t, "https", p.Raw)
}

func TestPortValueJSONNumber(t *testing.T) {
	var p PortValue
	require.NoError(t, json.Unmarshal([]byte("443"), &p))
	assert.Equal(t, "443", p.Raw)
}

func TestPortValueJSONString(t *testing.T) {
	var p PortValue
	require.NoError(t, json.Unmarshal([]byte(`"smtp"`), &p))
	assert.Equal(t, "smtp", p.Raw)
}

func TestPortValueEmpty(t *testing.T) {
	var p PortValue
	assert.True(t, p.Empty())
	p.Raw = "80"
	assert.False(t, p.Empty())
}
