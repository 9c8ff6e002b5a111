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
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PortValue carries a port field exactly as written in the document: either
// a decimal number or a service name. It is kept as a string so the dynamic
// resolver and the compiler's resolvePort step can treat @env:/@file:/literal
// values uniformly regardless of whether the document author quoted it.
type PortValue struct {
	Raw string
}

// Empty reports whether the field was omitted from the document.
func (p PortValue) Empty() bool { return p.Raw == "" }

func (p PortValue) String() string { return p.Raw }

// UnmarshalYAML accepts either a YAML scalar number or string.
func (p *PortValue) UnmarshalYAML(node *yaml.Node) error {
	p.Raw = node.Value
	return nil
}

// MarshalYAML round-trips as a plain scalar string.
func (p PortValue) MarshalYAML() (interface{}, error) {
	return p.Raw, nil
}

// UnmarshalJSON accepts either a JSON number or string.
func (p *PortValue) UnmarshalJSON(data []byte) error {
	var asNum float64
	if err := json.Unmarshal(data, &asNum); err == nil {
		p.Raw = strconv.FormatInt(int64(asNum), 10)
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		p.Raw = asStr
		return nil
	}
	return fmt.Errorf("port value must be a number or string, got %q", string(data))
}

// MarshalJSON round-trips as a plain JSON string.
func (p PortValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.Raw)), nil
}
