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

// Package config loads and decodes the waiter's declarative document: the
// YAML-or-JSON description of what to probe and how.
package config

import "github.com/ArkCase/ark-nettest/pkg/waiter/options"

// Document is the root of the configuration document.
type Document struct {
	Enabled      *bool                     `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Mode         string                    `yaml:"mode,omitempty" json:"mode,omitempty"`
	Template     options.ProbeOptions      `yaml:"template,omitempty" json:"template,omitempty"`
	Dependencies map[string]DependencySpec `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// IsEnabled reports whether the run should proceed, applying the default of
// true when the field was omitted.
func (d *Document) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// empty reports whether decoding produced a document with nothing useful in
// it, which the loader treats the same as a decode failure so it falls back
// to the strict JSON decoder.
func (d *Document) empty() bool {
	return d.Enabled == nil && d.Mode == "" && len(d.Dependencies) == 0 &&
		d.Template.Mode == nil && d.Template.InitialDelay == nil &&
		d.Template.Delay == nil && d.Template.Timeout == nil && d.Template.Attempts == nil
}

// DependencySpec is one entry of the dependencies map: a ProbeOptions
// override plus exactly one of {URL, HTTP, Host(+Port/Ports)}.
type DependencySpec struct {
	options.ProbeOptions `yaml:",inline"`

	URL   string      `yaml:"url,omitempty" json:"url,omitempty"`
	HTTP  string      `yaml:"http,omitempty" json:"http,omitempty"`
	Host  string      `yaml:"host,omitempty" json:"host,omitempty"`
	Port  PortValue   `yaml:"port,omitempty" json:"port,omitempty"`
	Ports []PortValue `yaml:"ports,omitempty" json:"ports,omitempty"`
}
