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

// Package resolve implements the dynamic value resolver: @env:, @file:, and
// $VAR/${VAR} expansion applied to string fields of a dependency spec at
// compile time.
package resolve

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	envPrefix  = "@env:"
	filePrefix = "@file:"
)

// Value resolves a single configuration string. Empty strings pass through
// unchanged. label identifies the field for diagnostics and log lines (e.g.
// "db.host").
func Value(v, label string) (string, error) {
	if v == "" {
		return v, nil
	}

	switch {
	case strings.HasPrefix(v, envPrefix):
		name := strings.TrimPrefix(v, envPrefix)
		val, ok := os.LookupEnv(name)
		if !ok {
			return "", errors.Errorf("%s: environment variable %q is not set", label, name)
		}
		logrus.Debugf("%s: resolved from @env:%s", label, name)
		return val, nil

	case strings.HasPrefix(v, filePrefix):
		path := strings.TrimPrefix(v, filePrefix)
		b, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "%s: reading @file:%s", label, path)
		}
		val := strings.TrimSpace(string(b))
		logrus.Tracef("%s: resolved from @file:%s = %q", label, path, val)
		return val, nil

	default:
		expanded := os.Expand(v, os.Getenv)
		if expanded != v {
			logrus.Debugf("%s: expanded %q -> %q", label, v, expanded)
		}
		return expanded, nil
	}
}
