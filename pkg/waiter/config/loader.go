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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable the loader falls back to when no
// command-line argument is given.
const EnvVar = "INIT_DEPENDENCIES"

// Source reads the raw document bytes given a command-line argument, which
// may be empty (look at INIT_DEPENDENCIES), "-" (read stdin), or a file
// path. Inline document bodies read from the environment are never logged;
// file contents may be logged at trace level by the caller.
func Source(arg string, stdin io.Reader) (data []byte, fromFile bool, path string, err error) {
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		return b, false, "-", errors.Wrap(err, "reading document from stdin")
	case arg != "":
		b, err := os.ReadFile(arg)
		return b, true, arg, errors.Wrapf(err, "reading document from %q", arg)
	default:
		envVal := os.Getenv(EnvVar)
		if envVal == "" {
			return nil, false, "", errors.Errorf("no document source: pass a file argument, \"-\" for stdin, or set %s", EnvVar)
		}
		if info, statErr := os.Stat(envVal); statErr == nil && info.Mode().IsRegular() {
			b, err := os.ReadFile(envVal)
			return b, true, envVal, errors.Wrapf(err, "reading document from %s=%q", EnvVar, envVal)
		}
		return []byte(envVal), false, "<inline>", nil
	}
}

// Load reads and decodes the document from the given CLI argument.
func Load(arg string, stdin io.Reader) (*Document, error) {
	data, fromFile, path, err := Source(arg, stdin)
	if err != nil {
		return nil, err
	}
	if fromFile {
		logrus.Tracef("document loaded from file %q:\n%s", path, data)
	} else {
		logrus.Debugf("document loaded from %q (contents not logged)", path)
	}
	return Decode(data)
}

// Decode tries YAML (a superset of JSON) first; if that fails or produces an
// empty/null document, it falls back to strict JSON, per spec section 4.1.
func Decode(data []byte) (*Document, error) {
	var viaYAML Document
	yamlErr := yaml.Unmarshal(data, &viaYAML)
	if yamlErr == nil && !viaYAML.empty() {
		return &viaYAML, nil
	}

	var viaJSON Document
	jsonErr := json.Unmarshal(data, &viaJSON)
	if jsonErr != nil {
		if yamlErr != nil {
			return nil, errors.Wrap(yamlErr, "decode document as yaml")
		}
		return nil, errors.Wrap(jsonErr, "decode document as json (yaml decode produced an empty document)")
	}
	return &viaJSON, nil
}
