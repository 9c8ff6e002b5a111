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

// Package settings resolves the per-check override cascade described in
// spec section 4.9: <NAME>_<SETTING> over the unprefixed global env var over
// a hard default, independently for each of five knobs.
package settings

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Hard defaults, used whenever neither the per-check override nor the
// unprefixed global env var supplies a valid value.
const (
	DefaultTimeout    = 0 // seconds; 0 means no timeout
	DefaultRetryCount = 5
	DefaultRetryWait  = 5 // seconds
	DefaultDisable    = false
	DefaultDebug      = false
)

// Settings is the effective, validated configuration for one named check.
type Settings struct {
	Disable    bool
	Debug      bool
	Timeout    time.Duration // 0 means no timeout
	RetryCount int
	RetryWait  time.Duration
}

var (
	nonNegativeIntRE = regexp.MustCompile(`^[0-9]+$`)
	positiveIntRE    = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// global carries the unprefixed-env-var / hard-default tier, built once via
// viper the way pkg/worker/config.go binds MASTER_URL/NODE_NAME/RESULTS_DIR:
// SetDefault establishes the hard default, BindEnv layers the unprefixed
// global on top of it.
type global struct{ v *viper.Viper }

func newGlobal() *global {
	v := viper.New()
	v.SetDefault("disable", DefaultDisable)
	v.SetDefault("debug", DefaultDebug)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("retrycount", DefaultRetryCount)
	v.SetDefault("retrywait", DefaultRetryWait)

	_ = v.BindEnv("disable", "DISABLE")
	_ = v.BindEnv("debug", "DEBUG")
	_ = v.BindEnv("timeout", "TIMEOUT")
	_ = v.BindEnv("retrycount", "RETRY_COUNT")
	_ = v.BindEnv("retrywait", "RETRY_WAIT")

	return &global{v: v}
}

// Resolve builds the effective Settings for check name (case-insensitive),
// applying the per-check override at each of the five knobs independently;
// an override that is missing, empty, or fails its validation pattern falls
// through to the global/default tier for that knob only, not for the whole
// check.
func Resolve(name string) Settings {
	upper := strings.ToUpper(name)
	g := newGlobal()

	return Settings{
		Disable:    resolveBool(upper+"_DISABLE", g.v.GetBool("disable")),
		Debug:      resolveBool(upper+"_DEBUG", g.v.GetBool("debug")),
		Timeout:    time.Duration(resolveNonNegativeInt(upper+"_TIMEOUT", g.v.GetInt("timeout"))) * time.Second,
		RetryCount: resolvePositiveInt(upper+"_RETRY_COUNT", g.v.GetInt("retrycount")),
		RetryWait:  time.Duration(resolvePositiveInt(upper+"_RETRY_WAIT", g.v.GetInt("retrywait"))) * time.Second,
	}
}

func resolveBool(envVar string, fallback bool) bool {
	raw, ok := os.LookupEnv(envVar)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}

func resolveNonNegativeInt(envVar string, fallback int) int {
	raw, ok := os.LookupEnv(envVar)
	if !ok || !nonNegativeIntRE.MatchString(strings.TrimSpace(raw)) {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

func resolvePositiveInt(envVar string, fallback int) int {
	raw, ok := os.LookupEnv(envVar)
	if !ok || !positiveIntRE.MatchString(strings.TrimSpace(raw)) {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
