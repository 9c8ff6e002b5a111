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

// Package errlog is the single logging entry point for both binaries. It
// decides whether an error is worth a stack trace based on the configured
// log level, and gives probes a place to report "quiet" failures that should
// never carry a backtrace regardless of level.
package errlog

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// DebugOutput controls whether LogError prints a stack trace.
	DebugOutput = false

	// LogLevel is the last level applied via SetLevel.
	LogLevel logLevelFlagType = "info"
)

type logLevelFlagType string

func (l *logLevelFlagType) String() string { return string(*l) }
func (l *logLevelFlagType) Type() string   { return "level" }
func (l *logLevelFlagType) Set(str string) error {
	*l = logLevelFlagType(str)
	return SetLevel(str)
}

// SetLevel parses and applies a textual log level to logrus, and updates
// DebugOutput for levels that should include stack traces.
func SetLevel(s string) error {
	switch s {
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
		DebugOutput = true
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
		DebugOutput = true
	default:
		return fmt.Errorf("unknown log level %q", s)
	}
	LogLevel = logLevelFlagType(s)
	return nil
}

// LogError logs an error at Error level, including a stack trace (%+v) when
// DebugOutput is set. This is for "loud" errors: anything the spec does not
// explicitly call out as a silent/quiet failure class.
func LogError(err error) {
	if err == nil {
		return
	}
	if DebugOutput {
		logrus.WithField("trace", fmt.Sprintf("%+v", err)).Error(err)
	} else {
		logrus.Error(err.Error())
	}
}

// LogQuiet logs an error at Debug level only, with no stack trace, no matter
// the configured level. Used for the probe silence rules (host-unreachable,
// connection refused/reset, transient DNS, 502/503/504, and similar).
func LogQuiet(err error) {
	if err == nil {
		return
	}
	logrus.Debug(err.Error())
}
