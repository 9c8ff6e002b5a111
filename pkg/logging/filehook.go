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

// Package logging holds the one piece of ambient logging setup shared by
// both binaries: an optional rotating file sink.
package logging

import (
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileHook returns a logrus hook that tees every log entry, at every
// level, to a size- and age-rotated file at path.
func NewFileHook(path string) logrus.Hook {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	writerMap := lfshook.WriterMap{}
	for _, level := range logrus.AllLevels {
		writerMap[level] = writer
	}
	return lfshook.NewHook(writerMap, &logrus.TextFormatter{DisableColors: true})
}
