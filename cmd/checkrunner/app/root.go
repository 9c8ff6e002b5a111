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

// Package app builds the checkrunner's cobra command tree.
package app

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ArkCase/ark-nettest/pkg/buildinfo"
	"github.com/ArkCase/ark-nettest/pkg/checkrunner/run"
	"github.com/ArkCase/ark-nettest/pkg/errlog"
	"github.com/ArkCase/ark-nettest/pkg/logging"
)

type rootFlags struct {
	logLevel string
	logFile  string
}

var flags rootFlags

// NewRootCommand builds the `checkrunner NAME [NAME...]` command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkrunner NAME [NAME...]",
		Short: "Run named shell checks, retrying each on failure",
		Long: "checkrunner runs one shell check per given name, reading its body from " +
			"the environment variable the name itself identifies and its settings " +
			"from the <NAME>_* / unprefixed override cascade, retrying on failure up " +
			"to its resolved retry budget before stopping at the first failed check.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runCheckrunner,
		Version:      buildinfo.Version,
	}

	cmd.Flags().StringVar(&flags.logLevel, "loglevel", "info",
		"log level: panic, fatal, error, warn, info, debug, trace")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "",
		"optional file to also write rotated logs to")

	return cmd
}

func runCheckrunner(cmd *cobra.Command, args []string) error {
	if err := errlog.SetLevel(flags.logLevel); err != nil {
		return err
	}
	if flags.logFile != "" {
		logrus.AddHook(logging.NewFileHook(flags.logFile))
	}

	ctx := context.Background()

	// Checks run strictly sequentially, and the first one that exhausts its
	// retry budget without succeeding stops the whole run right there, with
	// the process exiting with that check's own last exit status.
	for _, name := range args {
		out := run.Check(ctx, name)
		switch {
		case out.Skipped:
			logrus.WithField("check", out.Name).Info("skipped")
		case !out.Success:
			errlog.LogQuiet(out.Err)
			logrus.WithFields(logrus.Fields{
				"check":    out.Name,
				"attempts": out.Attempts,
				"exitCode": out.ExitCode,
			}).Error("check failed, stopping")
			os.Exit(out.ExitCode)
		}
	}

	os.Exit(0)
	return nil
}
