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

// Package app builds the waiter's cobra command tree.
package app

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ArkCase/ark-nettest/pkg/buildinfo"
	"github.com/ArkCase/ark-nettest/pkg/errlog"
	"github.com/ArkCase/ark-nettest/pkg/logging"
	"github.com/ArkCase/ark-nettest/pkg/waiter/config"
	"github.com/ArkCase/ark-nettest/pkg/waiter/engine"
	"github.com/ArkCase/ark-nettest/pkg/waiter/report"
)

type rootFlags struct {
	logLevel  string
	logFile   string
	reportURL string
}

var flags rootFlags

// NewRootCommand builds the `waiter [file|-]` command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waiter [file|-]",
		Short: "Block until a declared set of network dependencies is reachable",
		Long: "waiter reads a declarative document of network dependencies, probes them " +
			"concurrently, and exits 0 once the configured quorum is reachable or 1 if " +
			"the retry budget is exhausted first.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runWaiter,
		Version:      buildinfo.Version,
	}

	cmd.Flags().StringVar(&flags.logLevel, "loglevel", "info",
		"log level: panic, fatal, error, warn, info, debug, trace")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "",
		"optional file to also write rotated logs to")
	cmd.Flags().StringVar(&flags.reportURL, "report-url", "",
		"optional URL to PUT a JSON run summary to before exiting")

	return cmd
}

func runWaiter(cmd *cobra.Command, args []string) error {
	if err := errlog.SetLevel(flags.logLevel); err != nil {
		return err
	}
	if flags.logFile != "" {
		logrus.AddHook(logging.NewFileHook(flags.logFile))
	}

	runID := report.NewRunID()
	logrus.WithField("runId", runID).Info("starting dependency wait")

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}

	doc, err := config.Load(arg, cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	result, err := engine.Run(context.Background(), doc)
	if err != nil {
		return errors.Wrap(err, "compiling configuration")
	}

	if flags.reportURL != "" {
		if sendErr := report.Send(flags.reportURL, runID, result, time.Now()); sendErr != nil {
			errlog.LogError(errors.Wrap(sendErr, "sending report"))
		}
	}

	logrus.WithField("exitCode", result.ExitCode).Info("dependency wait finished")
	os.Exit(result.ExitCode)
	return nil
}
