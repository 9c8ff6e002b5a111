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

// Package report implements the waiter's optional result callback: if
// --report-url is set, a JSON summary of the run is PUT to that URL with
// pester's retry-with-backoff semantics before the process exits. This is
// additive to the spec: it never changes the decided exit status, it only
// best-effort informs an external collector of it.
package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	"github.com/sirupsen/logrus"

	"github.com/ArkCase/ark-nettest/pkg/waiter/engine"
)

// Summary is the JSON body sent to --report-url.
type Summary struct {
	RunID        string                    `json:"runId"`
	ExitCode     int                       `json:"exitCode"`
	Dependencies []engine.DependencyResult `json:"dependencies"`
	FinishedAt   time.Time                 `json:"finishedAt"`
}

// Send PUTs a Summary of result to url, retrying transient failures via
// pester. Any error is returned to the caller to log; it never affects the
// process's exit status, which was already decided by the Exit Arbiter.
func Send(url string, runID string, result engine.Result, finishedAt time.Time) error {
	summary := Summary{
		RunID:        runID,
		ExitCode:     result.ExitCode,
		Dependencies: result.Dependencies,
		FinishedAt:   finishedAt,
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "marshal report summary")
	}

	client := pester.New()
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialBackoff

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "build PUT request to %s", url)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "PUT report to %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.Errorf("PUT report to %s: unexpected status %d", url, resp.StatusCode)
	}

	logrus.WithField("url", url).Debug("report delivered")
	return nil
}

// NewRunID generates a fresh run identifier, logged at the start of a run
// and carried through to its report summary.
func NewRunID() string {
	return uuid.NewString()
}
