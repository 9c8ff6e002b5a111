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

package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ArkCase/ark-nettest/pkg/waiter/compile"
)

// httpClient is shared across all HTTP probes. It deliberately leaves the
// Timeout field unset: per-attempt timeouts are applied via the request's
// context instead, so a probe's budget is spent on the network call only,
// never on sleeps between attempts. Redirects follow the default client
// policy (up to 10 hops); nothing here overrides it.
var httpClient = &http.Client{}

// executeHTTP issues a GET to p.URL, succeeding iff the response completes
// without a transport error and its status is below 400.
func executeHTTP(ctx context.Context, p compile.Probe) (ok, quiet bool, err error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if reqErr != nil {
		return false, false, fmt.Errorf("building request for %s: %w", p.URL, reqErr)
	}

	resp, doErr := httpClient.Do(req)
	if doErr != nil {
		return false, isQuietHTTPError(doErr), fmt.Errorf("GET %s: %w", p.URL, doErr)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 400 {
		return true, false, nil
	}

	statusErr := fmt.Errorf("GET %s: unexpected status %d", p.URL, resp.StatusCode)
	return false, isQuietHTTPStatus(resp.StatusCode), statusErr
}
