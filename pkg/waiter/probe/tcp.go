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

// Package probe implements the two probe executors (TCP connect, HTTP GET)
// and the attempt loop shared by both.
package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/ArkCase/ark-nettest/pkg/waiter/compile"
)

var dialer = &net.Dialer{}

// executeTCP opens a connection to host:port, succeeding iff the connect
// completes inside ctx. The socket is always closed before returning.
func executeTCP(ctx context.Context, p compile.Probe) (ok, quiet bool, err error) {
	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	conn, dialErr := dialer.DialContext(ctx, "tcp4", addr)
	if dialErr != nil {
		return false, isQuietDialError(dialErr), fmt.Errorf("tcp connect to %s: %w", addr, dialErr)
	}
	conn.Close()
	return true, false, nil
}
