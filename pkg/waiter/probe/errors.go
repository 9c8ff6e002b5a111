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
	"errors"
	"net"
	"net/url"
	"syscall"
)

// isQuietDialError classifies the error families spec section 4.4 calls out
// as not worth a backtrace: host-unreachable/down, transient DNS failure,
// connect timeout, and refused/reset/aborted/broken-pipe. Anything else is
// "loud" and gets logged with detail.
func isQuietDialError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound || dnsErr.IsTimeout || dnsErr.IsTemporary
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EHOSTUNREACH,
			syscall.EHOSTDOWN, syscall.EPIPE, syscall.ECONNABORTED:
			return true
		}
	}

	return false
}

// isQuietHTTPError applies the same classification to the *url.Error the
// standard HTTP client wraps transport-level failures in.
func isQuietHTTPError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		return isQuietDialError(urlErr.Err)
	}
	return isQuietDialError(err)
}

// isQuietHTTPStatus reports the spec's quiet 5xx statuses: transient
// gateway/upstream failures that are expected while a dependency starts up.
func isQuietHTTPStatus(code int) bool {
	return code == 502 || code == 503 || code == 504
}
