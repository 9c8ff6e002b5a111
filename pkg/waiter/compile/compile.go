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

// Package compile validates and normalizes a DependencySpec into a
// Dependency of one or more typed Probes. It raises the configuration errors
// of individual dependencies, and every error it returns names the offending
// dependency and field.
package compile

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ArkCase/ark-nettest/pkg/waiter/config"
	"github.com/ArkCase/ark-nettest/pkg/waiter/options"
)

// Kind distinguishes the two probe executors.
type Kind string

const (
	KindTCP  Kind = "tcp"
	KindHTTP Kind = "http"
)

// Probe is one compiled, ready-to-run reachability check.
type Probe struct {
	Kind Kind

	// TCP fields.
	Host string
	Port int

	// HTTP fields.
	URL string

	Options options.Resolved
}

// Dependency is a fully validated, compiled dependency: a canonical host and
// one or more probes that all report into the same quorum.
type Dependency struct {
	Name   string
	Host   string
	Mode   options.Mode
	Probes []Probe
}

// schemeDefaultPorts maps a URL scheme to its conventional port, used when a
// `url:` dependency gives no explicit port.
var schemeDefaultPorts = map[string]int{
	"ftp": 21, "ftps": 990, "gopher": 70, "http": 80, "https": 443,
	"ldap": 389, "ldaps": 636, "imap": 143, "imaps": 993, "pop": 110,
	"pops": 995, "smtp": 25, "smtps": 465, "ssh": 22, "sftp": 22,
	"telnet": 23, "nfs": 2049, "nntp": 119,
}

// hostnameRE matches RFC 1123 hostnames, case-insensitive.
var hostnameRE = regexp.MustCompile(`(?i)^([a-z0-9][a-z0-9-]*)?[a-z0-9]([.]([a-z0-9][a-z0-9-]*)?[a-z0-9])*$`)

// Resolver resolves one dynamic configuration string. Passing it in (rather
// than calling resolve.Value directly) keeps this package testable without
// touching the real environment or filesystem.
type Resolver func(value, label string) (string, error)

// Error is a fatal configuration error naming the dependency and field that
// caused it.
type Error struct {
	Dependency string
	Field      string
	Err        error
}

func (e *Error) Error() string {
	return "dependency " + strconv.Quote(e.Dependency) + ", field " + strconv.Quote(e.Field) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func fieldErr(name, field string, err error) error {
	return &Error{Dependency: name, Field: field, Err: err}
}

func fieldErrf(name, field, format string, args ...interface{}) error {
	return fieldErr(name, field, errors.Errorf(format, args...))
}

// Compile validates a DependencySpec and produces its compiled Dependency.
// The exactly-one-form check runs on the fields as written; resolveFn is
// then applied to url, http, host, and every port entry before that value
// is parsed or validated, per spec section 4.2.
func Compile(name string, spec config.DependencySpec, template options.ProbeOptions, resolveFn Resolver) (*Dependency, error) {
	resolvedOpts, err := options.Merge(spec.ProbeOptions, template)
	if err != nil {
		return nil, fieldErr(name, "mode", err)
	}

	urlPresent := spec.URL != ""
	httpPresent := spec.HTTP != ""
	hostPortPresent := spec.Host != "" || !spec.Port.Empty() || len(spec.Ports) > 0

	present := 0
	for _, b := range []bool{urlPresent, httpPresent, hostPortPresent} {
		if b {
			present++
		}
	}
	if present > 1 {
		return nil, fieldErrf(name, "url/http/host", "exactly one of url, http, or host+port(s) may be set")
	}

	var (
		host   string
		probes []Probe
	)

	switch {
	case urlPresent:
		resolved, err := resolveFn(spec.URL, name+".url")
		if err != nil {
			return nil, fieldErr(name, "url", err)
		}
		h, port, err := compileURL(name, "url", resolved, schemeDefaultPorts)
		if err != nil {
			return nil, err
		}
		host = h
		probes = []Probe{{Kind: KindTCP, Host: h, Port: port, Options: resolvedOpts}}

	case httpPresent:
		resolved, err := resolveFn(spec.HTTP, name+".http")
		if err != nil {
			return nil, fieldErr(name, "http", err)
		}
		u, err := url.Parse(resolved)
		if err != nil || u.Scheme == "" || u.Hostname() == "" {
			return nil, fieldErrf(name, "http", "must be a valid absolute URL, got %q", resolved)
		}
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, fieldErrf(name, "http", "scheme must be http or https, got %q", u.Scheme)
		}
		host = u.Hostname()
		probes = []Probe{{Kind: KindHTTP, URL: resolved, Options: resolvedOpts}}

	default:
		resolvedHost := spec.Host
		if resolvedHost == "" {
			resolvedHost = name
		} else {
			resolvedHost, err = resolveFn(resolvedHost, name+".host")
			if err != nil {
				return nil, fieldErr(name, "host", err)
			}
		}
		host = resolvedHost

		rawPorts := spec.Ports
		if len(rawPorts) > 0 && !spec.Port.Empty() {
			logrus.Warnf("dependency %q: both port and ports set; ports takes precedence, port is deprecated", name)
		}
		if len(rawPorts) == 0 {
			if spec.Port.Empty() {
				return nil, fieldErrf(name, "port", "host-based dependencies require port or ports")
			}
			rawPorts = []config.PortValue{spec.Port}
		}

		for _, raw := range rawPorts {
			port, err := resolvePort(raw, name, resolveFn)
			if err != nil {
				return nil, err
			}
			probes = append(probes, Probe{Kind: KindTCP, Host: host, Port: port, Options: resolvedOpts})
		}
	}

	if !hostnameRE.MatchString(host) {
		return nil, fieldErrf(name, "host", "%q does not look like a valid hostname", host)
	}

	if err := dnsSmokeTest(host); err != nil {
		return nil, fieldErr(name, "host", err)
	}

	return &Dependency{Name: name, Host: host, Mode: resolvedOpts.Mode, Probes: probes}, nil
}

// compileURL implements the `url:` form: parse, require scheme+host, derive
// the port from the URL or the scheme-default table.
func compileURL(name, field, raw string, defaults map[string]int) (host string, port int, err error) {
	u, perr := url.Parse(raw)
	if perr != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", 0, fieldErrf(name, field, "must be a valid absolute URL, got %q", raw)
	}
	host = u.Hostname()
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", 0, fieldErrf(name, field, "invalid port %q in url", p)
		}
		return host, n, nil
	}
	if n, ok := defaults[strings.ToLower(u.Scheme)]; ok {
		return host, n, nil
	}
	return "", 0, fieldErrf(name, field, "unknown scheme %q and no explicit port given", u.Scheme)
}

// resolvePort resolves a config.PortValue (decimal number or OS service name)
// into a concrete port number in [1, 65535].
func resolvePort(raw config.PortValue, depName string, resolveFn Resolver) (int, error) {
	resolved, err := resolveFn(raw.Raw, depName+".port")
	if err != nil {
		return 0, fieldErr(depName, "port", err)
	}
	resolved = strings.TrimSpace(resolved)

	if n, err := strconv.Atoi(resolved); err == nil {
		if n < 1 || n > 65535 {
			return 0, fieldErrf(depName, "port", "port %d out of range [1, 65535]", n)
		}
		return n, nil
	}

	n, err := net.LookupPort("tcp", resolved)
	if err != nil {
		return 0, fieldErrf(depName, "port", "%q is neither a valid port number nor a known service name", resolved)
	}
	return n, nil
}

// dnsSmokeTest resolves host once at compile time. Transient DNS failures
// (no-such-host/timeout classes, i.e. EAI_AGAIN/EAI_NODATA/EAI_NONAME
// analogues) are tolerated since probing will retry; anything else is
// fatal, per spec section 4.3 step 6.
func dnsSmokeTest(host string) error {
	_, err := net.DefaultResolver.LookupIPAddr(context.Background(), host)
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound || dnsErr.IsTimeout || dnsErr.IsTemporary {
			logrus.Debugf("transient DNS error resolving %q at compile time, probing will retry: %v", host, err)
			return nil
		}
	}
	return errors.Wrapf(err, "resolving host %q", host)
}
