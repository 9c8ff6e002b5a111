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

// Package buildinfo holds build-time information shared by the waiter and
// checkrunner binaries. It is kept separate so other packages can depend on
// it without risking an import cycle.
package buildinfo

// Version is set by the linker's -X flag at build time.
var Version = "v0.1.0-dev"

// GitSHA is the commit being built, set by the linker's -X flag at build time.
var GitSHA string
