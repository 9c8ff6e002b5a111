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

package main

import (
	"os"

	"github.com/ArkCase/ark-nettest/cmd/waiter/app"
	"github.com/ArkCase/ark-nettest/pkg/errlog"
)

// main's only job is to run the command and exit once. The decided run exit
// code (0 or 1) is set from inside app.runWaiter once the Exit Arbiter has
// reached a quorum; an error returned here instead means a fatal
// configuration or IO error during startup, which always exits 1.
func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		errlog.LogError(err)
		os.Exit(1)
	}
}
