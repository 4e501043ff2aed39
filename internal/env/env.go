package env

import (
	"os"

	shExpand "mvdan.cc/sh/v3/expand"
)

// Variables forced on every external tool invocation, so that tool banners are not localized.
var toolVars = []string{
	"LC_ALL=C",
	"LANG=C",
}

// Get an [shExpand.Environ] implementation for running external tools. `extraVars` is an optional list of extra environment variables to inject (i.e. `key=value`), which take priority over everything else.
func GetEnviron(extraVars ...string) shExpand.Environ {
	envVars := os.Environ()
	envVars = append(envVars, toolVars...)
	envVars = append(envVars, extraVars...)

	return shExpand.ListEnviron(envVars...)
}
