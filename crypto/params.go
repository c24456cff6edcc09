// Package crypto maps the names used on the command line and in config
// files to the strobe.SecurityParameter values the engine understands.
package crypto

import (
	"fmt"
	"os"

	"github.com/drand/strobe/strobe"
)

// DefaultParameterName is used when no parameter is given explicitly.
const DefaultParameterName = "strobe-256"

type namedParameter struct {
	name  string
	param strobe.SecurityParameter
}

var parameters = []namedParameter{
	{name: "strobe-128", param: strobe.Param128},
	{name: "strobe-256", param: strobe.Param256},
}

// ByName looks up a security parameter by its command-line/config name. It
// returns an error, rather than a bool, since every caller needs to report a
// failure to the user one way or another.
func ByName(name string) (strobe.SecurityParameter, error) {
	if name == "" {
		name = DefaultParameterName
	}

	for _, p := range parameters {
		if p.name == name {
			return p.param, nil
		}
	}

	return 0, fmt.Errorf("crypto: unknown security parameter %q", name)
}

// ListParameters returns the names of every security parameter this build
// knows how to drive.
func ListParameters() []string {
	names := make([]string, 0, len(parameters))
	for _, p := range parameters {
		names = append(names, p.name)
	}
	return names
}

// FromEnv reads the STROBE_PARAMETER environment variable, falling back to
// DefaultParameterName when unset.
func FromEnv() (strobe.SecurityParameter, error) {
	name := os.Getenv("STROBE_PARAMETER")
	return ByName(name)
}
