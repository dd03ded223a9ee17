// pkg/version/version.go - build information injected with -ldflags -X.

package version

import (
	"fmt"
	"io"
	"runtime"
)

// Set with -ldflags "-X github.com/windowsadmins/msiquery/pkg/version.version=...".
var (
	version   = "dev"
	revision  = "unknown"
	buildDate = "unknown"
	appName   = "msiquery"
)

// Info is the build information of the running binary.
type Info struct {
	AppName   string `json:"app_name" yaml:"app_name"`
	Version   string `json:"version" yaml:"version"`
	Revision  string `json:"revision" yaml:"revision"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Version returns the build information.
func Version() Info {
	return Info{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns "<app> <version>".
func (i Info) String() string {
	return i.AppName + " " + i.Version
}

// Fprint writes the short form, or every field when full is set.
func Fprint(w io.Writer, full bool) {
	v := Version()
	fmt.Fprintln(w, v.String())
	if !full {
		return
	}
	fmt.Fprintf(w, "  revision: \t%s\n", v.Revision)
	fmt.Fprintf(w, "  build date: \t%s\n", v.BuildDate)
	fmt.Fprintf(w, "  go version: \t%s\n", v.GoVersion)
}
