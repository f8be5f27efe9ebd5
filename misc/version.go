// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X mdimport/misc.version=... -X mdimport/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
	appname = ""
)

// GetAppName returns program name without extension.
func GetAppName() string {
	if len(appname) > 0 {
		return appname
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}
