// Package runtime detects whether implicitenv is running on App Engine.
// The Info struct is resolved once at startup and passed down as a value parameter.
package runtime

import (
	"os"

	"google.golang.org/appengine"
)

// App Engine environment names.
const (
	EnvStandard = "standard"
	EnvFlexible = "flexible"
)

// Info holds runtime environment detection results.
type Info struct {
	OnAppEngine bool   // true when running on App Engine
	Environment string // EnvStandard or EnvFlexible (empty off App Engine)
	Service     string // GAE_SERVICE (only on App Engine)
	Version     string // GAE_VERSION (only on App Engine)
}

// Detect reads the App Engine environment and returns runtime info.
func Detect() Info {
	if !appengine.IsAppEngine() {
		return Info{}
	}

	info := Info{
		OnAppEngine: true,
		Service:     os.Getenv("GAE_SERVICE"),
		Version:     os.Getenv("GAE_VERSION"),
	}
	switch {
	case appengine.IsFlex():
		info.Environment = EnvFlexible
	case appengine.IsStandard():
		info.Environment = EnvStandard
	}
	return info
}
