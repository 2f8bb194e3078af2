// Package logging builds the go-kit logger used across implicitenv.
package logging

import (
	"fmt"
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Log formats.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// New returns a leveled go-kit logger writing to w. Output never goes to
// stdout because stdout carries the MCP stdio transport.
func New(w io.Writer, format, lvl string) (kitlog.Logger, error) {
	opt, err := parseLevel(lvl)
	if err != nil {
		return nil, err
	}

	writer := kitlog.NewSyncWriter(w)
	var logger kitlog.Logger
	switch strings.ToLower(format) {
	case "", FormatLogfmt:
		logger = kitlog.NewLogfmtLogger(writer)
	case FormatJSON:
		logger = kitlog.NewJSONLogger(writer)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, opt), nil
}

func parseLevel(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
}
