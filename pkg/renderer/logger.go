package renderer

import (
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to glog's INFO log
type DefaultLogger struct{}

// Printf logs at INFO. glog terminates every entry, so a trailing newline is dropped.
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}
