package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	name   string
	logger ports.Logger
}

// Stdout returns a writer to capture progress output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer to capture error output.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records msg on the vertex and mirrors it to the logger.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)

	if v.logger == nil {
		return
	}
	switch {
	case level >= domain.LogLevelWarn:
		v.logger.Warn(msg)
	case level >= domain.LogLevelInfo:
		v.logger.Info(msg)
	default:
		v.logger.Debug(msg)
	}
}

// Complete marks the vertex as finished, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
	if err != nil && v.logger != nil {
		v.logger.Debug(v.name + " failed")
	}
}

// Cached marks the vertex as requiring no work.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
