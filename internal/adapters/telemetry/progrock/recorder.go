// Package progrock records package actions as Progrock vertices.
package progrock

import (
	"context"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/natdeps/internal/core/ports"
)

// Recorder implements ports.Telemetry on top of a progrock.Recorder.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	run    string
	logger ports.Logger
}

// New creates a Recorder writing to an in-memory tape.
func New(log ports.Logger) *Recorder {
	return NewRecorder(progrock.NewTape(), log)
}

// NewRecorder creates a Recorder with the given writer. Vertex logs are mirrored to log.
func NewRecorder(w progrock.Writer, log ports.Logger) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		run:    uuid.NewString(),
		logger: log,
	}
}

// Record starts a vertex for name. Vertex digests are scoped to this recorder's run.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(r.run + "/" + name)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name), name: name, logger: r.logger}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
