package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/licache/internal/core/domain"
)

// Vertex is the progrock record of one (application, type) scope.
type Vertex struct {
	scope  string
	vertex *progrock.VertexRecorder
	done   sync.Once
}

// Stdout returns the scope's output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log writes msg to the scope's output. Errors go to its stderr stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelError {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s [%s] %s\n", v.scope, level, msg)
}

// Complete marks the scope as finished. Only the first call is recorded.
func (v *Vertex) Complete(err error) {
	v.done.Do(func() {
		v.vertex.Done(err)
	})
}

// Cached marks the scope as unchanged.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
