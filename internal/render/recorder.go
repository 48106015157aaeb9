package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gputypes"

	"polydraw/internal/buffer"
	"polydraw/internal/geom"
)

// Command is one recorded draw call as a GPU backend would issue it.
type Command struct {
	Primitive   buffer.Primitive
	Topology    gputypes.PrimitiveTopology
	Layouts     []gputypes.VertexBufferLayout
	VertexCount int
	Positions   []byte
	Colors      []byte
	Batch       buffer.Batch
}

// Recorder is a Rasterizer that keeps the draw list of the last frame
// instead of producing pixels. Fans are expanded to triangle lists since
// WebGPU has no fan topology.
type Recorder struct {
	Background geom.Color
	Commands   []Command

	// MaxVertices bounds a single upload; larger batches fail with
	// ErrAllocation. Zero means unbounded.
	MaxVertices int
}

func (r *Recorder) Clear(bg geom.Color) {
	r.Background = bg
	r.Commands = r.Commands[:0]
}

func (r *Recorder) Draw(b buffer.Batch) error {
	if r.MaxVertices > 0 && b.Count > r.MaxVertices {
		return fmt.Errorf("%w: %d vertices exceeds %d", ErrAllocation, b.Count, r.MaxVertices)
	}
	up := b.FanTriangles()
	topo, _ := up.Primitive.Topology()
	r.Commands = append(r.Commands, Command{
		Primitive:   b.Primitive,
		Topology:    topo,
		Layouts:     buffer.Layouts(),
		VertexCount: up.Count,
		Positions:   up.PositionBytes(),
		Colors:      up.ColorBytes(),
		Batch:       b,
	})
	return nil
}

// Dump writes a human readable draw list.
func (r *Recorder) Dump(w io.Writer) error {
	bg := r.Background
	if _, err := fmt.Fprintf(w, "clear %.3f %.3f %.3f %.3f\n", bg.R, bg.G, bg.B, bg.A); err != nil {
		return err
	}
	for i, c := range r.Commands {
		_, err := fmt.Fprintf(w, "%d: %s count=%d upload=%d vertices (%d+%d bytes)\n",
			i, c.Primitive, c.Batch.Count, c.VertexCount, len(c.Positions), len(c.Colors))
		if err != nil {
			return err
		}
	}
	return nil
}
