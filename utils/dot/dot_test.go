package dot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDot(t *testing.T) {
	entry := &DotNode{ID: "b0", Attrs: DotAttrs{"label": "entry", "fillcolor": "honeydew"}}
	exit := &DotNode{ID: "b1", Attrs: DotAttrs{"label": "return x"}}
	g := &DotGraph{
		Title: "abs",
		Nodes: []*DotNode{entry, exit},
		Edges: []*DotEdge{{From: entry, To: exit, Attrs: DotAttrs{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, g.WriteDot(&buf))
	out := buf.String()

	assert.Contains(t, out, `label="abs";`)
	assert.Contains(t, out, `rankdir="TB";`)
	assert.Contains(t, out, `"b0" [ fillcolor="honeydew"; label="entry"; ]`)
	assert.Contains(t, out, `"b0" -> "b1" [  ]`)
}

func TestDotAttrsSorted(t *testing.T) {
	attrs := DotAttrs{"shape": "box", "color": "red", "label": "x\ny"}
	assert.Equal(t, []string{`color="red";`, `label="x\ny";`, `shape="box";`}, attrs.List())
}
