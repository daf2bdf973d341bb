package assume

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/absdom/utils"
	"github.com/cs-au-dk/absdom/utils/dot"
)

// Graph builds the control-flow graph of the function, with every block
// labelled by its instructions and the assumptions at its exit.
func (r *Result) Graph() *dot.DotGraph {
	noColorize := utils.Opts().NoColorize()
	utils.Opts().SetNoColorize(true)
	defer utils.Opts().SetNoColorize(noColorize)

	g := &dot.DotGraph{
		Title:   r.Function.String(),
		Options: map[string]string{"minlen": "1"},
	}

	nodes := make([]*dot.DotNode, len(r.Function.Blocks))
	for i, b := range r.Function.Blocks {
		lines := []string{fmt.Sprintf("%d: %s", b.Index, b.Comment)}
		for _, insn := range b.Instrs {
			lines = append(lines, insn.String())
		}

		attrs := dot.DotAttrs{"fillcolor": "lightgrey"}
		if out, ok := r.Out[b]; ok {
			lines = append(lines, "")
			for _, v := range out.Variables() {
				e, _ := out.Get(v)
				lines = append(lines, v.Name()+" ↦ "+e.String())
			}
			attrs["fillcolor"] = "honeydew"
		}
		attrs["label"] = strings.Join(lines, "\n")

		nodes[i] = &dot.DotNode{ID: fmt.Sprintf("b%d", b.Index), Attrs: attrs}
	}
	g.Nodes = nodes

	for _, b := range r.Function.Blocks {
		for _, succ := range b.Succs {
			g.Edges = append(g.Edges, &dot.DotEdge{
				From:  nodes[b.Index],
				To:    nodes[succ.Index],
				Attrs: dot.DotAttrs{},
			})
		}
	}
	return g
}

// Visualize renders the annotated control-flow graph of the function.
func (r *Result) Visualize(outfname, format string) (string, error) {
	return r.Graph().Render(outfname, format)
}
