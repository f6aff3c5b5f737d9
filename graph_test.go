package control

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSortDiamond(t *testing.T) {
	g := newGraph()
	for _, n := range []string{"a", "b", "c", "d"} {
		g.addNode(n)
	}
	g.addEdge("a", "b", "s1")
	g.addEdge("a", "c", "s2")
	g.addEdge("b", "d", "s3")
	g.addEdge("c", "d", "s4")

	order, err := g.topoSort()
	require.NoError(t, err)
	require.Len(t, order, 4)
	idx := func(n string) int { return slices.Index(order, n) }
	assert.Less(t, idx("a"), idx("b"))
	assert.Less(t, idx("a"), idx("c"))
	assert.Less(t, idx("b"), idx("d"))
	assert.Less(t, idx("c"), idx("d"))
}

func TestTopoSortCycle(t *testing.T) {
	g := newGraph()
	g.addNode("a")
	g.addNode("b")
	g.addEdge("a", "b", "s1")
	g.addEdge("b", "a", "s2")

	_, err := g.topoSort()
	var cyc *CycleError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, "a", cyc.Block)
}

func TestGraphDot(t *testing.T) {
	g := newGraph()
	g.addNode("a")
	g.addNode("b")
	g.addNode("b") // duplicates collapse
	g.addEdge("a", "b", "s")

	want := "digraph \"g\" {\n\t\"a\";\n\t\"b\";\n\t\"a\" -> \"b\" [label=\"s\"];\n}\n"
	assert.Equal(t, want, g.dot("g"))
}
