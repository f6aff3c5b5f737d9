package control

import (
	"fmt"
	"strings"
)

// graph is a directed multigraph of block names with signal-labeled edges.
// The Builder constructs two of them: the full graph, kept on the System for
// diagnostics, and a delay-filtered one used exclusively for scheduling. The
// two never mix.
type graph struct {
	nodes []string
	index map[string]int
	succ  [][]int
	edges []gedge
}

type gedge struct {
	from, to int
	signal   string
}

func newGraph() *graph {
	return &graph{index: make(map[string]int)}
}

func (g *graph) addNode(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, name)
	g.succ = append(g.succ, nil)
}

func (g *graph) addEdge(from, to, signal string) {
	f, t := g.index[from], g.index[to]
	g.succ[f] = append(g.succ[f], t)
	g.edges = append(g.edges, gedge{from: f, to: t, signal: signal})
}

// topoSort returns the node names in an order where every edge goes from an
// earlier node to a later one. Nodes are visited in insertion order, so the
// result is stable across rebuilds. A cycle yields a *CycleError naming one
// block on it.
func (g *graph) topoSort() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	var visit func(n int) error
	visit = func(n int) error {
		switch state[n] {
		case visiting:
			return &CycleError{Block: g.nodes[n]}
		case done:
			return nil
		}
		state[n] = visiting
		for _, m := range g.succ[n] {
			if err := visit(m); err != nil {
				return err
			}
		}
		state[n] = done
		order = append(order, g.nodes[n])
		return nil
	}

	for n := range g.nodes {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	// visit appends in dependents-first postorder; reverse it.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// dot renders the graph in Graphviz dot syntax, for external visualization
// tooling. Nodes and edges appear in insertion order.
func (g *graph) dot(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", name)
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "\t%q;\n", n)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "\t%q -> %q [label=%q];\n", g.nodes[e.from], g.nodes[e.to], e.signal)
	}
	b.WriteString("}\n")
	return b.String()
}
