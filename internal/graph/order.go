package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrCycle is returned by StageOrder when connections form a loop.
var ErrCycle = errors.New("stage graph has a cycle")

// StageOrder returns blocks in an order where every block comes after all
// blocks feeding it. Ties keep insertion order.
func (s *Store) StageOrder() ([]Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dg := simple.NewDirectedGraph()
	index := make(map[string]int64, len(s.order))
	for i, id := range s.order {
		index[id] = int64(i)
		dg.AddNode(simple.Node(i))
	}
	for _, c := range s.connections {
		dg.SetEdge(dg.NewEdge(simple.Node(index[c.From]), simple.Node(index[c.To])))
	}

	sorted, err := topo.SortStabilized(dg, byID)
	if err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) {
			return nil, fmt.Errorf("%w: %s", ErrCycle, s.describeCycles(cycles))
		}
		return nil, err
	}

	out := make([]Block, 0, len(sorted))
	for _, n := range sorted {
		out = append(out, s.blocks[s.order[n.ID()]].clone())
	}
	return out, nil
}

func byID(nodes []gonum.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}

func (s *Store) describeCycles(cycles topo.Unorderable) string {
	parts := make([]string, 0, len(cycles))
	for _, comp := range cycles {
		byID(comp)
		titles := make([]string, 0, len(comp))
		for _, n := range comp {
			titles = append(titles, s.blocks[s.order[n.ID()]].Title)
		}
		parts = append(parts, strings.Join(titles, ", "))
	}
	return strings.Join(parts, "; ")
}
