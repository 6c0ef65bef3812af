package graph

import (
	"fmt"
	"html"
	"strings"

	"github.com/msalah0e/tourney/internal/block"
)

// ExportDOT returns the graph in Graphviz DOT format. Nodes are pinned to
// their canvas positions so `neato -n` reproduces the layout.
func (s *Store) ExportDOT() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", s.name)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, id := range s.order {
		blk := s.blocks[id]
		label := blk.Title + "\\n(" + block.Label(blk.Kind) + ")"
		fmt.Fprintf(&b, "  %q [label=%q, pos=\"%g,%g!\"];\n", id, label, blk.Position.X, -blk.Position.Y)
	}

	b.WriteString("\n")
	for _, c := range s.connections {
		fmt.Fprintf(&b, "  %q -> %q;\n", c.From, c.To)
	}

	b.WriteString("}\n")
	return b.String()
}

// Canvas block size used by ExportHTML.
const (
	svgBlockWidth  = 180
	svgBlockHeight = 60
	svgMargin      = 40
)

// ExportHTML returns a self-contained HTML page drawing the canvas as SVG.
func (s *Store) ExportHTML() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	width, height := float64(svgBlockWidth+2*svgMargin), float64(svgBlockHeight+2*svgMargin)
	for _, blk := range s.blocks {
		width = max(width, blk.Position.X+svgBlockWidth+2*svgMargin)
		height = max(height, blk.Position.Y+svgBlockHeight+2*svgMargin)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n<title>%s</title>\n", html.EscapeString(s.name))
	b.WriteString("<style>body{background:#0a0e17;color:#e0e0e0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif}" +
		"rect{fill:#111827;stroke:#2DB682;stroke-width:1.5}line{stroke:#0171E3;stroke-width:2}" +
		".title{fill:#e0e0e0;font-size:13px;font-weight:600}.kind{fill:#888;font-size:11px}</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(s.name))
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\">\n", width, height)
	b.WriteString("<defs><marker id=\"arrow\" viewBox=\"0 0 10 10\" refX=\"10\" refY=\"5\" markerWidth=\"8\" markerHeight=\"8\" orient=\"auto\">" +
		"<path d=\"M0,0 L10,5 L0,10 z\" fill=\"#0171E3\"/></marker></defs>\n")

	for _, c := range s.connections {
		from, to := s.blocks[c.From], s.blocks[c.To]
		fmt.Fprintf(&b, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" marker-end=\"url(#arrow)\"/>\n",
			from.Position.X+svgMargin+svgBlockWidth, from.Position.Y+svgMargin+svgBlockHeight/2,
			to.Position.X+svgMargin, to.Position.Y+svgMargin+svgBlockHeight/2)
	}
	for _, id := range s.order {
		blk := s.blocks[id]
		x, y := blk.Position.X+svgMargin, blk.Position.Y+svgMargin
		fmt.Fprintf(&b, "<g><rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%d\" rx=\"8\"/>", x, y, svgBlockWidth, svgBlockHeight)
		fmt.Fprintf(&b, "<text class=\"title\" x=\"%g\" y=\"%g\">%s</text>", x+10, y+24, html.EscapeString(blk.Title))
		fmt.Fprintf(&b, "<text class=\"kind\" x=\"%g\" y=\"%g\">%s</text></g>\n", x+10, y+44, html.EscapeString(block.Label(blk.Kind)))
	}

	b.WriteString("</svg>\n</body>\n</html>\n")
	return b.String()
}
