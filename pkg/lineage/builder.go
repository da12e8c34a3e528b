package lineage

import (
	"github.com/warden-ai/warden/pkg/models"
)

// Grid layout constants. Nodes are placed left to right, top to
// bottom, in input order. The grid is fixed rather than derived from
// content so that positions are reproducible without a layout engine.
const (
	GridColumns = 3
	ColumnWidth = 300
	RowHeight   = 150
)

// Node colors by type.
const (
	ColorExternalAgent = "purple"
	ColorWorkflow      = "blue"
	ColorDefault       = "gray"
)

// PositionedNode is a lineage node with layout and presentation
// metadata attached.
type PositionedNode struct {
	models.LineageNode
	X     int
	Y     int
	Color string
	Icon  string
}

// Graph is the renderable form of a lineage payload. Edges that
// referenced unknown nodes are excluded and tallied in DroppedEdges.
type Graph struct {
	Nodes        []PositionedNode
	Edges        []models.LineageEdge
	DroppedEdges int
}

var providerIcons = map[string]string{
	"slack":    "slack",
	"teams":    "teams",
	"discord":  "discord",
	"telegram": "telegram",
	"notion":   "notion",
}

// BuildGraph assigns deterministic grid positions and presentation
// metadata to the given lineage payload. An empty node list yields an
// empty graph, the valid "no lineage data yet" state. Edges whose
// source or target id is missing from the node list are dropped and
// counted; a dangling reference is a data-quality problem, not a
// fatal one, so remaining edges are still processed.
func BuildGraph(nodes []models.LineageNode, edges []models.LineageEdge) Graph {
	g := Graph{
		Nodes: make([]PositionedNode, 0, len(nodes)),
		Edges: make([]models.LineageEdge, 0, len(edges)),
	}

	known := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		known[n.ID] = true
		g.Nodes = append(g.Nodes, PositionedNode{
			LineageNode: n,
			X:           (i % GridColumns) * ColumnWidth,
			Y:           (i / GridColumns) * RowHeight,
			Color:       nodeColor(n.Type),
			Icon:        providerIcon(n.Provider),
		})
	}

	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			g.DroppedEdges++
			continue
		}
		g.Edges = append(g.Edges, e)
	}
	return g
}

func nodeColor(t models.NodeType) string {
	switch t {
	case models.NodeExternalAgent:
		return ColorExternalAgent
	case models.NodeWorkflow:
		return ColorWorkflow
	default:
		return ColorDefault
	}
}

// providerIcon maps a provider to its icon identifier. Unknown
// providers fall back to the generic webhook icon.
func providerIcon(provider string) string {
	if icon, ok := providerIcons[provider]; ok {
		return icon
	}
	return "webhook"
}
