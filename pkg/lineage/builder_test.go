package lineage

import (
	"reflect"
	"testing"

	"github.com/warden-ai/warden/pkg/models"
)

func testNodes(n int) []models.LineageNode {
	nodes := make([]models.LineageNode, 0, n)
	types := []models.NodeType{models.NodeExternalAgent, models.NodeWorkflow, models.NodeWebhook}
	for i := 0; i < n; i++ {
		nodes = append(nodes, models.LineageNode{
			ID:    string(rune('a' + i)),
			Type:  types[i%len(types)],
			Label: "node",
		})
	}
	return nodes
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(nil, nil)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 || g.DroppedEdges != 0 {
		t.Errorf("expected empty graph, got %+v", g)
	}
}

func TestBuildGraphRowZeroPositions(t *testing.T) {
	g := BuildGraph(testNodes(3), nil)

	want := [][2]int{{0, 0}, {300, 0}, {600, 0}}
	for i, n := range g.Nodes {
		if n.X != want[i][0] || n.Y != want[i][1] {
			t.Errorf("node %d: expected (%d,%d), got (%d,%d)", i, want[i][0], want[i][1], n.X, n.Y)
		}
	}
}

func TestBuildGraphWrapsToSecondRow(t *testing.T) {
	g := BuildGraph(testNodes(4), nil)

	fourth := g.Nodes[3]
	if fourth.X != 0 || fourth.Y != 150 {
		t.Errorf("expected fourth node at (0,150), got (%d,%d)", fourth.X, fourth.Y)
	}
}

func TestBuildGraphDeterministic(t *testing.T) {
	nodes := testNodes(7)
	edges := []models.LineageEdge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "c"},
	}

	g1 := BuildGraph(nodes, edges)
	g2 := BuildGraph(nodes, edges)

	if !reflect.DeepEqual(g1, g2) {
		t.Error("identical input should produce identical graphs")
	}
}

func TestBuildGraphDropsDanglingEdges(t *testing.T) {
	nodes := testNodes(2)
	edges := []models.LineageEdge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "missing"},
		{ID: "e3", Source: "b", Target: "a"},
	}

	g := BuildGraph(nodes, edges)

	if g.DroppedEdges != 1 {
		t.Errorf("expected 1 dropped edge, got %d", g.DroppedEdges)
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 renderable edges, got %d", len(g.Edges))
	}
	if g.Edges[0].ID != "e1" || g.Edges[1].ID != "e3" {
		t.Errorf("valid edges should survive in order: %+v", g.Edges)
	}
}

func TestBuildGraphNodeColors(t *testing.T) {
	nodes := []models.LineageNode{
		{ID: "n1", Type: models.NodeExternalAgent},
		{ID: "n2", Type: models.NodeWorkflow},
		{ID: "n3", Type: models.NodeWebhook},
		{ID: "n4", Type: "something_new"},
	}

	g := BuildGraph(nodes, nil)

	want := []string{"purple", "blue", "gray", "gray"}
	for i, n := range g.Nodes {
		if n.Color != want[i] {
			t.Errorf("node %s: expected %s, got %s", n.ID, want[i], n.Color)
		}
	}
}

func TestBuildGraphProviderIcons(t *testing.T) {
	nodes := []models.LineageNode{
		{ID: "n1", Provider: "slack"},
		{ID: "n2", Provider: "discord"},
		{ID: "n3", Provider: "carrier-pigeon"},
		{ID: "n4"},
	}

	g := BuildGraph(nodes, nil)

	want := []string{"slack", "discord", "webhook", "webhook"}
	for i, n := range g.Nodes {
		if n.Icon != want[i] {
			t.Errorf("node %s: expected icon %s, got %s", n.ID, want[i], n.Icon)
		}
	}
}
