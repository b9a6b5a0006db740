package mindmap

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

func sampleData() domain.MindmapData {
	return domain.MindmapData{
		MainTopic: "Report",
		Branches: []domain.MindmapBranch{
			{Title: "Alpha", Color: domain.ColorPurple, Items: []string{"one", "two"}},
			{Title: "Beta", Color: domain.ColorOrange, Items: []string{"three"}},
			{Title: "Gamma", Color: domain.ColorBlue, Items: []string{"four"}},
		},
	}
}

func findNode(t *testing.T, layout Layout, id string) Node {
	t.Helper()
	for _, n := range layout.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %q not found", id)
	return Node{}
}

func TestComputeCenterNode(t *testing.T) {
	layout := Compute(sampleData())
	center := findNode(t, layout, "center")
	if center.X != 400 || center.Y != 300 {
		t.Fatalf("center at (%d,%d), want (400,300)", center.X, center.Y)
	}
	if center.Label != "Report" {
		t.Fatalf("center label %q", center.Label)
	}
}

func TestComputeBranchesAlternateSides(t *testing.T) {
	layout := Compute(sampleData())

	b0 := findNode(t, layout, "branch-0")
	if !b0.Left || b0.X != 180 || b0.Y != 150 {
		t.Fatalf("branch-0 at (%d,%d) left=%v, want (180,150) left", b0.X, b0.Y, b0.Left)
	}
	b1 := findNode(t, layout, "branch-1")
	if b1.Left || b1.X != 620 || b1.Y != 150 {
		t.Fatalf("branch-1 at (%d,%d) left=%v, want (620,150) right", b1.X, b1.Y, b1.Left)
	}
	// Third branch starts the second row.
	b2 := findNode(t, layout, "branch-2")
	if !b2.Left || b2.X != 180 || b2.Y != 310 {
		t.Fatalf("branch-2 at (%d,%d), want (180,310)", b2.X, b2.Y)
	}
}

func TestComputeItemsStackOutward(t *testing.T) {
	layout := Compute(sampleData())

	// Items of the first (left) branch sit 250 further left, stacked by 55.
	i1 := findNode(t, layout, "item-1")
	if i1.X != 180-250 || i1.Y != 150-60 {
		t.Fatalf("item-1 at (%d,%d), want (-70,90)", i1.X, i1.Y)
	}
	i2 := findNode(t, layout, "item-2")
	if i2.X != i1.X || i2.Y != i1.Y+55 {
		t.Fatalf("item-2 at (%d,%d), want (%d,%d)", i2.X, i2.Y, i1.X, i1.Y+55)
	}
	// First item of the second (right) branch sits 250 further right.
	i3 := findNode(t, layout, "item-3")
	if i3.X != 620+250 || i3.Y != 150-60 {
		t.Fatalf("item-3 at (%d,%d), want (870,90)", i3.X, i3.Y)
	}
}

func TestComputeEdgesConnectTreeLevels(t *testing.T) {
	layout := Compute(sampleData())
	// One edge per branch plus one per item.
	if len(layout.Edges) != 3+4 {
		t.Fatalf("expected 7 edges, got %d", len(layout.Edges))
	}
	first := layout.Edges[0]
	if first.Source != "center" || first.Target != "branch-0" || first.Color != domain.ColorPurple {
		t.Fatalf("unexpected first edge: %+v", first)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	a := Compute(sampleData())
	b := Compute(sampleData())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("layout must be deterministic for identical input")
	}
}

func TestTruncateLabelBoundary(t *testing.T) {
	exact := strings.Repeat("a", 20)
	if got := TruncateLabel(exact); got != exact {
		t.Fatalf("20-char label must pass through, got %q", got)
	}
	over := strings.Repeat("a", 21)
	if got := TruncateLabel(over); got != exact+"..." {
		t.Fatalf("21-char label must truncate, got %q", got)
	}
	// Rune-aware: multibyte labels are not cut mid-character.
	cyrillic := strings.Repeat("ё", 21)
	if got := TruncateLabel(cyrillic); got != strings.Repeat("ё", 20)+"..." {
		t.Fatalf("multibyte truncation wrong: %q", got)
	}
}

func TestPlaceholderLayoutShape(t *testing.T) {
	layout := Compute(domain.PlaceholderMindmap("doc.pdf"))
	// Center + 2 branches + 5 items.
	if len(layout.Nodes) != 8 {
		t.Fatalf("expected 8 nodes, got %d", len(layout.Nodes))
	}
	if findNode(t, layout, "center").Label != "doc.pdf" {
		t.Fatalf("placeholder center should carry the filename")
	}
	if findNode(t, layout, "branch-0").Color != domain.ColorPurple {
		t.Fatalf("first placeholder branch should be purple")
	}
	if findNode(t, layout, "branch-1").Color != domain.ColorOrange {
		t.Fatalf("second placeholder branch should be orange")
	}
}
