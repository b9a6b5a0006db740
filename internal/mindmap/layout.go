// Package mindmap computes the fixed bipartite-tree layout for AI-generated
// mindmap data. Positions are pure arithmetic over branch/item indexes; the
// same input always yields the same nodes, edges and labels, which the
// visual-regression tests rely on.
package mindmap

import (
	"fmt"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

const (
	centerX = 400
	centerY = 300

	branchLeftX   = 180
	branchRightX  = 620
	branchBaseY   = 150
	branchRowStep = 160

	itemOffsetX = 250
	itemStartY  = -60
	itemStepY   = 55

	maxItemLabelLen = 20
)

type NodeKind int

const (
	KindCenter NodeKind = iota
	KindBranch
	KindItem
)

type Node struct {
	ID    string
	Kind  NodeKind
	Label string
	Color domain.BranchColor
	X     int
	Y     int
	Left  bool
}

type Edge struct {
	ID     string
	Source string
	Target string
	Color  domain.BranchColor
}

type Layout struct {
	Nodes []Node
	Edges []Edge
}

// Compute lays out the tree: one center node, branches alternating
// left/right at increasing vertical offsets, items stacked outward from
// their branch. Only item labels truncate.
func Compute(data domain.MindmapData) Layout {
	layout := Layout{
		Nodes: []Node{{
			ID:    "center",
			Kind:  KindCenter,
			Label: data.MainTopic,
			X:     centerX,
			Y:     centerY,
		}},
	}

	itemCounter := 1
	for branchIndex, branch := range data.Branches {
		isLeft := branchIndex%2 == 0
		branchX := branchRightX
		if isLeft {
			branchX = branchLeftX
		}
		branchY := branchBaseY + (branchIndex/2)*branchRowStep

		branchID := fmt.Sprintf("branch-%d", branchIndex)
		layout.Nodes = append(layout.Nodes, Node{
			ID:    branchID,
			Kind:  KindBranch,
			Label: branch.Title,
			Color: branch.Color,
			X:     branchX,
			Y:     branchY,
			Left:  isLeft,
		})
		layout.Edges = append(layout.Edges, Edge{
			ID:     fmt.Sprintf("center-%s", branchID),
			Source: "center",
			Target: branchID,
			Color:  branch.Color,
		})

		itemX := branchX + itemOffsetX
		if isLeft {
			itemX = branchX - itemOffsetX
		}
		for itemIndex, item := range branch.Items {
			itemID := fmt.Sprintf("item-%d", itemCounter)
			layout.Nodes = append(layout.Nodes, Node{
				ID:    itemID,
				Kind:  KindItem,
				Label: TruncateLabel(item),
				Color: branch.Color,
				X:     itemX,
				Y:     branchY + itemStartY + itemIndex*itemStepY,
				Left:  isLeft,
			})
			layout.Edges = append(layout.Edges, Edge{
				ID:     fmt.Sprintf("%s-%s", branchID, itemID),
				Source: branchID,
				Target: itemID,
				Color:  branch.Color,
			})
			itemCounter++
		}
	}

	return layout
}

// TruncateLabel shortens item labels over 20 characters to the first 20
// plus an ellipsis. Labels of exactly 20 or fewer pass through unchanged.
func TruncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxItemLabelLen {
		return label
	}
	return string(runes[:maxItemLabelLen]) + "..."
}
