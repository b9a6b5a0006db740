package mindmap

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

var branchPalette = map[domain.BranchColor]*color.Color{
	domain.ColorPurple: color.New(color.FgMagenta, color.Bold),
	domain.ColorOrange: color.New(color.FgYellow, color.Bold),
	domain.ColorBlue:   color.New(color.FgBlue, color.Bold),
}

var centerStyle = color.New(color.FgCyan, color.Bold)

// WriteTree renders the layout as a colored tree. It walks the computed
// layout rather than the raw data so the truncation rule and node order
// match every other renderer.
func WriteTree(w io.Writer, layout Layout) {
	items := make(map[string][]Node)
	var branches []Node
	for _, node := range layout.Nodes {
		switch node.Kind {
		case KindCenter:
			fmt.Fprintf(w, "%s\n", centerStyle.Sprint(node.Label))
		case KindBranch:
			branches = append(branches, node)
		}
	}
	for _, edge := range layout.Edges {
		for _, node := range layout.Nodes {
			if node.ID == edge.Target && node.Kind == KindItem {
				items[edge.Source] = append(items[edge.Source], node)
			}
		}
	}

	for i, branch := range branches {
		connector := "├─"
		childPrefix := "│  "
		if i == len(branches)-1 {
			connector = "└─"
			childPrefix = "   "
		}
		style, ok := branchPalette[branch.Color]
		if !ok {
			style = centerStyle
		}
		side := "right"
		if branch.Left {
			side = "left"
		}
		fmt.Fprintf(w, "%s %s %s\n", connector, style.Sprint(branch.Label), color.HiBlackString("(%s)", side))
		for _, item := range items[branch.ID] {
			fmt.Fprintf(w, "%s• %s\n", childPrefix, item.Label)
		}
	}
}
