package mindmap

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

var svgFills = map[domain.BranchColor]string{
	domain.ColorPurple: "#8B5CF6",
	domain.ColorOrange: "#F59E0B",
	domain.ColorBlue:   "#3B82F6",
}

const svgCenterFill = "#4F46E5"

// WriteSVG serializes the layout as a standalone SVG document. Output is
// deterministic for identical layouts.
func WriteSVG(w io.Writer, layout Layout) error {
	width, height := canvasBounds(layout)

	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)

	positions := make(map[string]Node, len(layout.Nodes))
	for _, node := range layout.Nodes {
		positions[node.ID] = node
	}
	for _, edge := range layout.Edges {
		from, okFrom := positions[edge.Source]
		to, okTo := positions[edge.Target]
		if !okFrom || !okTo {
			continue
		}
		stroke := svgFills[edge.Color]
		if stroke == "" {
			stroke = svgCenterFill
		}
		fmt.Fprintf(w, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
			from.X, from.Y, to.X, to.Y, stroke)
	}
	for _, node := range layout.Nodes {
		fill := svgCenterFill
		if node.Kind != KindCenter {
			if f, ok := svgFills[node.Color]; ok {
				fill = f
			}
		}
		var label string
		if err := escapeText(&label, node.Label); err != nil {
			return err
		}
		fmt.Fprintf(w, `  <rect x="%d" y="%d" width="160" height="36" rx="12" fill="%s"/>`+"\n",
			node.X-80, node.Y-18, fill)
		fmt.Fprintf(w, `  <text x="%d" y="%d" text-anchor="middle" fill="#FFFFFF" font-size="12">%s</text>`+"\n",
			node.X, node.Y+4, label)
	}
	_, err := fmt.Fprintln(w, "</svg>")
	return err
}

func canvasBounds(layout Layout) (int, int) {
	width, height := 2*centerX, 2*centerY
	for _, node := range layout.Nodes {
		if node.X+200 > width {
			width = node.X + 200
		}
		if node.Y+100 > height {
			height = node.Y + 100
		}
	}
	return width, height
}

func escapeText(dst *string, s string) error {
	var buf xmlBuffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return fmt.Errorf("escape svg label: %w", err)
	}
	*dst = string(buf)
	return nil
}

type xmlBuffer []byte

func (b *xmlBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
