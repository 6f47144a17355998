package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/randomizer/internal/presentation"
)

// Options selects which keys of a tree node drive the chart.
type Options struct {
	// Children is the key holding a node's child list.
	Children string
	// Label is the key whose value names a node. When empty or absent the
	// node path is used.
	Label string
}

// GenerateMermaid produces a Mermaid flowchart of composite trees.
// It applies structural styling:
// - Root: ((Circle))
// - Inner node: [[Subroutine]]
// - Leaf: [Rectangle]
// Values that are not records are skipped.
func GenerateMermaid(roots []any, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, root := range roots {
		writeNode(&sb, root, fmt.Sprintf("n%d", i), "", opts)
	}

	sb.WriteString("\n    classDef leaf fill:#e1f5fe,stroke:#01579b,color:#000;\n")
	return sb.String()
}

func writeNode(sb *strings.Builder, node any, id, parent string, opts Options) {
	entries, ok := presentation.Entries(node)
	if !ok {
		return
	}

	label := id
	var children []any
	for _, e := range entries {
		switch e.Key {
		case opts.Label:
			if opts.Label == "" {
				continue
			}
			label = presentation.Scalar(e.Value)
		case opts.Children:
			children, _ = presentation.List(e.Value)
		}
	}
	label = strings.ReplaceAll(label, "\"", "'")

	opener, closer := "[", "]"
	switch {
	case parent == "":
		opener, closer = "((", "))"
	case len(children) > 0:
		opener, closer = "[[", "]]"
	}

	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)
	if parent != "" {
		fmt.Fprintf(sb, "    %s --> %s\n", parent, id)
	}
	if parent != "" && len(children) == 0 {
		fmt.Fprintf(sb, "    class %s leaf;\n", id)
	}

	for i, child := range children {
		writeNode(sb, child, fmt.Sprintf("%s_%d", id, i), id, opts)
	}
}
