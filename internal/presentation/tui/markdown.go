package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/randomizer/internal/presentation"
	"github.com/aretw0/randomizer/pkg/domain"
)

// Markdown lays a fixture out as nested markdown lists.
func Markdown(f *domain.Fixture) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", f.Blueprint)
	fmt.Fprintf(&sb, "seed `%s` · id `%s`", f.Seed, f.ID)
	if f.Workers > 0 {
		fmt.Fprintf(&sb, " · %d workers", f.Workers)
	}
	sb.WriteString("\n\n")

	for i, v := range f.Values {
		if isLeaf(v) {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, inline(v))
			continue
		}
		fmt.Fprintf(&sb, "%d.\n", i+1)
		writeNested(&sb, v, 1)
	}
	return sb.String()
}

func writeNested(sb *strings.Builder, v any, depth int) {
	indent := strings.Repeat("   ", depth)

	if entries, ok := presentation.Entries(v); ok {
		for _, e := range entries {
			if isLeaf(e.Value) {
				fmt.Fprintf(sb, "%s- **%s**: %s\n", indent, e.Key, inline(e.Value))
				continue
			}
			fmt.Fprintf(sb, "%s- **%s**:\n", indent, e.Key)
			writeNested(sb, e.Value, depth+1)
		}
		return
	}

	list, _ := presentation.List(v)
	if len(list) == 0 {
		fmt.Fprintf(sb, "%s- *(empty)*\n", indent)
		return
	}
	for _, item := range list {
		if isLeaf(item) {
			fmt.Fprintf(sb, "%s- %s\n", indent, inline(item))
			continue
		}
		fmt.Fprintf(sb, "%s-\n", indent)
		writeNested(sb, item, depth+1)
	}
}

// isLeaf reports whether v prints on a single line.
func isLeaf(v any) bool {
	if _, ok := presentation.Entries(v); ok {
		return false
	}
	list, ok := presentation.List(v)
	if !ok {
		return true
	}
	for _, item := range list {
		if !isLeaf(item) {
			return false
		}
	}
	return len(list) > 0
}

func inline(v any) string {
	list, ok := presentation.List(v)
	if !ok {
		return presentation.Scalar(v)
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = presentation.Scalar(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
