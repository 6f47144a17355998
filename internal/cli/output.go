package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/randomizer/internal/presentation"
	"github.com/aretw0/randomizer/internal/presentation/graph"
	"github.com/aretw0/randomizer/internal/presentation/tui"
	"github.com/aretw0/randomizer/pkg/domain"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// OutputOptions tunes WriteFixture.
type OutputOptions struct {
	Format string
	// ValuesOnly drops the fixture envelope from json and yaml output.
	ValuesOnly bool
	// Children and Label drive the mermaid format.
	Children string
	Label    string
}

// WriteFixture encodes f to w.
func WriteFixture(w io.Writer, f *domain.Fixture, opts OutputOptions) error {
	switch opts.Format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if opts.ValuesOnly {
			return enc.Encode(f.Values)
		}
		return enc.Encode(f)

	case FormatYAML:
		node, err := fixtureNode(f, opts.ValuesOnly)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()

	case FormatMarkdown:
		md := tui.Markdown(f)
		if isTerminal(w) {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(w, md)
		return err

	case FormatMermaid:
		if opts.Children == "" {
			return fmt.Errorf("mermaid output needs the children key")
		}
		_, err := io.WriteString(w, graph.GenerateMermaid(f.Values, graph.Options{Children: opts.Children, Label: opts.Label}))
		return err
	}
	return fmt.Errorf("unknown format %q (want json, yaml, markdown or mermaid)", opts.Format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func fixtureNode(f *domain.Fixture, valuesOnly bool) (*yaml.Node, error) {
	values, err := valueNode(f.Values)
	if err != nil {
		return nil, err
	}
	if valuesOnly {
		return values, nil
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, v any) error {
		n, err := valueNode(v)
		if err != nil {
			return err
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, n)
		return nil
	}
	for _, e := range []presentation.Entry{
		{Key: "id", Value: f.ID},
		{Key: "blueprint", Value: f.Blueprint},
		{Key: "seed", Value: f.Seed},
		{Key: "workers", Value: f.Workers},
		{Key: "created_at", Value: f.CreatedAt},
	} {
		if err := add(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "values"}, values)
	return root, nil
}

// valueNode converts a produced value keeping the key order of Objects.
func valueNode(v any) (*yaml.Node, error) {
	if entries, ok := presentation.Entries(v); ok {
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range entries {
			child, err := valueNode(e.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}, child)
		}
		return n, nil
	}

	if t, ok := v.(time.Time); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.UTC().Format(time.RFC3339Nano)}, nil
	}

	if list, ok := presentation.List(v); ok {
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range list {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	}

	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return &n, nil
}
