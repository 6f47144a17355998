// Package loam serves blueprint templates from a Loam document repository.
//
// A template is a Markdown (or YAML/JSON) document whose frontmatter holds the
// blueprint header and whose body holds the root spec, either bare or inside
// a ```yaml fenced block:
//
//	---
//	name: products
//	seed: products seed
//	count: 10
//	---
//	Catalogue entries for the storefront demo.
//
//	```yaml
//	kind: objects
//	fields:
//	  id: {kind: integers, min: 1, max: 100000}
//	```
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/randomizer/pkg/domain"
)

// Library adapts a Loam repository to ports.TemplateLibrary.
type Library struct {
	Repo *loam.TypedRepository[TemplateMetadata]
}

// New creates a library over an existing typed repository.
func New(repo *loam.TypedRepository[TemplateMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path.
func Open(path string) (*Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Templates are only ever read; read-only mode also keeps Loam from
	// setting up its development sandbox.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[TemplateMetadata](repo)), nil
}

// Get assembles the blueprint document of template id.
func (l *Library) Get(ctx context.Context, id string) ([]byte, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, domain.ErrTemplateNotFound)
	}

	meta := doc.Data
	if meta.Name == "" {
		meta.Name = trimExtension(doc.ID)
	}
	return assemble(meta, doc.Content)
}

// List describes every template in the repository.
func (l *Library) List(ctx context.Context) ([]domain.TemplateInfo, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	infos := make([]domain.TemplateInfo, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		name := doc.Data.Name
		if name == "" {
			name = id
		}
		infos = append(infos, domain.TemplateInfo{ID: id, Name: name, Description: doc.Data.Description})
	}

	slices.SortFunc(infos, func(a, b domain.TemplateInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// assemble merges the frontmatter header with the root spec found in body.
func assemble(meta TemplateMetadata, body string) ([]byte, error) {
	header := map[string]any{}
	if err := mapstructure.Decode(meta, &header); err != nil {
		return nil, fmt.Errorf("failed to decode template metadata: %w", err)
	}
	delete(header, "id")
	for key, value := range header {
		if value == "" || value == 0 {
			delete(header, key)
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(specBlock(body)), &root); err != nil {
		return nil, fmt.Errorf("template %q: failed to parse body: %w", meta.Name, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("template %q: body holds no spec", meta.Name)
	}
	header["root"] = root.Content[0]

	out, err := yaml.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", meta.Name, err)
	}
	return out, nil
}

// specBlock returns the first ```yaml (or ```yml) fenced block of body, or the
// whole body when it has none.
func specBlock(body string) string {
	lines := strings.Split(body, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == "```yaml" || trimmed == "```yml" {
				start = i + 1
			}
			continue
		}
		if trimmed == "```" {
			return strings.Join(lines[start:i], "\n")
		}
	}
	return body
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
