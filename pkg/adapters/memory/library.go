package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/schema"
)

// Library implements ports.TemplateLibrary over in-memory documents.
type Library struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewLibrary creates a library from raw blueprint documents keyed by ID.
func NewLibrary(docs map[string][]byte) *Library {
	l := &Library{docs: make(map[string][]byte, len(docs))}
	for id, doc := range docs {
		l.docs[id] = slices.Clone(doc)
	}
	return l
}

// Put adds or replaces a template.
func (l *Library) Put(id string, doc []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[id] = slices.Clone(doc)
}

// Get returns the raw document.
func (l *Library) Get(ctx context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.docs[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return slices.Clone(doc), nil
}

// List describes the templates, sorted by ID. Documents that fail to parse
// are listed under their ID only.
func (l *Library) List(ctx context.Context) ([]domain.TemplateInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	infos := make([]domain.TemplateInfo, 0, len(l.docs))
	for id, doc := range l.docs {
		info := domain.TemplateInfo{ID: id, Name: id}
		if bp, err := schema.Parse(doc); err == nil {
			info.Name = bp.Name
			info.Description = bp.Description
		}
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b domain.TemplateInfo) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return infos, nil
}
