package splitter

import (
	"strings"
	"sync"
)

// Registry maps strategy names to factories
type Registry struct {
	mux       sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with the built-in strategies registered
func NewRegistry() *Registry {
	registry := &Registry{factories: make(map[string]Factory)}
	registry.Register("text", func() Splitter { return NewTextSplitter() })
	registry.Register("bytes", func() Splitter { return NewSizeSplitter() })
	registry.Register("csv", func() Splitter { return NewCsvSplitter() })
	registry.Register("fasta", func() Splitter { return NewFastaSplitter() })
	registry.Register("markdown", func() Splitter { return NewMarkdownSplitter() })
	registry.Register("pdf", func() Splitter { return NewPDFSplitter() })
	registry.Register("docx", func() Splitter { return NewDOCXSplitter() })
	registry.Register("excel", func() Splitter { return NewExcelSplitter() })
	registry.Register("xls", func() Splitter { return NewXLSSplitter() })
	return registry
}

// Register adds a strategy factory under the supplied name
func (r *Registry) Register(name string, factory Factory) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Lookup returns the factory registered under the supplied name. Qualified
// identifiers carrying a namespace separator are never resolvable.
func (r *Registry) Lookup(name string) (Factory, bool) {
	if strings.ContainsAny(name, "./") {
		return nil, false
	}
	r.mux.RLock()
	defer r.mux.RUnlock()
	factory, ok := r.factories[strings.ToLower(name)]
	return factory, ok
}

// Names returns the registered strategy names
func (r *Registry) Names() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
