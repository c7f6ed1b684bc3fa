package spreadsheet

import (
	"fmt"
	"sort"

	"github.com/bill-center/backend/internal/application/adapter"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// Registry resolves parsers by source identifier.
type Registry struct {
	parsers map[string]adapter.BillParser
}

// NewRegistry builds a registry with one TabularParser per source definition.
func NewRegistry(defs []SourceDefinition) *Registry {
	r := &Registry{parsers: make(map[string]adapter.BillParser, len(defs))}
	for _, def := range defs {
		p := NewTabularParser(def)
		r.parsers[normalizeSource(p.Source())] = p
	}
	return r
}

// NewDefaultRegistry builds a registry from the built-in source definitions.
func NewDefaultRegistry() (*Registry, error) {
	return LoadRegistry("")
}

// LoadRegistry builds a registry from the YAML definitions at path,
// falling back to the built-in set when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	defs, err := LoadSourceDefinitionsFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs), nil
}

// Get returns the parser registered for source.
func (r *Registry) Get(source string) (adapter.BillParser, error) {
	p, ok := r.parsers[normalizeSource(source)]
	if !ok {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnsupportedSource,
			fmt.Sprintf("unsupported source: %s", source),
			domainerror.ErrUnsupportedSource,
		)
	}
	return p, nil
}

// Sources lists the registered source identifiers in alphabetical order.
func (r *Registry) Sources() []string {
	sources := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}
