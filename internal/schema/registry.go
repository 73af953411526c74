package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps engine identifiers (and their aliases) to schemas. New
// engine versions register themselves here; the validator core never
// switches on a concrete engine.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds a schema under its canonical identifier and all aliases.
func (r *Registry) Register(s *Schema) {
	r.schemas[s.Engine] = s
	for _, alias := range s.Aliases {
		r.schemas[alias] = s
	}
}

// Lookup resolves an engine identifier or alias to its schema.
func (r *Registry) Lookup(engine string) (*Schema, error) {
	s, ok := r.schemas[strings.ToLower(strings.TrimSpace(engine))]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (known: %s)", engine, strings.Join(r.Engines(), ", "))
	}
	return s, nil
}

// Engines returns the canonical engine identifiers, sorted.
func (r *Registry) Engines() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.schemas {
		if !seen[s.Engine] {
			seen[s.Engine] = true
			out = append(out, s.Engine)
		}
	}
	sort.Strings(out)
	return out
}

// Default is the process-wide registry with the built-in engine schemas.
var Default = NewRegistry()

// Lookup resolves an engine against the default registry.
func Lookup(engine string) (*Schema, error) {
	return Default.Lookup(engine)
}

// Engines lists the engines known to the default registry.
func Engines() []string {
	return Default.Engines()
}

func init() {
	Default.Register(KeyValueStore())
	Default.Register(DocumentDatabase())
}
