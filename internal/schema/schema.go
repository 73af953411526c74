package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the value type of a single option argument.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Float
	Enum
	ByteSize
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Enum:
		return "enum"
	case ByteSize:
		return "byte size"
	default:
		return "unknown"
	}
}

// Elem describes one positional argument of an option. Scalar options
// have exactly one Elem; directives like "save <seconds> <changes>" have
// one Elem per token.
type Elem struct {
	Name    string
	Kind    Kind
	Members []string          // Enum: accepted values, first entry is canonical casing
	Aliases map[string]string // Enum: legacy spellings mapped to their canonical member
	Min     *int64            // Int: inclusive lower bound
	Max     *int64            // Int: inclusive upper bound
	MinF    *float64          // Float: inclusive lower bound
	MaxF    *float64          // Float: inclusive upper bound
}

// Constraint returns a human-readable description of the accepted values,
// used verbatim in validation findings.
func (e Elem) Constraint() string {
	switch e.Kind {
	case Enum:
		return "one of " + strings.Join(e.Members, "|")
	case Int:
		switch {
		case e.Min != nil && e.Max != nil:
			return fmt.Sprintf("integer in [%d,%d]", *e.Min, *e.Max)
		case e.Min != nil:
			return fmt.Sprintf("integer >= %d", *e.Min)
		case e.Max != nil:
			return fmt.Sprintf("integer <= %d", *e.Max)
		}
		return "integer"
	case Float:
		switch {
		case e.MinF != nil && e.MaxF != nil:
			return fmt.Sprintf("float in [%g,%g]", *e.MinF, *e.MaxF)
		case e.MinF != nil:
			return fmt.Sprintf("float >= %g", *e.MinF)
		case e.MaxF != nil:
			return fmt.Sprintf("float <= %g", *e.MaxF)
		}
		return "float"
	case Bool:
		return "boolean"
	case ByteSize:
		return "byte size (integer or k/kb/m/mb/g/gb suffix)"
	default:
		return "string"
	}
}

// Option describes one recognized configuration key.
type Option struct {
	Key        string // full path, dotted for nested engines
	Section    string // reporting group for flat engines; empty when Key is already dotted
	Doc        string
	Repeatable bool     // directive may legally appear more than once
	KeyedBy    int      // Repeatable only: index of the Elem that disambiguates occurrences, -1 if none
	Default    []string // normalized default tokens, nil when the engine has no default worth pinning
	Elems      []Elem
}

// Path returns the reporting path for the option (section.key for flat
// engines, the dotted key itself otherwise).
func (o *Option) Path() string {
	if o.Section != "" && !strings.Contains(o.Key, ".") {
		return o.Section + "." + o.Key
	}
	return o.Key
}

// Schema is the full option catalog for one target engine.
type Schema struct {
	Engine    string // canonical engine identifier
	Aliases   []string
	BoolTrue  string // canonical rendering of true, e.g. "yes" or "true"
	BoolFalse string

	// OpenSections lists section prefixes under which unrecognized keys
	// are accepted as plain strings without a warning.
	OpenSections []string

	options map[string]*Option
	order   []string
}

// New creates an empty schema for the given engine identifier.
func New(engine string, aliases ...string) *Schema {
	return &Schema{
		Engine:    engine,
		Aliases:   aliases,
		BoolTrue:  "true",
		BoolFalse: "false",
		options:   make(map[string]*Option),
	}
}

// Add registers an option. Adding the same key twice is a programming
// error and panics at init time.
func (s *Schema) Add(opt *Option) *Schema {
	if _, ok := s.options[opt.Key]; ok {
		panic(fmt.Sprintf("schema %s: duplicate option %s", s.Engine, opt.Key))
	}
	s.options[opt.Key] = opt
	s.order = append(s.order, opt.Key)
	return s
}

// Lookup returns the option for a key, or false when the key is not part
// of the schema.
func (s *Schema) Lookup(key string) (*Option, bool) {
	opt, ok := s.options[key]
	return opt, ok
}

// Open reports whether the key falls under an open section, where
// unrecognized keys are tolerated silently.
func (s *Schema) Open(key string) bool {
	for _, prefix := range s.OpenSections {
		if strings.HasPrefix(key, prefix+".") {
			return true
		}
	}
	return false
}

// Options returns all options in declaration order.
func (s *Schema) Options() []*Option {
	out := make([]*Option, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.options[key])
	}
	return out
}

// Helper constructors used by the engine schema definitions.

func stringElem(name string) Elem { return Elem{Name: name, Kind: String} }
func boolElem(name string) Elem   { return Elem{Name: name, Kind: Bool} }

func intElem(name string, min, max int64) Elem {
	return Elem{Name: name, Kind: Int, Min: &min, Max: &max}
}

func intMinElem(name string, min int64) Elem {
	return Elem{Name: name, Kind: Int, Min: &min}
}

func floatElem(name string, min, max float64) Elem {
	return Elem{Name: name, Kind: Float, MinF: &min, MaxF: &max}
}

func floatMinElem(name string, min float64) Elem {
	return Elem{Name: name, Kind: Float, MinF: &min}
}

func enumElem(name string, members ...string) Elem {
	return Elem{Name: name, Kind: Enum, Members: members}
}

func byteSizeElem(name string) Elem { return Elem{Name: name, Kind: ByteSize} }
