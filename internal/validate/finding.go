// Package validate checks a configuration document against an engine
// schema. Validation is a pure function: it never touches disk and
// collects every violation instead of stopping at the first one.
package validate

import "fmt"

// Kind classifies a validation finding.
type Kind int

const (
	// UnknownKey is a warning: the key is not in the schema but may be a
	// newer engine option, so the rest of the document still validates.
	UnknownKey Kind = iota
	// TypeMismatch is fatal: the value does not parse as the declared
	// type, or an enum value is not a member.
	TypeMismatch
	// RangeViolation is fatal: the value parses but is out of bounds.
	RangeViolation
	// DuplicateKey is fatal: a non-repeatable key appears more than once
	// in the same section.
	DuplicateKey
	// UnparsableUnitSuffix is fatal: a size value carries a suffix
	// outside the unit table.
	UnparsableUnitSuffix
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case UnknownKey:
		return "UnknownKey"
	case TypeMismatch:
		return "TypeMismatch"
	case RangeViolation:
		return "RangeViolation"
	case DuplicateKey:
		return "DuplicateKey"
	case UnparsableUnitSuffix:
		return "UnparsableUnitSuffix"
	default:
		return "Unknown"
	}
}

// Fatal reports whether findings of this kind abort the document.
func (k Kind) Fatal() bool {
	return k != UnknownKey
}

// Finding is one validation problem: where it is, what was found and
// what was expected.
type Finding struct {
	Kind       Kind   `json:"kind"`
	Path       string `json:"path"`  // section.key reporting path
	Value      string `json:"value"` // offending raw value
	Constraint string `json:"constraint"`
	Line       int    `json:"line,omitempty"`
}

// Error renders the finding as a single line.
func (f Finding) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s: %s: %q (expected %s) at line %d", f.Kind, f.Path, f.Value, f.Constraint, f.Line)
	}
	return fmt.Sprintf("%s: %s: %q (expected %s)", f.Kind, f.Path, f.Value, f.Constraint)
}

// MarshalText renders the kind by name so JSON findings stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
