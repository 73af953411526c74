package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/schema"
)

// Result is the outcome of validating one document. Normalized is only
// set when no fatal finding was collected; a document is never partially
// applied.
type Result struct {
	Engine     string             `json:"engine"`
	Normalized *document.Document `json:"-"`
	Warnings   []Finding          `json:"warnings,omitempty"`
	Errors     []Finding          `json:"errors,omitempty"`
}

// OK reports whether the document passed without fatal findings.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Document validates doc against the schema registered for engine.
// The returned error only covers an unknown engine identifier; document
// problems land in the Result so the operator sees all of them at once.
func Document(doc *document.Document, engine string) (*Result, error) {
	sch, err := schema.Lookup(engine)
	if err != nil {
		return nil, err
	}
	return Against(doc, sch), nil
}

// Against validates doc against an explicit schema. Pure: no state
// survives the call and doc itself is never mutated.
func Against(doc *document.Document, sch *schema.Schema) *Result {
	res := &Result{Engine: sch.Engine}
	normalized := &document.Document{}

	seen := make(map[string]bool)      // non-repeatable keys already consumed
	seenKeyed := make(map[string]bool) // repeatable keys, per disambiguating class

	for _, entry := range doc.Entries {
		opt, ok := sch.Lookup(entry.Path)
		if !ok {
			if sch.Open(entry.Path) {
				normalized.Append(entry.Path, entry.Line, entry.Args...)
				continue
			}
			res.Warnings = append(res.Warnings, Finding{
				Kind:       UnknownKey,
				Path:       entry.Path,
				Value:      strings.Join(entry.Args, " "),
				Constraint: "a key recognized by the " + sch.Engine + " schema",
				Line:       entry.Line,
			})
			// Unknown keys ride along unchanged; the engine may be newer
			// than the schema.
			normalized.Append(entry.Path, entry.Line, entry.Args...)
			continue
		}

		path := opt.Path()

		if !opt.Repeatable {
			if seen[entry.Path] {
				res.Errors = append(res.Errors, Finding{
					Kind:       DuplicateKey,
					Path:       path,
					Value:      strings.Join(entry.Args, " "),
					Constraint: "key declared once per document",
					Line:       entry.Line,
				})
				continue
			}
			seen[entry.Path] = true
		} else if opt.KeyedBy >= 0 && len(entry.Args) > opt.KeyedBy {
			classKey := entry.Path + "\x00" + classToken(opt.Elems[opt.KeyedBy], entry.Args[opt.KeyedBy])
			if seenKeyed[classKey] {
				res.Errors = append(res.Errors, Finding{
					Kind:       DuplicateKey,
					Path:       path,
					Value:      strings.Join(entry.Args, " "),
					Constraint: "one declaration per " + opt.Elems[opt.KeyedBy].Name,
					Line:       entry.Line,
				})
				continue
			}
			seenKeyed[classKey] = true
		}

		if len(entry.Args) != len(opt.Elems) {
			res.Errors = append(res.Errors, Finding{
				Kind:       TypeMismatch,
				Path:       path,
				Value:      strings.Join(entry.Args, " "),
				Constraint: arity(opt),
				Line:       entry.Line,
			})
			continue
		}

		args := make([]string, len(opt.Elems))
		clean := true
		for i, elem := range opt.Elems {
			norm, finding := normalizeValue(sch, elem, entry.Args[i])
			if finding != nil {
				finding.Path = path
				finding.Line = entry.Line
				res.Errors = append(res.Errors, *finding)
				clean = false
				continue
			}
			args[i] = norm
		}
		if !clean {
			continue
		}

		normalized.Append(entry.Path, entry.Line, args...)
	}

	// Fill schema defaults for keys the document leaves out. Synthesized
	// entries get line 0 so they are distinguishable from source entries.
	for _, opt := range sch.Options() {
		if opt.Default == nil || normalized.Has(opt.Key) {
			continue
		}
		normalized.Append(opt.Key, 0, opt.Default...)
	}

	if res.OK() {
		res.Normalized = normalized
	}
	return res
}

// normalizeValue converts one raw token into its canonical form, or
// returns the finding describing why it cannot.
func normalizeValue(sch *schema.Schema, elem schema.Elem, raw string) (string, *Finding) {
	switch elem.Kind {
	case schema.String:
		return raw, nil

	case schema.Bool:
		switch {
		case strings.EqualFold(raw, sch.BoolTrue):
			return sch.BoolTrue, nil
		case strings.EqualFold(raw, sch.BoolFalse):
			return sch.BoolFalse, nil
		}
		return "", &Finding{Kind: TypeMismatch, Value: raw, Constraint: sch.BoolTrue + " or " + sch.BoolFalse}

	case schema.Int:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", &Finding{Kind: TypeMismatch, Value: raw, Constraint: elem.Constraint()}
		}
		if (elem.Min != nil && n < *elem.Min) || (elem.Max != nil && n > *elem.Max) {
			return "", &Finding{Kind: RangeViolation, Value: raw, Constraint: elem.Constraint()}
		}
		return strconv.FormatInt(n, 10), nil

	case schema.Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", &Finding{Kind: TypeMismatch, Value: raw, Constraint: elem.Constraint()}
		}
		if (elem.MinF != nil && f < *elem.MinF) || (elem.MaxF != nil && f > *elem.MaxF) {
			return "", &Finding{Kind: RangeViolation, Value: raw, Constraint: elem.Constraint()}
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil

	case schema.Enum:
		for alias, member := range elem.Aliases {
			if strings.EqualFold(raw, alias) {
				return member, nil
			}
		}
		for _, member := range elem.Members {
			if strings.EqualFold(raw, member) {
				return member, nil
			}
		}
		return "", &Finding{Kind: TypeMismatch, Value: raw, Constraint: elem.Constraint()}

	case schema.ByteSize:
		n, err := schema.ParseByteSize(raw)
		if err != nil {
			return "", &Finding{Kind: UnparsableUnitSuffix, Value: raw, Constraint: elem.Constraint()}
		}
		return strconv.FormatInt(n, 10), nil
	}

	return raw, nil
}

// classToken canonicalizes the disambiguating token of a keyed repeatable
// directive, so a legacy spelling collides with its canonical class.
func classToken(elem schema.Elem, raw string) string {
	if elem.Kind == schema.Enum {
		for alias, member := range elem.Aliases {
			if strings.EqualFold(raw, alias) {
				return member
			}
		}
		for _, member := range elem.Members {
			if strings.EqualFold(raw, member) {
				return member
			}
		}
	}
	return strings.ToLower(raw)
}

// arity describes the expected argument shape of an option.
func arity(opt *schema.Option) string {
	names := make([]string, len(opt.Elems))
	for i, e := range opt.Elems {
		names[i] = "<" + e.Name + ">"
	}
	return fmt.Sprintf("%d value(s): %s", len(opt.Elems), strings.Join(names, " "))
}
