// Package document models the parsed content of one engine configuration
// file as an ordered list of entries, independent of the source format.
package document

// Entry is one directive (flat formats) or scalar leaf (nested formats).
type Entry struct {
	Path string   // option key; dotted for nested formats, e.g. "net.port"
	Args []string // raw value tokens; scalars carry exactly one
	Line int      // 1-based source line, 0 for synthesized entries
}

// Document is the ordered content of a configuration file. Order is
// preserved from the source so findings can be reported in file order.
type Document struct {
	Entries []Entry
}

// Append adds an entry at the end of the document.
func (d *Document) Append(path string, line int, args ...string) {
	d.Entries = append(d.Entries, Entry{Path: path, Args: args, Line: line})
}

// Get returns all entries for a path, in source order.
func (d *Document) Get(path string) []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Path == path {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether at least one entry exists for the path.
func (d *Document) Has(path string) bool {
	for _, e := range d.Entries {
		if e.Path == path {
			return true
		}
	}
	return false
}
