package provision

import (
	"fmt"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/render"
	"github.com/confsmith/confsmith/internal/validate"
)

// ErrInvalidDocument is returned by Apply when validation collected fatal
// findings; the target file is left untouched.
var ErrInvalidDocument = fmt.Errorf("document failed validation")

// Apply validates the document and, only when it is fully clean, renders
// and writes it to the target path. The returned result carries every
// finding either way; a document is never partially applied.
func Apply(engine string, doc *document.Document, target string) (*validate.Result, error) {
	res, err := validate.Document(doc, engine)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res, fmt.Errorf("%w: %d error(s)", ErrInvalidDocument, len(res.Errors))
	}

	data, err := render.Render(engine, res.Normalized)
	if err != nil {
		return res, fmt.Errorf("render document: %w", err)
	}

	if err := render.WriteFile(target, data, 0o644); err != nil {
		return res, fmt.Errorf("apply to %s: %w", target, err)
	}

	return res, nil
}
