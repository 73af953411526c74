package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confsmith/confsmith/internal/schema"
)

// OptionInfo is the wire representation of one schema option.
type OptionInfo struct {
	Key        string   `json:"key"`
	Path       string   `json:"path"`
	Doc        string   `json:"doc,omitempty"`
	Repeatable bool     `json:"repeatable,omitempty"`
	Default    []string `json:"default,omitempty"`
	Values     []string `json:"values"` // constraint per positional value
}

// listSchemas handles GET /api/v1/schemas
func (s *Server) listSchemas(c *gin.Context) {
	s.successResponse(c, gin.H{"engines": schema.Engines()})
}

// getSchema handles GET /api/v1/schemas/:engine
func (s *Server) getSchema(c *gin.Context) {
	sch, err := schema.Lookup(c.Param("engine"))
	if err != nil {
		s.errorResponseStatus(c, http.StatusNotFound, err.Error())
		return
	}

	opts := sch.Options()
	out := make([]OptionInfo, 0, len(opts))
	for _, opt := range opts {
		info := OptionInfo{
			Key:        opt.Key,
			Path:       opt.Path(),
			Doc:        opt.Doc,
			Repeatable: opt.Repeatable,
			Default:    opt.Default,
		}
		for _, elem := range opt.Elems {
			info.Values = append(info.Values, elem.Name+": "+elem.Constraint())
		}
		out = append(out, info)
	}

	s.successResponse(c, gin.H{
		"engine":  sch.Engine,
		"aliases": sch.Aliases,
		"options": out,
	})
}
