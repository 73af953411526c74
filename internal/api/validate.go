package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/render"
	"github.com/confsmith/confsmith/internal/validate"
)

// ValidateRequest carries a raw configuration document in its native
// format (directives or YAML) plus the engine to validate against.
type ValidateRequest struct {
	Engine   string `json:"engine" binding:"required"`
	Document string `json:"document" binding:"required"`
}

// ValidateResponse reports the outcome. Normalized is the rendered
// engine-native text of the normalized document, present only on success.
type ValidateResponse struct {
	Engine     string             `json:"engine"`
	Valid      bool               `json:"valid"`
	Errors     []validate.Finding `json:"errors,omitempty"`
	Warnings   []validate.Finding `json:"warnings,omitempty"`
	Normalized string             `json:"normalized,omitempty"`
}

// validateDocument handles POST /api/v1/validate
func (s *Server) validateDocument(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, "Invalid request: "+err.Error())
		return
	}

	doc, err := document.Parse(req.Engine, []byte(req.Document))
	if err != nil {
		s.errorResponse(c, "Failed to parse document: "+err.Error())
		return
	}

	res, err := validate.Document(doc, req.Engine)
	if err != nil {
		s.errorResponse(c, err.Error())
		return
	}

	resp := ValidateResponse{
		Engine:   res.Engine,
		Valid:    res.OK(),
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}

	if res.OK() {
		out, err := render.Render(res.Engine, res.Normalized)
		if err != nil {
			s.errorResponseStatus(c, http.StatusInternalServerError, "Failed to render document: "+err.Error())
			return
		}
		resp.Normalized = string(out)
	}

	s.successResponse(c, resp)
}

// renderDocument handles POST /api/v1/render. It validates first; an
// invalid document renders nothing, mirroring the CLI applier.
func (s *Server) renderDocument(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, "Invalid request: "+err.Error())
		return
	}

	doc, err := document.Parse(req.Engine, []byte(req.Document))
	if err != nil {
		s.errorResponse(c, "Failed to parse document: "+err.Error())
		return
	}

	res, err := validate.Document(doc, req.Engine)
	if err != nil {
		s.errorResponse(c, err.Error())
		return
	}
	if !res.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Document failed validation",
			"data": ValidateResponse{
				Engine:   res.Engine,
				Valid:    false,
				Errors:   res.Errors,
				Warnings: res.Warnings,
			},
		})
		return
	}

	out, err := render.Render(res.Engine, res.Normalized)
	if err != nil {
		s.errorResponseStatus(c, http.StatusInternalServerError, "Failed to render document: "+err.Error())
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", out)
}
