package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nutriscan/internal/service"
)

// AnalyzeHandler accepts PDF uploads and runs the extraction pipeline.
type AnalyzeHandler struct {
	svc service.Analysis
	log zerolog.Logger
}

func NewAnalyzeHandler(svc service.Analysis, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, log: log}
}

// Analyze handles POST /api/analyze. It expects a multipart form with a
// single "file" field containing a PDF.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing file upload: expected multipart field 'file'")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not open uploaded file")
		return
	}
	defer f.Close()

	pdfBytes, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	output, err := h.svc.Analyze(c.Request.Context(), fileHeader.Filename, pdfBytes)
	if err != nil {
		h.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("analysis failed")
		HandleError(c, err)
		return
	}

	RespondOK(c, output.Result, output.Metadata)
}
