package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriscan/internal/domain"
)

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// RespondOK writes a success envelope with the given payload.
func RespondOK(c *gin.Context, data interface{}, metadata interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:  true,
		Data:     data,
		Metadata: metadata,
	})
}

// RespondError writes an error envelope with the given status code.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// MapDomainError translates pipeline errors to HTTP status codes.
func MapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "only PDF files are supported"
	case errors.Is(err, domain.ErrUnusableText):
		return http.StatusUnprocessableEntity, "no usable text could be extracted from the document"
	case errors.Is(err, domain.ErrParseFailure):
		return http.StatusBadGateway, "AI provider returned an unparseable response"
	case errors.Is(err, domain.ErrSchemaValidation):
		return http.StatusInternalServerError, "extraction result failed validation"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

// HandleError maps the error and writes the envelope.
func HandleError(c *gin.Context, err error) {
	status, message := MapDomainError(err)
	RespondError(c, status, message)
}
