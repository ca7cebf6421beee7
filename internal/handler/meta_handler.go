package handler

import (
	"github.com/gin-gonic/gin"

	"nutriscan/internal/config"
	"nutriscan/internal/domain"
)

// MetaHandler exposes non-secret runtime information.
type MetaHandler struct {
	cfg      *config.Config
	provider string
}

func NewMetaHandler(cfg *config.Config, provider string) *MetaHandler {
	return &MetaHandler{cfg: cfg, provider: provider}
}

// Provider handles GET /api/provider and reports which AI backend is active.
func (h *MetaHandler) Provider(c *gin.Context) {
	RespondOK(c, gin.H{
		"provider":  h.provider,
		"available": h.cfg.Gemini.APIKey != "",
	}, nil)
}

// Config handles GET /api/config. Secrets are never included.
func (h *MetaHandler) Config(c *gin.Context) {
	RespondOK(c, gin.H{
		"ai_provider":          h.provider,
		"ocr_languages":        h.cfg.OCR.Languages,
		"image_dpi":            h.cfg.OCR.ImageDPI,
		"max_vision_pages":     h.cfg.Gemini.MaxVisionPages,
		"nutrition_categories": domain.NutritionCategories,
	}, nil)
}
