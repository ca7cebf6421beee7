package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"nutriscan/internal/config"
	"nutriscan/internal/extract"
	"nutriscan/internal/handler"
	"nutriscan/internal/logger"
	"nutriscan/internal/parser/gemini"
	"nutriscan/internal/router"
	"nutriscan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.Log)

	extractor := extract.New(&cfg.OCR, logger.WithComponent("extract"))
	aiClient := gemini.NewClient(&cfg.Gemini, logger.WithComponent("gemini"))
	svc := service.NewAnalysisService(extractor, aiClient, cfg.Gemini.MaxVisionPages, logger.WithComponent("service"))

	h := router.Handlers{
		Analyze: handler.NewAnalyzeHandler(svc, logger.WithComponent("handler")),
		Meta:    handler.NewMetaHandler(cfg, aiClient.Provider()),
		Health:  handler.NewHealthHandler(),
	}

	r := router.New(cfg, h)

	addr := cfg.Server.Addr()
	log.Info().
		Str("addr", addr).
		Str("model", cfg.Gemini.Model).
		Str("ocr_languages", cfg.OCR.Languages).
		Msg("starting server")

	return r.Run(addr)
}
