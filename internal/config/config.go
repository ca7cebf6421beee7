package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is constructed once at
// startup and passed by reference into each component.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Gemini GeminiConfig
	OCR    OCRConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Addr returns the bind address for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeminiConfig holds settings for the hosted Gemini model.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	MaxVisionPages int    `mapstructure:"max_vision_pages"`
}

// OCRConfig holds PDF rasterization and Tesseract settings.
type OCRConfig struct {
	// Languages is a "+"-separated Tesseract language list.
	Languages   string `mapstructure:"languages"`
	ImageDPI    int    `mapstructure:"image_dpi"`
	Concurrency int    `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the NUTRISCAN_
// prefix. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NUTRISCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_secs", 120)
	v.SetDefault("gemini.max_vision_pages", 3)

	// OCR defaults
	v.SetDefault("ocr.languages", "hun+eng+deu+fra")
	v.SetDefault("ocr.image_dpi", 300)
	v.SetDefault("ocr.concurrency", 4)

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Bind keys explicitly so AutomaticEnv picks them up without a config file.
	for _, key := range []string{
		"server.host", "server.port", "server.read_timeout", "server.write_timeout", "server.environment",
		"log.level", "log.format",
		"gemini.api_key", "gemini.model", "gemini.timeout_secs", "gemini.max_vision_pages",
		"ocr.languages", "ocr.image_dpi", "ocr.concurrency",
		"cors.allowed_origins",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks required configuration. A missing Gemini API key aborts
// startup.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("NUTRISCAN_GEMINI_API_KEY is required")
	}
	if c.OCR.ImageDPI <= 0 {
		return fmt.Errorf("ocr.image_dpi must be positive, got %d", c.OCR.ImageDPI)
	}
	return nil
}
