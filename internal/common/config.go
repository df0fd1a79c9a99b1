package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Extract  ExtractConfig
	OCR      OCRConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int
	MaxConnLifetime time.Duration
	HealthTimeout   time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Pdftoppm     string // binary name or absolute path; if empty -> "pdftoppm"
	RenderDPI    int    // first-attempt rasterization DPI
	RetryDPI     int    // per-page retry DPI after a render failure
	JPEGQuality  int    // first-attempt JPEG quality
	RetryQuality int    // per-page retry JPEG quality
	MaxPages     int    // 0 = no limit

	DocTimeout  time.Duration // whole-document load budget
	PageTimeout time.Duration // per-page text extraction budget
	OCRTimeout  time.Duration // per-page OCR call budget

	DisableOCR bool // never escalate a PDF to OCR, trading recall for speed
}

// OCRConfig holds OCR service configuration
type OCRConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// LLMConfig holds answer-analysis LLM configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "file:exam-ingest.db"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			HealthTimeout:   getEnvAsDuration("DB_HEALTH_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 60*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),
		},
		Extract: ExtractConfig{
			Pdftoppm:     getEnv("PDFTOPPM", "pdftoppm"),
			RenderDPI:    getEnvAsInt("RENDER_DPI", 150),
			RetryDPI:     getEnvAsInt("RENDER_RETRY_DPI", 100),
			JPEGQuality:  getEnvAsInt("RENDER_JPEG_QUALITY", 80),
			RetryQuality: getEnvAsInt("RENDER_RETRY_QUALITY", 50),
			MaxPages:     getEnvAsInt("MAX_PAGES", 0),
			DocTimeout:   getEnvAsDuration("DOC_TIMEOUT", 30*time.Second),
			PageTimeout:  getEnvAsDuration("PAGE_TIMEOUT", 10*time.Second),
			OCRTimeout:   getEnvAsDuration("OCR_TIMEOUT", 50*time.Second),
			DisableOCR:   getEnvAsBool("DISABLE_OCR", false),
		},
		OCR: OCRConfig{
			BaseURL: getEnv("OCR_BASE_URL", ""),
			APIKey:  getEnv("OCR_API_KEY", ""),
			Timeout: getEnvAsDuration("OCR_HTTP_TIMEOUT", 50*time.Second),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if !c.Extract.DisableOCR && c.OCR.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OCR_BASE_URL is required unless DISABLE_OCR=true", ErrInvalidInput)
	}
	return nil
}
