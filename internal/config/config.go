package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Oracle OracleConfig
	Render RenderConfig
	Inbox  InboxConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// OracleConfig holds settings for the LLM analysis oracle. An empty APIKey
// disables every oracle-dependent operation for the session.
type OracleConfig struct {
	APIKey          string `mapstructure:"api_key"`
	TranscribeModel string `mapstructure:"transcribe_model"`
	KeywordModel    string `mapstructure:"keyword_model"`
	AgentModel      string `mapstructure:"agent_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
	PageConcurrency int    `mapstructure:"page_concurrency"`
	KeywordCount    int    `mapstructure:"keyword_count"`
}

// RenderConfig holds page renderer settings.
type RenderConfig struct {
	MaxPages int `mapstructure:"max_pages"`
}

// InboxConfig holds the watched-directory auto-ingest settings. An empty Dir
// disables the watcher.
type InboxConfig struct {
	Dir string `mapstructure:"dir"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the SPHERICAL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPHERICAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Oracle defaults
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.transcribe_model", "gemini-2.5-flash")
	v.SetDefault("oracle.keyword_model", "gemini-2.5-flash")
	v.SetDefault("oracle.agent_model", "gemini-2.5-pro")
	v.SetDefault("oracle.timeout_secs", 120)
	v.SetDefault("oracle.max_output_tokens", 16384)
	v.SetDefault("oracle.page_concurrency", 8)
	v.SetDefault("oracle.keyword_count", 15)

	// Renderer defaults
	v.SetDefault("render.max_pages", 200)

	// Inbox defaults
	v.SetDefault("inbox.dir", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "SPHERICAL_SERVER_PORT",
		"server.read_timeout":      "SPHERICAL_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "SPHERICAL_SERVER_WRITE_TIMEOUT",
		"server.environment":       "SPHERICAL_SERVER_ENVIRONMENT",
		"oracle.api_key":           "SPHERICAL_ORACLE_API_KEY",
		"oracle.transcribe_model":  "SPHERICAL_ORACLE_TRANSCRIBE_MODEL",
		"oracle.keyword_model":     "SPHERICAL_ORACLE_KEYWORD_MODEL",
		"oracle.agent_model":       "SPHERICAL_ORACLE_AGENT_MODEL",
		"oracle.timeout_secs":      "SPHERICAL_ORACLE_TIMEOUT_SECS",
		"oracle.max_output_tokens": "SPHERICAL_ORACLE_MAX_OUTPUT_TOKENS",
		"oracle.page_concurrency":  "SPHERICAL_ORACLE_PAGE_CONCURRENCY",
		"oracle.keyword_count":     "SPHERICAL_ORACLE_KEYWORD_COUNT",
		"render.max_pages":         "SPHERICAL_RENDER_MAX_PAGES",
		"inbox.dir":                "SPHERICAL_INBOX_DIR",
		"cors.allowed_origins":     "SPHERICAL_CORS_ALLOWED_ORIGINS",
		"log.level":                "SPHERICAL_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SPHERICAL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SPHERICAL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Oracle = OracleConfig{
		APIKey:          v.GetString("oracle.api_key"),
		TranscribeModel: v.GetString("oracle.transcribe_model"),
		KeywordModel:    v.GetString("oracle.keyword_model"),
		AgentModel:      v.GetString("oracle.agent_model"),
		TimeoutSecs:     v.GetInt("oracle.timeout_secs"),
		MaxOutputTokens: v.GetInt("oracle.max_output_tokens"),
		PageConcurrency: v.GetInt("oracle.page_concurrency"),
		KeywordCount:    v.GetInt("oracle.keyword_count"),
	}
	cfg.Render = RenderConfig{
		MaxPages: v.GetInt("render.max_pages"),
	}
	cfg.Inbox = InboxConfig{
		Dir: v.GetString("inbox.dir"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	return cfg, nil
}
