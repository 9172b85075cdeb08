package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Default provider endpoints and models.
const (
	DefaultOpenRouterBase  = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel = "nvidia/nemotron-3-nano-30b-a3b:free"
	DefaultLocalBase       = "http://localhost:8080/v1"
	DefaultLocalModel      = "Nemotron-3-Nano-30B-A3B-UD-Q3_K_XL"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Artifacts ArtifactsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// ProviderConfig holds language model provider configuration
type ProviderConfig struct {
	// Name selects the provider: "openrouter" or "local".
	Name        string
	Model       string
	APIKey      string
	LocalBase   string
	HTTPHeaders string
	HTTPReferer string
	AppTitle    string
	TimeoutSecs int
	MaxTokens   int
}

// ArtifactsConfig holds artifact store configuration
type ArtifactsConfig struct {
	Dir string
}

// DatabaseConfig holds PostgreSQL configuration for the audit trail
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration for the response cache
type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       int
	Password   string
	DB         int
	TTLMinutes int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// ResolvedProvider is the provider configuration after defaults and
// provider-specific rules are applied.
type ResolvedProvider struct {
	Model   string
	BaseURL string
	APIKey  string
	Headers map[string]string
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Provider: ProviderConfig{
			Name:        v.GetString("provider.name"),
			Model:       v.GetString("provider.model"),
			APIKey:      v.GetString("provider.api_key"),
			LocalBase:   v.GetString("provider.local_base"),
			HTTPHeaders: v.GetString("provider.http_headers"),
			HTTPReferer: v.GetString("provider.http_referer"),
			AppTitle:    v.GetString("provider.app_title"),
			TimeoutSecs: v.GetInt("provider.timeout_secs"),
			MaxTokens:   v.GetInt("provider.max_tokens"),
		},
		Artifacts: ArtifactsConfig{
			Dir: v.GetString("artifacts.dir"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("database.enabled"),
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Enabled:    v.GetBool("redis.enabled"),
			Host:       v.GetString("redis.host"),
			Port:       v.GetInt("redis.port"),
			Password:   v.GetString("redis.password"),
			DB:         v.GetInt("redis.db"),
			TTLMinutes: v.GetInt("redis.ttl_minutes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	// Provider defaults
	v.SetDefault("provider.name", "openrouter")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.local_base", DefaultLocalBase)
	v.SetDefault("provider.timeout_secs", 120)
	v.SetDefault("provider.max_tokens", 8000)

	// Artifact store defaults
	v.SetDefault("artifacts.dir", "artifacts")

	// Database defaults (audit trail, optional)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "triage")
	v.SetDefault("database.password", "triage")
	v.SetDefault("database.dbname", "triage")
	v.SetDefault("database.sslmode", "disable")

	// Redis defaults (response cache, optional)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_minutes", 60)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Resolve applies provider-specific rules: the local provider needs no
// credentials, while OpenRouter requires an API key and strips any
// "openrouter/" routing prefix from the model name before it goes on
// the wire.
func (p *ProviderConfig) Resolve() (*ResolvedProvider, error) {
	headers, err := p.extraHeaders()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(p.Name) {
	case "local":
		model := p.Model
		if model == "" {
			model = DefaultLocalModel
		}
		base := p.LocalBase
		if base == "" {
			base = DefaultLocalBase
		}
		return &ResolvedProvider{
			Model:   model,
			BaseURL: base,
			Headers: headers,
		}, nil

	case "openrouter":
		if p.APIKey == "" {
			return nil, fmt.Errorf("no API key configured: set TRIAGE_PROVIDER_API_KEY or use TRIAGE_PROVIDER_NAME=local")
		}
		model := p.Model
		if model == "" {
			model = DefaultOpenRouterModel
		}
		model = strings.TrimPrefix(model, "openrouter/")
		return &ResolvedProvider{
			Model:   model,
			BaseURL: DefaultOpenRouterBase,
			APIKey:  p.APIKey,
			Headers: headers,
		}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q: expected openrouter or local", p.Name)
	}
}

// extraHeaders builds provider headers from the raw JSON blob plus the
// OpenRouter attribution fields.
func (p *ProviderConfig) extraHeaders() (map[string]string, error) {
	headers := make(map[string]string)

	if p.HTTPHeaders != "" {
		if err := json.Unmarshal([]byte(p.HTTPHeaders), &headers); err != nil {
			return nil, fmt.Errorf("invalid JSON in TRIAGE_PROVIDER_HTTP_HEADERS: %w", err)
		}
	}
	if p.HTTPReferer != "" {
		if _, ok := headers["HTTP-Referer"]; !ok {
			headers["HTTP-Referer"] = p.HTTPReferer
		}
	}
	if p.AppTitle != "" {
		if _, ok := headers["X-Title"]; !ok {
			headers["X-Title"] = p.AppTitle
		}
	}

	return headers, nil
}
