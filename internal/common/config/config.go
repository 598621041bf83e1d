// internal/common/config/config.go
package config

import (
	"fmt"

	"product-image-workers/internal/backend/chat"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig                 `mapstructure:"app"`
	Camunda  CamundaConfig             `mapstructure:"camunda"`
	Database DatabaseConfig            `mapstructure:"database"`
	Workers  map[string]WorkerConfig   `mapstructure:"workers"`
	APIs     APIsConfig                `mapstructure:"apis"`
	Engine   EngineConfig              `mapstructure:"engine"`
	Prompts  map[string]PromptScenario `mapstructure:"prompts"`
	Logging  LoggingConfig             `mapstructure:"logging"`
	Server   ServerConfig              `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	Chat ChatAPIConfig `mapstructure:"chat"`
}

// ChatAPIConfig describes the OpenAI-compatible chat backend.
type ChatAPIConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	Timeout          int    `mapstructure:"timeout"` // milliseconds
	UseSystemProxies bool   `mapstructure:"use_system_proxies"`
}

// ClientConfig converts the section into the explicit configuration handed to
// the chat client.
func (c ChatAPIConfig) ClientConfig() chat.Config {
	return chat.Config{
		BaseURL:          c.BaseURL,
		APIKey:           c.APIKey,
		Model:            c.Model,
		Timeout:          GetDuration(c.Timeout),
		UseSystemProxies: c.UseSystemProxies,
	}
}

// EngineConfig tunes the style engine.
type EngineConfig struct {
	Scenario            string `mapstructure:"scenario"`
	TranslationCacheTTL int    `mapstructure:"translation_cache_ttl"` // milliseconds, 0 disables caching
	HistoryEnabled      bool   `mapstructure:"history_enabled"`
}

// PromptScenario overrides the system prompts for one scenario. Empty fields
// keep the built-in prompt.
type PromptScenario struct {
	AnalyzeLayoutSystem  string `mapstructure:"analyze_layout_system"`
	OptimizePromptSystem string `mapstructure:"optimize_prompt_system"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ServerConfig holds the health and metrics listener settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}
