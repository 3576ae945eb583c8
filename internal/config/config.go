// Package config provides configuration management using viper.
// It supports loading from YAML files, a local .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"daily-word-bot/internal/game"
)

// Config holds all application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Whitelist WhitelistConfig `mapstructure:"whitelist"`
	Game      GameConfig      `mapstructure:"game"`
	TextGen   TextGenConfig   `mapstructure:"textgen"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token       string        `mapstructure:"token"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RedisConfig holds the optional hint text cache configuration.
// An empty URL disables the cache.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	HintTTL      time.Duration `mapstructure:"hint_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Enabled reports whether a Redis URL is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

// AdminConfig holds admin user configuration.
type AdminConfig struct {
	IDs []int64 `mapstructure:"ids"`
}

// WhitelistConfig holds chat whitelist configuration.
type WhitelistConfig struct {
	Chats []int64 `mapstructure:"chats"`
}

// GameConfig holds the daily word game rules.
type GameConfig struct {
	MaxLives              int    `mapstructure:"max_lives"`
	LifeCostPerWrongGuess int    `mapstructure:"life_cost_per_wrong_guess"`
	LifeCostPerHint       int    `mapstructure:"life_cost_per_hint"`
	MinLivesToUseHint     int    `mapstructure:"min_lives_to_use_hint"`
	MaxHintsPerDay        int    `mapstructure:"max_hints_per_day"`
	MaxGuessCount         int    `mapstructure:"max_guess_count"`
	MaxWordLength         int    `mapstructure:"max_word_length"`
	Timezone              string `mapstructure:"timezone"`
}

// Rules converts the game section into the immutable rule set used by the engine.
func (g GameConfig) Rules() game.Rules {
	return game.Rules{
		MaxLives:              g.MaxLives,
		LifeCostPerWrongGuess: g.LifeCostPerWrongGuess,
		LifeCostPerHint:       g.LifeCostPerHint,
		MinLivesToUseHint:     g.MinLivesToUseHint,
		MaxHintsPerDay:        g.MaxHintsPerDay,
		MaxGuessCount:         g.MaxGuessCount,
		MaxWordLength:         g.MaxWordLength,
	}
}

// Location resolves the configured timezone. The calendar day of the game is
// computed in this location.
func (g GameConfig) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid game timezone %q: %w", g.Timezone, err)
	}
	return loc, nil
}

// TextGenConfig holds the text generator configuration.
type TextGenConfig struct {
	Provider   string        `mapstructure:"provider"`
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	WordsFile  string        `mapstructure:"words_file"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory. A .env file in the working
// directory is loaded into the process environment first, if present.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// e.g. BOT_TOKEN, DATABASE_HOST, GAME_MAX_LIVES, TEXTGEN_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Game.Rules().Validate(); err != nil {
		return nil, fmt.Errorf("invalid game rules: %w", err)
	}
	if _, err := cfg.Game.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.poll_timeout", "10s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "wordbot")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "wordbot")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 1)
	v.SetDefault("redis.hint_ttl", "36h")
	v.SetDefault("redis.key_prefix", "wordbot")

	v.SetDefault("game.max_lives", 6)
	v.SetDefault("game.life_cost_per_wrong_guess", 1)
	v.SetDefault("game.life_cost_per_hint", 1)
	v.SetDefault("game.min_lives_to_use_hint", 2)
	v.SetDefault("game.max_hints_per_day", 2)
	v.SetDefault("game.max_guess_count", 6)
	v.SetDefault("game.max_word_length", 5)
	v.SetDefault("game.timezone", "UTC")

	v.SetDefault("textgen.provider", "local")
	v.SetDefault("textgen.api_key", "")
	v.SetDefault("textgen.base_url", "")
	v.SetDefault("textgen.model", "gpt-4o-mini")
	v.SetDefault("textgen.timeout", "20s")
	v.SetDefault("textgen.max_retries", 2)
	v.SetDefault("textgen.words_file", "")
}

// IsAdmin checks if a user ID is in the admin list.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.Admin.IDs, userID)
}

// IsChatAllowed checks if a chat ID is in the whitelist.
func (c *Config) IsChatAllowed(chatID int64) bool {
	// Empty whitelist means all chats are allowed
	if len(c.Whitelist.Chats) == 0 {
		return true
	}
	return slices.Contains(c.Whitelist.Chats, chatID)
}
