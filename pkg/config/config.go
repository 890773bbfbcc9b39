package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=Public base URL used for permalinks"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Redis RedisConfig `yaml:"redis" json:"redis" jsonschema:"description=Redis metadata store, replaces SQLite for like counters when enabled"`

	Likes LikesConfig `yaml:"likes" json:"likes" jsonschema:"description=Like button settings"`

	Admin struct {
		User     string `yaml:"user" json:"user" jsonschema:"default=admin,description=Admin basic auth user"`
		Password string `yaml:"password" json:"password" jsonschema:"description=Admin basic auth password, admin pages are open if empty"`
	} `yaml:"admin" json:"admin" jsonschema:"description=Admin access"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Keep metadata in redis"`
	Addr     string `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
	Password string `yaml:"password" json:"password" jsonschema:"description=Redis password"`
	DB       int    `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database number"`
	Prefix   string `yaml:"prefix" json:"prefix" jsonschema:"default=likecontent,description=Key prefix"`
}

// LikesConfig holds display templates and eligible post types
type LikesConfig struct {
	ZeroText        string   `yaml:"zero_text" json:"zero_text" jsonschema:"default=Like the post? Give it a +1,description=Text shown when there are no likes"`
	OneText         string   `yaml:"one_text" json:"one_text" jsonschema:"default={count},description=Text for the singular form"`
	ManyText        string   `yaml:"many_text" json:"many_text" jsonschema:"default={count},description=Text for the plural form"`
	PostTypes       []string `yaml:"post_types" json:"post_types" jsonschema:"description=Post types that can be liked"`
	Locale          string   `yaml:"locale" json:"locale" jsonschema:"default=en,description=Locale for plural rules"`
	AtomicIncrement *bool    `yaml:"atomic_increment" json:"atomic_increment" jsonschema:"default=true,description=Use atomic store increment"`
	WidgetLimit     int      `yaml:"widget_limit" json:"widget_limit" jsonschema:"default=20,minimum=1,description=Rows in the most liked widget"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file is given
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")

	// database
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "likecontent"
	}

	// likes
	if cfg.Likes.ZeroText == "" {
		cfg.Likes.ZeroText = "Like the post? Give it a +1"
	}
	if cfg.Likes.OneText == "" {
		cfg.Likes.OneText = "{count}"
	}
	if cfg.Likes.ManyText == "" {
		cfg.Likes.ManyText = "{count}"
	}
	if len(cfg.Likes.PostTypes) == 0 {
		cfg.Likes.PostTypes = []string{"post"}
	}
	if cfg.Likes.Locale == "" {
		cfg.Likes.Locale = "en"
	}
	if cfg.Likes.AtomicIncrement == nil {
		atomic := true
		cfg.Likes.AtomicIncrement = &atomic
	}
	if cfg.Likes.WidgetLimit == 0 {
		cfg.Likes.WidgetLimit = 20
	}

	// admin
	if cfg.Admin.User == "" {
		cfg.Admin.User = "admin"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must be non-negative")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be non-negative")
	}
	if cfg.Likes.WidgetLimit < 1 {
		return fmt.Errorf("likes.widget_limit must be at least 1")
	}
	for _, t := range cfg.Likes.PostTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("likes.post_types can't contain empty type")
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetAdminConfig returns admin basic auth credentials, empty password disables auth
func (c *Config) GetAdminConfig() (user, password string) {
	return c.Admin.User, c.Admin.Password
}

// GetBaseURL returns public base URL without trailing slash
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}
