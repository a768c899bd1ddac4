// Package config loads the server configuration from an optional YAML file,
// the environment, and a .env file loaded at startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Contact   ContactConfig   `mapstructure:"contact"`
	Animation AnimationConfig `mapstructure:"animation"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	StaticDir       string        `mapstructure:"static_dir"`
	ImagesDir       string        `mapstructure:"images_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string { return ":" + s.Port }

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	// Retention is how long visitor rows are kept.
	Retention time.Duration `mapstructure:"retention"`
	// CleanupInterval is how often expired visitor rows are purged.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type LoggerConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	AddSource   bool   `mapstructure:"add_source"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ContactConfig struct {
	// RatePerMinute is how many submissions one client may make per minute.
	RatePerMinute int `mapstructure:"rate_per_minute"`
	Burst         int `mapstructure:"burst"`
	// SuccessWindow is how long the thank-you state lasts.
	SuccessWindow time.Duration `mapstructure:"success_window"`
	SendTimeout   time.Duration `mapstructure:"send_timeout"`
}

type AnimationConfig struct {
	FPS         int           `mapstructure:"fps"`
	QuietWindow time.Duration `mapstructure:"quiet_window"`
	MaxWidth    int           `mapstructure:"max_width"`
	MaxHeight   int           `mapstructure:"max_height"`
	MaxFrames   int           `mapstructure:"max_frames"`
}

// SetDefaults registers the defaults every key falls back to.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.static_dir", "./static")
	v.SetDefault("server.images_dir", "./images")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.to", "")

	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("database.retention", 365*24*time.Hour)
	v.SetDefault("database.cleanup_interval", 24*time.Hour)

	v.SetDefault("logger.service_name", "portfolio")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("contact.rate_per_minute", 3)
	v.SetDefault("contact.burst", 3)
	v.SetDefault("contact.success_window", 5*time.Second)
	v.SetDefault("contact.send_timeout", 15*time.Second)

	v.SetDefault("animation.fps", 60)
	v.SetDefault("animation.quiet_window", 50*time.Millisecond)
	v.SetDefault("animation.max_width", 1920)
	v.SetDefault("animation.max_height", 1080)
	v.SetDefault("animation.max_frames", 600)
}

// legacyEnv maps keys to the plain environment names deployments already use.
var legacyEnv = map[string]string{
	"server.port":    "PORT",
	"server.mode":    "GIN_MODE",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.to":        "TO_EMAIL",
	"admin.username": "ADMIN_USERNAME",
	"admin.password": "ADMIN_PASSWORD",
	"database.path":  "DATABASE_PATH",
}

// Load reads file (or ./config.yaml when empty and present), then the
// environment, into a Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "PORTFOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is required")
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("config: animation.fps must be positive, got %d", c.Animation.FPS)
	}
	if c.Animation.MaxWidth <= 0 || c.Animation.MaxHeight <= 0 {
		return errors.New("config: animation max dimensions must be positive")
	}
	if c.Contact.RatePerMinute <= 0 {
		return fmt.Errorf("config: contact.rate_per_minute must be positive, got %d", c.Contact.RatePerMinute)
	}
	return nil
}

// SMTPConfigured reports whether credentials for sending mail are present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}
