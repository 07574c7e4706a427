package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required,url|uri"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL" validate:"required"`

	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST" validate:"gte=0"`
	CORSOrigins    []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// UploadMaxBytes caps profile-picture uploads; zero disables the cap.
	UploadMaxBytes int64 `mapstructure:"UPLOAD_MAX_BYTES" validate:"gte=0"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION" validate:"required_with=S3Bucket"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT" validate:"omitempty,url"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL" validate:"omitempty,url"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

var keys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"SHUTDOWN_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DATABASE_URL",
	"AUTO_MIGRATE",
	"JWT_SECRET",
	"JWT_TTL",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"CORS_ALLOWED_ORIGINS",
	"UPLOAD_MAX_BYTES",
	"S3_BUCKET",
	"S3_REGION",
	"S3_ENDPOINT",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_PUBLIC_URL",
	"GOMAXPROCS",
}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("UPLOAD_MAX_BYTES", 0)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Durations and lists may arrive as plain strings from the environment.
	var err error
	if c.ShutdownTimeout, err = duration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}
	if c.JWTTTL, err = duration(v, "JWT_TTL"); err != nil {
		return nil, err
	}
	c.CORSOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}

// S3Enabled reports whether profile pictures go to object storage.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	s := v.GetString(key)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
