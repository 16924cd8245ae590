package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds every setting the API server and the email worker read at startup.
type Config struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`

	Mongo struct {
		URI    string `yaml:"uri"`
		DBName string `yaml:"db_name"`
	} `yaml:"mongo"`

	JWT struct {
		Secret     string        `yaml:"secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
		Issuer     string        `yaml:"issuer"`
	} `yaml:"jwt"`

	Redis struct {
		URI      string `yaml:"uri"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Worker struct {
		Enabled     bool `yaml:"enabled"`
		Concurrency int  `yaml:"concurrency"`
	} `yaml:"worker"`

	CORS struct {
		Origins     []string `yaml:"origins"`
		Credentials bool     `yaml:"credentials"`
	} `yaml:"cors"`

	SMTP struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		User string `yaml:"user"`
		Pass string `yaml:"pass"`
		From string `yaml:"from"`
	} `yaml:"smtp"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`

	Security struct {
		// LegacyCredentialKey decrypts passwords written by the old reversible codec.
		// Empty disables legacy logins.
		LegacyCredentialKey string        `yaml:"legacy_credential_key"`
		LoginRateLimit      int           `yaml:"login_rate_limit"`
		LoginRateWindow     time.Duration `yaml:"login_rate_window"`
	} `yaml:"security"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `yaml:"admin_password"`
	} `yaml:"seed"`

	// GeneratedJWTSecret is set when no secret was configured in development.
	GeneratedJWTSecret bool `yaml:"-"`
}

// Load reads defaults, then the YAML file at path (if present), then .env, then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env is optional, the process environment always wins
	_ = godotenv.Load()

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDevelopment
	cfg.Port = "5010"

	cfg.Mongo.DBName = "coaching_management"

	cfg.JWT.AccessTTL = 24 * time.Hour
	cfg.JWT.RefreshTTL = 720 * time.Hour
	cfg.JWT.Issuer = "coaching-management"

	cfg.Worker.Enabled = true
	cfg.Worker.Concurrency = 5

	cfg.CORS.Origins = []string{"http://localhost:3000"}

	cfg.SMTP.Port = 587

	cfg.Logging.Level = "info"
	cfg.Logging.Pretty = true

	cfg.Security.LoginRateLimit = 10
	cfg.Security.LoginRateWindow = time.Minute
}

func loadFromEnv(cfg *Config) error {
	cfg.Env = GetEnv("APP_ENV", cfg.Env)
	cfg.Port = GetEnv("PORT", cfg.Port)

	cfg.Mongo.URI = GetEnv("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnv("DB_NAME", cfg.Mongo.DBName)

	cfg.JWT.Secret = GetEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Issuer = GetEnv("JWT_ISSUER", cfg.JWT.Issuer)
	var err error
	if cfg.JWT.AccessTTL, err = envDuration("JWT_ACCESS_TTL", cfg.JWT.AccessTTL); err != nil {
		return err
	}
	if cfg.JWT.RefreshTTL, err = envDuration("JWT_REFRESH_TTL", cfg.JWT.RefreshTTL); err != nil {
		return err
	}

	cfg.Redis.URI = GetEnv("REDIS_URI", cfg.Redis.URI)
	cfg.Redis.Password = GetEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Worker.Enabled = GetEnvAsBool("WORKER_ENABLED", cfg.Worker.Enabled)
	cfg.Worker.Concurrency = GetEnvAsInt("WORKER_CONCURRENCY", cfg.Worker.Concurrency)

	if origins := GetEnv("CORS_ORIGIN", ""); origins != "" {
		cfg.CORS.Origins = SplitList(origins)
	}
	cfg.CORS.Credentials = GetEnvAsBool("CORS_CREDENTIALS", cfg.CORS.Credentials)

	cfg.SMTP.Host = GetEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Port = GetEnvAsInt("SMTP_PORT", cfg.SMTP.Port)
	cfg.SMTP.User = GetEnv("SMTP_USER", cfg.SMTP.User)
	cfg.SMTP.Pass = GetEnv("SMTP_PASS", cfg.SMTP.Pass)
	cfg.SMTP.From = GetEnv("SMTP_FROM", cfg.SMTP.From)

	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Pretty = GetEnvAsBool("LOG_PRETTY", cfg.Logging.Pretty)

	cfg.Security.LegacyCredentialKey = GetEnv("LEGACY_CREDENTIAL_KEY", cfg.Security.LegacyCredentialKey)
	cfg.Security.LoginRateLimit = GetEnvAsInt("LOGIN_RATE_LIMIT", cfg.Security.LoginRateLimit)
	if cfg.Security.LoginRateWindow, err = envDuration("LOGIN_RATE_WINDOW", cfg.Security.LoginRateWindow); err != nil {
		return err
	}

	cfg.Seed.AdminEmail = GetEnv("SEED_ADMIN_EMAIL", cfg.Seed.AdminEmail)
	cfg.Seed.AdminPassword = GetEnv("SEED_ADMIN_PASSWORD", cfg.Seed.AdminPassword)
	return nil
}

func validate(cfg *Config) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if cfg.JWT.Secret == "" {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET is required outside development")
		}
		secret, err := randomSecret(32)
		if err != nil {
			return err
		}
		cfg.JWT.Secret = secret
		cfg.GeneratedJWTSecret = true
	}
	if cfg.Worker.Concurrency < 1 {
		cfg.Worker.Concurrency = 1
	}
	return nil
}

// IsDevelopment reports whether the server runs with development conveniences enabled.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// SMTPConfigured reports whether host, port and sender are set. User and
// password are optional so an unauthenticated relay also counts.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.Port != 0 && c.SMTP.From != ""
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(GetEnv(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}

// SplitList splits a comma separated value and drops blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
