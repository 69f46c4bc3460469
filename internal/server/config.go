package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBindAddr       = "127.0.0.1"
	DefaultPort           = 9500
	DefaultDataDir        = "/var/lib/folioservd"
	DefaultLogLevel       = "info"
	DefaultAdminUsername  = "admin"
	DefaultMaxUploadBytes = 10 << 20
)

type Config struct {
	BindAddr string `yaml:"bind" env:"BIND"`
	Port     int    `yaml:"port" env:"PORT"`
	DataDir  string `yaml:"dataDir" env:"DATA_DIR"`
	LogLevel string `yaml:"logLevel" env:"LOG_LEVEL"`
	DBPath   string `yaml:"dbPath" env:"DB_PATH"`
	DBWAL    bool   `yaml:"dbWAL" env:"DB_WAL"`

	TokenSecret string        `yaml:"tokenSecret" env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"tokenTTL" env:"TOKEN_TTL"`

	AdminUsername string `yaml:"adminUsername" env:"ADMIN_USERNAME"`
	AdminPassword string `yaml:"adminPassword" env:"ADMIN_PASSWORD"`

	// BlobDir enables the filesystem object store. When empty, uploads
	// degrade to inline data URLs.
	BlobDir        string `yaml:"blobDir" env:"BLOB_DIR"`
	PublicBaseURL  string `yaml:"publicBaseURL" env:"PUBLIC_BASE_URL"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes" env:"MAX_UPLOAD_BYTES"`
}

func DefaultConfig() Config {
	return Config{
		BindAddr:       DefaultBindAddr,
		Port:           DefaultPort,
		DataDir:        DefaultDataDir,
		LogLevel:       DefaultLogLevel,
		DBWAL:          true,
		TokenTTL:       24 * time.Hour,
		AdminUsername:  DefaultAdminUsername,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// LoadConfig layers the YAML file (optional) over defaults, then
// FOLIOSERVD_* environment variables over both.
func LoadConfig(configPath string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(configPath) != "" {
		b, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "FOLIOSERVD_"}); err != nil {
		return cfg, fmt.Errorf("parse environment overrides: %w", err)
	}

	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)
	cfg.AdminUsername = strings.TrimSpace(cfg.AdminUsername)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BindAddr) == "" {
		return fmt.Errorf("bind address is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 0..65535")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data directory is required")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.TokenSecret) == "" {
		return fmt.Errorf("token secret is required")
	}
	if strings.TrimSpace(c.AdminUsername) == "" {
		return fmt.Errorf("admin username is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	return nil
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindAddr, c.Port)
}
