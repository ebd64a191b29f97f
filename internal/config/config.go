package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConversionConfig extends the built-in rewrite tables.
type ConversionConfig struct {
	TypeOverrides map[string]string `yaml:"type_overrides"`
	SkipPrefixes  []string          `yaml:"skip_prefixes"`
}

// TargetConfig describes the database the converted dump may be applied to.
type TargetConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Target     TargetConfig     `yaml:"target"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.Target.Driver = normalizeDriver(config.Target.Driver)

	if config.Target.Driver == "postgres" {
		if config.Target.SSLMode == "" {
			config.Target.SSLMode = "disable"
		}
		if config.Target.Port == 0 {
			config.Target.Port = 5432
		}
		if config.Target.Host == "" {
			config.Target.Host = "localhost"
		}
	}

	return &config, nil
}

func (c *Config) GetConnectionString() string {
	if c.Target.Driver != "" && c.Target.Driver != "postgres" {
		return ""
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Target.Host,
		c.Target.Port,
		c.Target.Username,
		c.Target.Password,
		c.Target.Database,
		c.Target.SSLMode,
	)
}

func normalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return "postgres"
	}

	switch driver {
	case "postgres", "postgresql":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return driver
	}
}
