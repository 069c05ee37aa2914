package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir = ".dbactl"
	ConfigFileName   = "dbactl.yml"
)

// ValidEncodings is the list of script file encodings the rename helper accepts.
var ValidEncodings = []string{
	"utf8", "utf8bom", "unicode", "bigendianunicode", "ascii", "ansi",
}

// Config holds all dbactl settings. Values come from the config file
// (~/.dbactl/dbactl.yml by default), overridden by DBACTL_* environment
// variables.
type Config struct {
	// Source is the default source instance address
	Source string `yaml:"source" json:"source"`

	// Destinations is the default list of destination instance addresses
	Destinations []string `yaml:"destinations" json:"destinations"`

	// SourceUserEnv / SourcePasswordEnv name the environment variables holding
	// the source credential. Credentials themselves never live in the file.
	SourceUserEnv     string `yaml:"source_user_env" json:"source_user_env"`
	SourcePasswordEnv string `yaml:"source_password_env" json:"source_password_env"`

	// DestUserEnv / DestPasswordEnv name the environment variables holding
	// the destination credential
	DestUserEnv     string `yaml:"dest_user_env" json:"dest_user_env"`
	DestPasswordEnv string `yaml:"dest_password_env" json:"dest_password_env"`

	// ConnectTimeoutSeconds bounds each connection attempt
	ConnectTimeoutSeconds int `yaml:"connect_timeout" json:"connect_timeout"`

	// TrustServerCertificate disables TLS certificate validation
	TrustServerCertificate bool `yaml:"trust_server_certificate" json:"trust_server_certificate"`

	// Encoding is the default script file encoding for the rename helper
	Encoding string `yaml:"encoding" json:"encoding"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Destinations:          []string{},
		SourceUserEnv:         "DBACTL_SOURCE_USER",
		SourcePasswordEnv:     "DBACTL_SOURCE_PASSWORD",
		DestUserEnv:           "DBACTL_DEST_USER",
		DestPasswordEnv:       "DBACTL_DEST_PASSWORD",
		ConnectTimeoutSeconds: 15,
		Encoding:              "utf8",
		LogLevel:              "info",
		sources:               make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("DBACTL_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, DefaultConfigDir)
		}
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"source", "destinations", "source_user_env", "source_password_env",
		"dest_user_env", "dest_password_env", "connect_timeout",
		"trust_server_certificate", "encoding", "log_level",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.Source != "" {
		c.Source = file.Source
		c.sources["source"] = "file"
	}
	if len(file.Destinations) > 0 {
		c.Destinations = file.Destinations
		c.sources["destinations"] = "file"
	}
	if file.SourceUserEnv != "" {
		c.SourceUserEnv = file.SourceUserEnv
		c.sources["source_user_env"] = "file"
	}
	if file.SourcePasswordEnv != "" {
		c.SourcePasswordEnv = file.SourcePasswordEnv
		c.sources["source_password_env"] = "file"
	}
	if file.DestUserEnv != "" {
		c.DestUserEnv = file.DestUserEnv
		c.sources["dest_user_env"] = "file"
	}
	if file.DestPasswordEnv != "" {
		c.DestPasswordEnv = file.DestPasswordEnv
		c.sources["dest_password_env"] = "file"
	}
	if file.ConnectTimeoutSeconds != 0 {
		c.ConnectTimeoutSeconds = file.ConnectTimeoutSeconds
		c.sources["connect_timeout"] = "file"
	}
	if file.TrustServerCertificate {
		c.TrustServerCertificate = true
		c.sources["trust_server_certificate"] = "file"
	}
	if file.Encoding != "" {
		c.Encoding = file.Encoding
		c.sources["encoding"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DBACTL_SOURCE"); val != "" {
		c.Source = val
		c.sources["source"] = "environment"
	}
	if val := os.Getenv("DBACTL_DESTINATIONS"); val != "" {
		c.Destinations = splitAndTrim(val)
		c.sources["destinations"] = "environment"
	}
	if val := os.Getenv("DBACTL_CONNECT_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ConnectTimeoutSeconds = i
			c.sources["connect_timeout"] = "environment"
		}
	}
	if val := os.Getenv("DBACTL_TRUST_SERVER_CERTIFICATE"); val != "" {
		c.TrustServerCertificate = val == "true" || val == "1"
		c.sources["trust_server_certificate"] = "environment"
	}
	if val := os.Getenv("DBACTL_ENCODING"); val != "" {
		c.Encoding = val
		c.sources["encoding"] = "environment"
	}
	if val := os.Getenv("DBACTL_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// AttributeSource returns the source of a configuration attribute
func (c *Config) AttributeSource(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ConnectTimeout returns the connection timeout as a duration
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// SourceCredentialFromEnv resolves the source credential from the configured
// environment variables. Returns empty strings when unset.
func (c *Config) SourceCredentialFromEnv() (user, password string) {
	return os.Getenv(c.SourceUserEnv), os.Getenv(c.SourcePasswordEnv)
}

// DestCredentialFromEnv resolves the destination credential from the
// configured environment variables. Returns empty strings when unset.
func (c *Config) DestCredentialFromEnv() (user, password string) {
	return os.Getenv(c.DestUserEnv), os.Getenv(c.DestPasswordEnv)
}

// IsValidEncoding checks whether name is a supported script encoding
func (c *Config) IsValidEncoding(name string) bool {
	name = strings.ToLower(name)
	for _, e := range ValidEncodings {
		if e == name {
			return true
		}
	}
	return false
}

// Attributes returns all configuration attributes with values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "source", Value: c.Source, Source: c.AttributeSource("source")},
		{Name: "destinations", Value: strings.Join(c.Destinations, ","), Source: c.AttributeSource("destinations")},
		{Name: "source_user_env", Value: c.SourceUserEnv, Source: c.AttributeSource("source_user_env")},
		{Name: "source_password_env", Value: c.SourcePasswordEnv, Source: c.AttributeSource("source_password_env")},
		{Name: "dest_user_env", Value: c.DestUserEnv, Source: c.AttributeSource("dest_user_env")},
		{Name: "dest_password_env", Value: c.DestPasswordEnv, Source: c.AttributeSource("dest_password_env")},
		{Name: "connect_timeout", Value: strconv.Itoa(c.ConnectTimeoutSeconds), Source: c.AttributeSource("connect_timeout")},
		{Name: "trust_server_certificate", Value: strconv.FormatBool(c.TrustServerCertificate), Source: c.AttributeSource("trust_server_certificate")},
		{Name: "encoding", Value: c.Encoding, Source: c.AttributeSource("encoding")},
		{Name: "log_level", Value: c.LogLevel, Source: c.AttributeSource("log_level")},
	}
}

// JSON renders the attributes as indented JSON
func (c *Config) JSON() (string, error) {
	out, err := json.MarshalIndent(c.Attributes(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
