// pkg/config/config.go - configuration settings for msiquery.

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the machine-wide configuration file.
const ConfigPath = `C:\ProgramData\MsiQuery\Config.yaml`

// PolicyRegistryPath holds configuration pushed by policy (HKLM).
const PolicyRegistryPath = `SOFTWARE\MsiQuery\Config`

// Configuration holds the configurable options for msiquery in YAML format
type Configuration struct {
	LogLevel           string   `yaml:"LogLevel"`
	LogPath            string   `yaml:"LogPath"`
	LogRetention       int      `yaml:"LogRetention"` // number of session directories to keep
	InstallContext     string   `yaml:"InstallContext"`
	UserSID            string   `yaml:"UserSID"`
	Properties         []string `yaml:"Properties"`
	LenientEnumeration bool     `yaml:"LenientEnumeration"`
	OutputFormat       string   `yaml:"OutputFormat"`
	Verbose            bool     `yaml:"Verbose"`
	Debug              bool     `yaml:"Debug"`
}

var (
	validLogLevels     = []string{"ERROR", "WARN", "INFO", "DEBUG"}
	validOutputFormats = []string{"text", "yaml", "json"}
)

// GetDefaultConfig provides default configuration values.
func GetDefaultConfig() *Configuration {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return &Configuration{
		LogLevel:       "INFO",
		LogPath:        filepath.Join(programData, "MsiQuery", "logs"),
		LogRetention:   10,
		InstallContext: "all",
		Properties: []string{
			"ProductName",
			"VersionString",
			"Publisher",
			"InstallDate",
			"InstallLocation",
			"LocalPackage",
		},
		OutputFormat: "text",
	}
}

// LoadConfigFrom loads the configuration from a YAML file. Values missing from
// the file keep their defaults. If the file doesn't exist, policy settings in
// the registry are tried, then the defaults are used.
func LoadConfigFrom(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		config, policyErr := LoadConfigFromPolicy()
		if policyErr == nil {
			log.Printf("Loaded configuration from policy registry path: %s", PolicyRegistryPath)
			return config, nil
		}
		return GetDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(config *Configuration, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("serializing configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}
	return nil
}

// Validate normalises case and rejects unknown log levels and output formats.
func (c *Configuration) Validate() error {
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("unknown LogLevel %q (want one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	if c.OutputFormat == "" {
		c.OutputFormat = "text"
	}
	if !contains(validOutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown OutputFormat %q (want one of %s)", c.OutputFormat, strings.Join(validOutputFormats, ", "))
	}

	if c.LogRetention < 0 {
		return fmt.Errorf("LogRetention must not be negative, got %d", c.LogRetention)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
