//go:build windows
// +build windows

package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// LoadConfigFromPolicy reads settings pushed to HKLM\SOFTWARE\MsiQuery\Config
// on top of the defaults.
func LoadConfigFromPolicy() (*Configuration, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, PolicyRegistryPath, registry.READ)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy registry key %s: %w", PolicyRegistryPath, err)
	}
	defer key.Close()

	config := GetDefaultConfig()

	loadStringFromRegistry(key, "LogLevel", &config.LogLevel)
	loadStringFromRegistry(key, "LogPath", &config.LogPath)
	loadStringFromRegistry(key, "InstallContext", &config.InstallContext)
	loadStringFromRegistry(key, "UserSID", &config.UserSID)
	loadStringFromRegistry(key, "OutputFormat", &config.OutputFormat)
	loadIntFromRegistry(key, "LogRetention", &config.LogRetention)
	loadBoolFromRegistry(key, "LenientEnumeration", &config.LenientEnumeration)
	loadBoolFromRegistry(key, "Verbose", &config.Verbose)
	loadBoolFromRegistry(key, "Debug", &config.Debug)
	loadStringArrayFromRegistry(key, "Properties", &config.Properties)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy configuration: %w", err)
	}
	return config, nil
}

func loadStringFromRegistry(key registry.Key, valueName string, target *string) {
	if val, _, err := key.GetStringValue(valueName); err == nil && val != "" {
		*target = val
		log.Printf("Policy: Loaded %s = %s", valueName, val)
	}
}

// loadBoolFromRegistry accepts "true"/"false", "1"/"0" strings or a DWORD.
func loadBoolFromRegistry(key registry.Key, valueName string, target *bool) {
	if val, _, err := key.GetStringValue(valueName); err == nil {
		if parsed, parseErr := strconv.ParseBool(val); parseErr == nil {
			*target = parsed
			return
		}
	}
	if val, _, err := key.GetIntegerValue(valueName); err == nil {
		*target = val != 0
	}
}

func loadIntFromRegistry(key registry.Key, valueName string, target *int) {
	if val, _, err := key.GetStringValue(valueName); err == nil {
		if parsed, parseErr := strconv.Atoi(val); parseErr == nil {
			*target = parsed
			return
		}
	}
	if val, _, err := key.GetIntegerValue(valueName); err == nil {
		*target = int(val)
	}
}

// loadStringArrayFromRegistry reads REG_MULTI_SZ, or a comma-separated string.
func loadStringArrayFromRegistry(key registry.Key, valueName string, target *[]string) {
	var raw []string
	if vals, _, err := key.GetStringsValue(valueName); err == nil {
		raw = vals
	} else if val, _, err := key.GetStringValue(valueName); err == nil {
		raw = strings.Split(val, ",")
	}

	filtered := make([]string, 0, len(raw))
	for _, v := range raw {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	if len(filtered) > 0 {
		*target = filtered
		log.Printf("Policy: Loaded %s = %v", valueName, filtered)
	}
}
