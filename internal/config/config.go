// Package config provides configuration loading and path management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/echoctl/echoctl/pkg/types"
)

// DefaultDomain is used when no Alexa domain is configured.
const DefaultDomain = "alexa.amazon.com"

// Load loads configuration from multiple sources (priority order):
// 1. Global config (~/.config/echoctl/echoctl.json[c])
// 2. Project config (<dir>/echoctl.json[c])
// 3. ECHOCTL_CONFIG file override
// 4. .env file in <dir>
// 5. Environment variables
func Load(directory string) (*types.Config, error) {
	config := &types.Config{}

	loaded := make(map[string]bool)
	loadOnce := func(path string) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if loaded[absPath] {
			return
		}
		if loadConfigFile(path, config) == nil {
			loaded[absPath] = true
		}
	}

	// 1. Global config
	globalPath := GetPaths().Config
	loadOnce(filepath.Join(globalPath, "echoctl.json"))
	loadOnce(filepath.Join(globalPath, "echoctl.jsonc"))

	// 2. Project config
	if directory != "" {
		loadOnce(filepath.Join(directory, "echoctl.json"))
		loadOnce(filepath.Join(directory, "echoctl.jsonc"))
	}

	// 3. ECHOCTL_CONFIG file override
	if configPath := os.Getenv("ECHOCTL_CONFIG"); configPath != "" {
		loadOnce(configPath)
	}

	// 4. .env file, for the cookie and csrf secrets
	if directory != "" {
		_ = godotenv.Load(filepath.Join(directory, ".env"))
	}

	// 5. Environment variables (highest priority)
	applyEnvOverrides(config)

	if config.Domain == "" {
		config.Domain = DefaultDomain
	}

	return config, nil
}

// loadConfigFile loads a single config file with interpolation support.
func loadConfigFile(path string, config *types.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err // File doesn't exist, skip
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	// Apply {env:VAR} interpolation
	data = interpolate(data)

	var fileConfig types.Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	mergeConfig(config, &fileConfig)
	return nil
}

var envPattern = regexp.MustCompile(`\{env:([^}]+)\}`)

// interpolate processes {env:VAR} placeholders.
func interpolate(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})
}

// mergeConfig merges source config into target.
func mergeConfig(target, source *types.Config) {
	if source.Schema != "" {
		target.Schema = source.Schema
	}
	if source.Domain != "" {
		target.Domain = source.Domain
	}
	if source.Cookie != "" {
		target.Cookie = source.Cookie
	}
	if source.CSRF != "" {
		target.CSRF = source.CSRF
	}
	if source.DefaultDevice != "" {
		target.DefaultDevice = source.DefaultDevice
	}
	if source.DeviceCacheTTLSeconds != 0 {
		target.DeviceCacheTTLSeconds = source.DeviceCacheTTLSeconds
	}
	if len(source.Preload) > 0 {
		target.Preload = append([]string(nil), source.Preload...)
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
	}
	if source.NoColor {
		target.NoColor = true
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *types.Config) {
	if cookie := os.Getenv("ALEXA_COOKIE"); cookie != "" {
		config.Cookie = cookie
	}
	if csrf := os.Getenv("ALEXA_CSRF"); csrf != "" {
		config.CSRF = csrf
	}
	if domain := os.Getenv("ALEXA_DOMAIN"); domain != "" {
		config.Domain = domain
	}
	if device := os.Getenv("ECHOCTL_DEVICE"); device != "" {
		config.DefaultDevice = device
	}
	if ttl := os.Getenv("ECHOCTL_CACHE_TTL"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil {
			config.DeviceCacheTTLSeconds = n
		}
	}
	if level := os.Getenv("ECHOCTL_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
}
