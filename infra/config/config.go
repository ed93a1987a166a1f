package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	ServerURL   string // Base URL of the Codify API, e.g. "https://api.codify.dev"
	TokenPath   string // Path to the file containing the bearer token
	UIStatePath string // Path to the persisted UI state file
	LogPath     string // Log sink; a TUI owns the terminal so logs go to a file
	LogLevel    string // debug | info | warn | error
}

// fileConfig is the optional YAML config file shape.
type fileConfig struct {
	Server struct {
		URL string `yaml:"url"`
	} `yaml:"server"`
	Auth struct {
		TokenPath string `yaml:"token_path"`
	} `yaml:"auth"`
	Log struct {
		Path  string `yaml:"path"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads configuration with env > config file > defaults precedence.
//
//	TERMCODIFY_SERVER     — Codify API base URL (default: https://api.codify.dev)
//	TERMCODIFY_TOKEN      — Path to token file (default: ~/.config/termcodify/token)
//	TERMCODIFY_CONFIG     — Path to YAML config (default: ~/.config/termcodify/config.yaml)
//	TERMCODIFY_LOG_FILE   — Log file path (default: ~/.config/termcodify/termcodify.log)
//	TERMCODIFY_LOG_LEVEL  — Log level (default: info)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	confDir := filepath.Join(home, ".config", "termcodify")

	filePath := os.Getenv("TERMCODIFY_CONFIG")
	if filePath == "" {
		filePath = filepath.Join(confDir, "config.yaml")
	}
	fc, err := loadFile(filePath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL:   firstNonEmpty(os.Getenv("TERMCODIFY_SERVER"), fc.Server.URL, "https://api.codify.dev"),
		TokenPath:   firstNonEmpty(os.Getenv("TERMCODIFY_TOKEN"), fc.Auth.TokenPath, filepath.Join(confDir, "token")),
		UIStatePath: filepath.Join(confDir, "ui_state.json"),
		LogPath:     firstNonEmpty(os.Getenv("TERMCODIFY_LOG_FILE"), fc.Log.Path, filepath.Join(confDir, "termcodify.log")),
		LogLevel:    firstNonEmpty(os.Getenv("TERMCODIFY_LOG_LEVEL"), fc.Log.Level, "info"),
	}

	normalized, err := normalizeServerURL(cfg.ServerURL)
	if err != nil {
		return Config{}, err
	}
	cfg.ServerURL = normalized

	return cfg, nil
}

// loadFile parses the YAML config file. A missing file is not an error;
// a malformed one is.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// normalizeServerURL validates the API base URL. Plain http is only allowed
// for loopback addresses so local development servers keep working.
func normalizeServerURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: must be an absolute URL", raw)
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		host := parsed.Hostname()
		ip := net.ParseIP(host)
		loopback := host == "localhost" || (ip != nil && ip.IsLoopback())
		if !loopback {
			return "", fmt.Errorf("invalid server URL %q: http is only allowed for localhost", raw)
		}
	default:
		return "", fmt.Errorf("invalid server URL %q: unsupported scheme %s", raw, parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
