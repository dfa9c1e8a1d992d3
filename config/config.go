// Package config loads runtime settings for the suiobj binaries.
//
// Settings come from defaults, then an optional JSON or YAML file, then
// SUIOBJ_* environment variables, in that order of precedence (lowest first).
//
// Example (YAML):
//
//	node_url: https://fullnode.testnet.sui.io:443
//	request_timeout: 5s
//	page_limit: 50
//	archive_dir: /var/lib/suiobj/archive
//	archive_mirrors: [/mnt/backup/suiobj]
//	log_level: debug
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNodeURL    = "https://fullnode.mainnet.sui.io:443"
	DefaultBackend    = "jsonrpc"
	DefaultTimeout    = 10 * time.Second
	DefaultGRPCListen = "127.0.0.1:7780"
	DefaultHTTPListen = "127.0.0.1:7781"
	DefaultLogLevel   = "info"
)

type Config struct {
	// NodeURL is the full node JSON-RPC endpoint.
	NodeURL string `json:"node_url,omitempty" yaml:"node_url,omitempty" env:"SUIOBJ_NODE_URL"`

	// Backend names the node backend (see package nodes): "jsonrpc" talks to
	// NodeURL directly, "grpc" goes through another suiobj-proxyd at GRPCTarget.
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty" env:"SUIOBJ_BACKEND"`
	GRPCTarget string `json:"grpc_target,omitempty" yaml:"grpc_target,omitempty" env:"SUIOBJ_GRPC_TARGET"`

	// RequestTimeout applies per node request; zero disables it.
	RequestTimeout Duration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty" env:"SUIOBJ_REQUEST_TIMEOUT"`
	// PageLimit is the owned-objects page size; zero uses the node default.
	PageLimit int `json:"page_limit,omitempty" yaml:"page_limit,omitempty" env:"SUIOBJ_PAGE_LIMIT"`

	GRPCListen string `json:"grpc_listen,omitempty" yaml:"grpc_listen,omitempty" env:"SUIOBJ_GRPC_LISTEN"`
	HTTPListen string `json:"http_listen,omitempty" yaml:"http_listen,omitempty" env:"SUIOBJ_HTTP_LISTEN"`

	// ArchiveDir enables on-disk response snapshots when set.
	ArchiveDir string `json:"archive_dir,omitempty" yaml:"archive_dir,omitempty" env:"SUIOBJ_ARCHIVE_DIR"`
	// ArchiveMirrors receive a copy of every snapshot. Ignored without ArchiveDir.
	ArchiveMirrors []string `json:"archive_mirrors,omitempty" yaml:"archive_mirrors,omitempty" env:"SUIOBJ_ARCHIVE_MIRRORS" envSeparator:","`

	LogLevel     string `json:"log_level,omitempty" yaml:"log_level,omitempty" env:"SUIOBJ_LOG_LEVEL"`
	OTELEndpoint string `json:"otel_endpoint,omitempty" yaml:"otel_endpoint,omitempty" env:"SUIOBJ_OTEL_ENDPOINT"`
}

func Default() Config {
	return Config{
		NodeURL:        DefaultNodeURL,
		Backend:        DefaultBackend,
		RequestTimeout: Duration(DefaultTimeout),
		GRPCListen:     DefaultGRPCListen,
		HTTPListen:     DefaultHTTPListen,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds the effective configuration. path may be empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads a single file over the defaults, without environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config: empty config path")
	}
	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseEnv overlays SUIOBJ_* environment variables onto target. Unset
// variables leave the current value in place.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported file type %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	return nil
}

func (c Config) Validate() error {
	if c.NodeURL == "" {
		return errors.New("config: node_url is required")
	}
	u, err := url.Parse(c.NodeURL)
	if err != nil {
		return fmt.Errorf("config: invalid node_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: node_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("config: node_url has no host")
	}
	if c.Backend == "" {
		return errors.New("config: backend is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.PageLimit < 0 {
		return fmt.Errorf("config: page_limit must not be negative, got %d", c.PageLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level. An empty level means info.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// ArchiveDirs returns the primary archive directory followed by its mirrors,
// or nil when archiving is off.
func (c Config) ArchiveDirs() []string {
	if c.ArchiveDir == "" {
		return nil
	}
	return append([]string{c.ArchiveDir}, c.ArchiveMirrors...)
}

// Timeout returns RequestTimeout as a time.Duration.
func (c Config) Timeout() time.Duration { return time.Duration(c.RequestTimeout) }
