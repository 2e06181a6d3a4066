package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/openclaw/pairctl/internal/errors"
	"github.com/openclaw/pairctl/internal/system"
)

const (
	// DefaultPort is the gateway's well-known listen port, used when
	// the config file does not name one.
	DefaultPort = 18789

	// ConfigFileName is the gateway config file inside the state dir.
	ConfigFileName = "openclaw.json"

	// DefaultStateDirName is the state directory under $HOME.
	DefaultStateDirName = ".openclaw"

	// EnvStateDir overrides the state directory location.
	EnvStateDir = "OPENCLAW_STATE_DIR"

	// EnvConfigPath overrides the full config file path.
	EnvConfigPath = "OPENCLAW_CONFIG_PATH"
)

// Config holds the two values pairctl needs from the gateway's config:
// the auth token the mobile client must present, and the port the
// gateway listens on. Loaded once at startup, immutable after.
type Config struct {
	GatewayToken string
	GatewayPort  int
}

// gatewayFile mirrors the shape of openclaw.json.
type gatewayFile struct {
	Gateway struct {
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
		Port *int `json:"port"`
	} `json:"gateway"`
}

// ResolvePath returns the gateway config file path. Precedence:
// $OPENCLAW_CONFIG_PATH, then $OPENCLAW_STATE_DIR/openclaw.json, then
// ~/.openclaw/openclaw.json.
func ResolvePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	stateDir := os.Getenv(EnvStateDir)
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, DefaultStateDirName)
	}

	// The state dir is user-controlled input; keep the join inside it.
	path, err := securejoin.SecureJoin(stateDir, ConfigFileName)
	if err != nil {
		return "", fmt.Errorf("invalid state directory %q: %w", stateDir, err)
	}
	return path, nil
}

// Load reads and validates the gateway config from the resolved path.
func Load(fs system.FileSystem) (*Config, error) {
	path, err := ResolvePath()
	if err != nil {
		return nil, errors.Wrap("cannot resolve gateway config path", "", err)
	}
	return LoadFrom(fs, path)
}

// LoadFrom reads and validates the gateway config at an explicit path.
func LoadFrom(fs system.FileSystem, path string) (*Config, error) {
	if !fs.Exists(path) {
		return nil, errors.ConfigNotFound(path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	var raw gatewayFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	if raw.Gateway.Auth.Token == "" {
		return nil, errors.TokenMissing(path)
	}

	port := DefaultPort
	if raw.Gateway.Port != nil {
		if *raw.Gateway.Port <= 0 {
			return nil, errors.ConfigParseError(path,
				fmt.Errorf("gateway.port must be positive, got %d", *raw.Gateway.Port))
		}
		port = *raw.Gateway.Port
	}

	return &Config{
		GatewayToken: raw.Gateway.Auth.Token,
		GatewayPort:  port,
	}, nil
}
