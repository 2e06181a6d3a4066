package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/openclaw/pairctl/internal/system"
)

// Settings are pairctl's own optional preferences, separate from the
// gateway's config. Everything has a default; the file may be absent.
type Settings struct {
	// QRLevel is the QR error-correction level: "low", "medium", "high".
	QRLevel string `toml:"qr_level"`

	// ProbeTimeoutSec bounds the gateway liveness probe.
	ProbeTimeoutSec int `toml:"probe_timeout_sec"`

	// StatusTimeoutSec bounds the mesh status query.
	StatusTimeoutSec int `toml:"status_timeout_sec"`

	// ServeTimeoutSec bounds the mesh serve-status query.
	ServeTimeoutSec int `toml:"serve_timeout_sec"`
}

// Hard ceilings for the external-check timeouts. Settings may lower
// them; nothing may raise them.
const (
	MaxProbeTimeoutSec  = 2
	MaxStatusTimeoutSec = 5
	MaxServeTimeoutSec  = 3
)

// DefaultSettings returns the builtin preferences. The timeouts
// default to their ceilings.
func DefaultSettings() *Settings {
	return &Settings{
		QRLevel:          "medium",
		ProbeTimeoutSec:  MaxProbeTimeoutSec,
		StatusTimeoutSec: MaxStatusTimeoutSec,
		ServeTimeoutSec:  MaxServeTimeoutSec,
	}
}

// SettingsPath returns the settings file location:
// $XDG_CONFIG_HOME/pairctl/settings.toml, falling back to
// ~/.config/pairctl/settings.toml.
func SettingsPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pairctl", "settings.toml")
}

// LoadSettings reads the optional settings file. A missing file yields
// defaults and no error. An unreadable or invalid file yields defaults
// plus a non-nil error the caller should surface as a warning, never a
// failure.
func LoadSettings(fs system.FileSystem) (*Settings, error) {
	s := DefaultSettings()

	path := SettingsPath()
	if path == "" || !fs.Exists(path) {
		return s, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return DefaultSettings(), err
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return DefaultSettings(), err
	}

	// Out-of-range values fall back rather than fail. The timeout
	// defaults are also hard ceilings: settings may only tighten the
	// probe bounds, never stretch them into hangs.
	if s.QRLevel != "low" && s.QRLevel != "medium" && s.QRLevel != "high" {
		s.QRLevel = "medium"
	}
	s.ProbeTimeoutSec = clampSeconds(s.ProbeTimeoutSec, MaxProbeTimeoutSec)
	s.StatusTimeoutSec = clampSeconds(s.StatusTimeoutSec, MaxStatusTimeoutSec)
	s.ServeTimeoutSec = clampSeconds(s.ServeTimeoutSec, MaxServeTimeoutSec)

	return s, nil
}

// clampSeconds forces a timeout override into (0, max]; anything else
// becomes the ceiling itself.
func clampSeconds(v, max int) int {
	if v <= 0 || v > max {
		return max
	}
	return v
}

// ProbeTimeout returns the gateway probe bound as a duration.
func (s *Settings) ProbeTimeout() time.Duration {
	return time.Duration(s.ProbeTimeoutSec) * time.Second
}

// StatusTimeout returns the mesh status bound as a duration.
func (s *Settings) StatusTimeout() time.Duration {
	return time.Duration(s.StatusTimeoutSec) * time.Second
}

// ServeTimeout returns the serve status bound as a duration.
func (s *Settings) ServeTimeout() time.Duration {
	return time.Duration(s.ServeTimeoutSec) * time.Second
}
