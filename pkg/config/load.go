package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/crypto"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/links"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/weather"
	"gitlab.com/tinyland/lab/browserhome/pkg/typing"
)

const appName = "browserhome"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/browserhome/config.toml
//  2. ~/.config/browserhome/config.toml
//
// If no file exists, returns DefaultConfig() with environment overrides
// applied.
func Load() (*Config, error) {
	paths := configSearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file is not an error.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// A relative links path is relative to the config file.
	if cfg.Links.Path != "" && !filepath.IsAbs(cfg.Links.Path) && os.Getenv("BROWSERHOME_LINKS") == "" {
		cfg.Links.Path = filepath.Join(filepath.Dir(path), cfg.Links.Path)
	}
	return cfg, nil
}

// LoadFromReader reads configuration from an io.Reader. Keys absent from
// the input keep their defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:          "info",
			RequestTimeout:    Duration{collectors.DefaultHTTPTimeout},
			RequestsPerSecond: float64(collectors.DefaultRateLimit),
		},
		Server: ServerConfig{
			Addr:       "127.0.0.1:8080",
			RateLimit:  120,
			RateWindow: Duration{time.Minute},
		},
		Header: HeaderConfig{
			PageTitle:   "Home",
			Greeting:    "Welcome home.",
			TypingDelay: Duration{typing.DefaultDelay},
			Settle:      Duration{typing.DefaultSettle},
		},
		Location: LocationConfig{
			Latitude:    weather.DefaultCoordinates.Latitude,
			Longitude:   weather.DefaultCoordinates.Longitude,
			IPLocateURL: weather.DefaultIPLocateURL,
		},
		Weather: WeatherConfig{
			Enabled:     true,
			ForecastURL: weather.DefaultForecastURL,
			GeocodeURL:  weather.DefaultGeocodeURL,
			UserAgent:   weather.DefaultUserAgent,
			Timezone:    weather.DefaultTimezone,
			Interval:    Duration{15 * time.Minute},
		},
		Crypto: CryptoConfig{
			Enabled:   true,
			TickerURL: crypto.DefaultTickerURL,
			IDs:       append([]string(nil), crypto.DefaultIDs...),
			Interval:  Duration{5 * time.Minute},
		},
		Links: LinksConfig{
			Enabled: true,
			Path:    links.DefaultPath,
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BROWSERHOME_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BROWSERHOME_LINKS"); v != "" {
		cfg.Links.Path = v
	}
	if v := os.Getenv("BROWSERHOME_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = strings.ToLower(v)
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, appName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, appName, "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
