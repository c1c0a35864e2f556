package limn

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FontAsset is a font manifest entry.
type FontAsset struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// Config is the optional on-disk configuration (conventionally limn.yaml):
// window parameters, debug flags, and an asset manifest applied at startup.
type Config struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Resizable   bool   `yaml:"resizable"`
	ShowFPS     bool   `yaml:"show_fps"`
	Debug       bool   `yaml:"debug"`
	DebugBounds bool   `yaml:"debug_bounds"`

	// Assets maps resource keys to files loaded into Resources at startup.
	Assets struct {
		Fonts  map[string]FontAsset `yaml:"fonts"`
		Images map[string]string    `yaml:"images"`
	} `yaml:"assets"`

	// Watch enables the asset watcher on WatchDir (the directory holding
	// the manifest's files).
	Watch    bool   `yaml:"watch"`
	WatchDir string `yaml:"watch_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Title:  "limn",
		Width:  640,
		Height: 480,
	}
}

// LoadConfig reads a YAML configuration file. A missing file is not an
// error — the defaults are returned. A file that exists but does not parse
// is an error; silently falling back would hide typos.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("limn: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("limn: parse config %s: %w", path, err)
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	return cfg, nil
}

// RunConfig converts the window parameters for Run.
func (c *Config) RunConfig() RunConfig {
	return RunConfig{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		Resizable: c.Resizable,
		ShowFPS:   c.ShowFPS,
	}
}

// ApplyConfig sets the UI's debug flags, loads the manifest's assets, and
// starts the asset watcher when enabled. The first asset failure is
// returned; earlier loads stay registered.
func (u *UI) ApplyConfig(cfg *Config) error {
	u.SetDebugMode(cfg.Debug)
	u.SetDebugBounds(cfg.DebugBounds)

	for key, fa := range cfg.Assets.Fonts {
		if err := u.res.LoadFont(key, fa.Path, fa.Size); err != nil {
			return err
		}
	}
	for key, path := range cfg.Assets.Images {
		if err := u.res.LoadImage(key, path); err != nil {
			return err
		}
	}

	if cfg.Watch && cfg.WatchDir != "" {
		if err := u.WatchAssets(cfg.WatchDir); err != nil {
			return err
		}
	}
	return nil
}
