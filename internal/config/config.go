package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultHome        = "~/.zwallpaper"
	DefaultCollection  = "zwallpaper"
	DefaultMetadataURL = "https://archive.org/metadata"
	DefaultDownloadURL = "https://archive.org/download"
	DefaultDownloads   = "~/Downloads"
	DefaultLogLevel    = "info"
	DefaultServerAddr  = "127.0.0.1:8787"

	fileName = "config.toml"
)

type CollectionConfig struct {
	ID          string `toml:"id" comment:"Internet Archive item holding the wallpapers"`
	MetadataURL string `toml:"metadata_url" comment:"Item metadata endpoint"`
	DownloadURL string `toml:"download_url" comment:"File download endpoint"`
}

type PathsConfig struct {
	Downloads string `toml:"downloads" comment:"Default destination for downloaded wallpapers"`
}

type LogConfig struct {
	Level string `toml:"level" comment:"debug, info, warn, error or off"`
}

type ServerConfig struct {
	Addr string `toml:"addr" comment:"Listen address for zwallpaper-cli serve"`
}

// Config is the on-disk configuration, {home}/config.toml
type Config struct {
	Collection CollectionConfig `toml:"Collection"`
	Paths      PathsConfig      `toml:"Paths"`
	Log        LogConfig        `toml:"Log"`
	Server     ServerConfig     `toml:"Server"`

	// Home is the application directory; never written to the file
	Home string `toml:"-"`
}

// NewDefaultConfig returns the configuration used when no file exists
func NewDefaultConfig(home string) *Config {
	return &Config{
		Collection: CollectionConfig{
			ID:          DefaultCollection,
			MetadataURL: DefaultMetadataURL,
			DownloadURL: DefaultDownloadURL,
		},
		Paths: PathsConfig{
			Downloads: DefaultDownloads,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Home: home,
	}
}

// HomePath returns the application directory from ZWALLPAPER_HOME,
// falling back to DefaultHome
func HomePath() string {
	if env := os.Getenv("ZWALLPAPER_HOME"); env != "" {
		return ExpandPath(env)
	}
	return ExpandPath(DefaultHome)
}

// FromEnvironment loads .env (if present), then the config file under HomePath
func FromEnvironment() (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()
	return Load(HomePath())
}

// Load reads {home}/config.toml, creating it with defaults when missing,
// then applies environment overrides
func Load(home string) (*Config, error) {
	home = ExpandPath(home)
	cfg := NewDefaultConfig(home)

	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(home, fileName)
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cfg.Home = home
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the configuration to {home}/config.toml
func (c *Config) Save() error {
	content, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.Path(), content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ZWALLPAPER_COLLECTION"); v != "" {
		c.Collection.ID = v
	}
	if v := os.Getenv("ZWALLPAPER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ZWALLPAPER_DOWNLOADS"); v != "" {
		c.Paths.Downloads = v
	}
}

// fillDefaults restores fields left blank in a hand-edited file
func (c *Config) fillDefaults() {
	def := NewDefaultConfig(c.Home)
	if strings.TrimSpace(c.Collection.ID) == "" {
		c.Collection.ID = def.Collection.ID
	}
	if c.Collection.MetadataURL == "" {
		c.Collection.MetadataURL = def.Collection.MetadataURL
	}
	if c.Collection.DownloadURL == "" {
		c.Collection.DownloadURL = def.Collection.DownloadURL
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = def.Paths.Downloads
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}

// Path returns the config file location
func (c *Config) Path() string {
	return filepath.Join(c.Home, fileName)
}

// CacheDir returns the root of the image cache
func (c *Config) CacheDir() string {
	return filepath.Join(c.Home, "cache")
}

// IndexPath returns the cache ledger database location
func (c *Config) IndexPath() string {
	return filepath.Join(c.CacheDir(), "index.db")
}

// LogPath returns the log file used while the TUI owns the terminal
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "zwallpaper.log")
}

// DownloadsDir returns the expanded default download destination
func (c *Config) DownloadsDir() string {
	return ExpandPath(c.Paths.Downloads)
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
