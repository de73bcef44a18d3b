package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
)

// EnvPrefix is the prefix of environment overrides, e.g. DLPICK_SOURCE_URL
const EnvPrefix = "DLPICK"

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version" mapstructure:"version"`
	Source    SourceConfig    `toml:"source" mapstructure:"source"`
	Transfer  TransferConfig  `toml:"transfer" mapstructure:"transfer"`
	Selection SelectionConfig `toml:"selection" mapstructure:"selection"`
	UI        UISettings      `toml:"ui" mapstructure:"ui"`
	Log       LogConfig       `toml:"log" mapstructure:"log"`
}

// SourceConfig selects where the file list comes from
type SourceConfig struct {
	Path            string `toml:"path" mapstructure:"path"`                         // .toml or .json manifest
	URL             string `toml:"url" mapstructure:"url"`                           // JSON manifest endpoint
	RefreshInterval string `toml:"refresh_interval" mapstructure:"refresh_interval"` // e.g. "30s", empty disables
	RetryMax        int    `toml:"retry_max" mapstructure:"retry_max"`
}

// TransferConfig controls what happens to a submitted batch
type TransferConfig struct {
	SpoolDir string `toml:"spool_dir" mapstructure:"spool_dir"`
	Preview  bool   `toml:"preview" mapstructure:"preview"`
}

// SelectionConfig tunes the selection controller
type SelectionConfig struct {
	AllowDuplicates bool `toml:"allow_duplicates" mapstructure:"allow_duplicates"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowPath  bool `toml:"show_path" mapstructure:"show_path"`
	AltScreen bool `toml:"alt_screen" mapstructure:"alt_screen"`
}

// LogConfig configures the log file
type LogConfig struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// Interval parses RefreshInterval; zero means no periodic reload
func (s SourceConfig) Interval() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s.RefreshInterval))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate checks values viper cannot check for us
func (c *Config) Validate() error {
	if ri := strings.TrimSpace(c.Source.RefreshInterval); ri != "" {
		d, err := time.ParseDuration(ri)
		if err != nil {
			return fmt.Errorf("invalid source.refresh_interval %q: %w", ri, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid source.refresh_interval %q: must not be negative", ri)
		}
	}
	if c.Source.RetryMax < 0 {
		return fmt.Errorf("invalid source.retry_max %d: must not be negative", c.Source.RetryMax)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dlpick", "config.toml")
}

// NewConfigService creates a config service for path, or the default path
// when path is empty. DLPICK_CONFIG overrides the default path.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	return cs.read(cs.filePath, false)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.read(path, true)
}

func (cs *configService) read(path string, mustExist bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if mustExist || !os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("source.path", d.Source.Path)
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.refresh_interval", d.Source.RefreshInterval)
	v.SetDefault("source.retry_max", d.Source.RetryMax)
	v.SetDefault("transfer.spool_dir", d.Transfer.SpoolDir)
	v.SetDefault("transfer.preview", d.Transfer.Preview)
	v.SetDefault("selection.allow_duplicates", d.Selection.AllowDuplicates)
	v.SetDefault("ui.show_path", d.UI.ShowPath)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Source: SourceConfig{
			RetryMax: 3,
		},
		Transfer: TransferConfig{
			Preview: true,
		},
		UI: UISettings{
			ShowPath:  true,
			AltScreen: true,
		},
		Log: LogConfig{
			File:  "dlpick.log",
			Level: "info",
		},
	}
}
