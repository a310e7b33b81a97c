package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/suhanovs/paintx-frontend/internal/store"
)

// Config holds all application configuration
type Config struct {
	Backend    BackendConfig    `mapstructure:"backend"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	Browse     BrowseConfig     `mapstructure:"browse"`
	Server     ServerConfig     `mapstructure:"server"`
	Viewer     ViewerConfig     `mapstructure:"viewer"`
	Store      StoreConfig      `mapstructure:"store"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// BackendConfig points at the catalog backend service
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorefrontConfig holds public-facing site settings
type StorefrontConfig struct {
	SiteName     string `mapstructure:"site_name"`
	SiteURL      string `mapstructure:"site_url"`       // canonical origin, no trailing slash
	ImageBaseURL string `mapstructure:"image_base_url"` // CDN serving thumb/mid/img
}

// BrowseConfig tunes catalog browsing
type BrowseConfig struct {
	PageSize      int           `mapstructure:"page_size"`
	NarrowWidth   int           `mapstructure:"narrow_width"`   // below this, infinite scroll; otherwise page links
	LookaheadRows int           `mapstructure:"lookahead_rows"` // rows from the end that trigger the next page
	URLDebounce   time.Duration `mapstructure:"url_debounce"`
	RestoreDelay  time.Duration `mapstructure:"restore_delay"`
}

// ServerConfig holds settings for the HTTP proxy
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RedisURL       string        `mapstructure:"redis_url"` // empty: in-process rate limiting
	InquiryLimit   int           `mapstructure:"inquiry_limit"`
	InquiryWindow  time.Duration `mapstructure:"inquiry_window"`
	CookieSecure   bool          `mapstructure:"cookie_secure"`
	FacetsTTL      time.Duration `mapstructure:"facets_ttl"`
}

// ViewerConfig selects the program used to open images and pages
type ViewerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// StoreConfig locates the local BoltDB file
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty: memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // "-" logs to stderr
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Storefront: StorefrontConfig{
			SiteName:     "PaintX",
			SiteURL:      "https://paintx.art",
			ImageBaseURL: "https://images.paintx.art",
		},
		Browse: BrowseConfig{
			PageSize:      30,
			NarrowWidth:   100,
			LookaheadRows: 4,
			URLDebounce:   400 * time.Millisecond,
			RestoreDelay:  50 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"http://localhost:3000"},
			InquiryLimit:   5,
			InquiryWindow:  10 * time.Minute,
			CookieSecure:   true,
			FacetsTTL:      time.Hour,
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "store"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "paintx.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "paintx")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "paintx")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "paintx")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "paintx")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom reads config.yaml from the first of dirs that has one.
// PAINTX_* environment variables override file values, e.g.
// PAINTX_BACKEND_URL or PAINTX_SERVER_REDIS_URL.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides
	v.SetEnvPrefix("PAINTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override keys
// absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	for key, val := range configValues(cfg) {
		v.SetDefault(key, val)
	}
}

func configValues(cfg *Config) map[string]any {
	return map[string]any{
		"backend.url":               cfg.Backend.URL,
		"backend.timeout":           cfg.Backend.Timeout,
		"storefront.site_name":      cfg.Storefront.SiteName,
		"storefront.site_url":       cfg.Storefront.SiteURL,
		"storefront.image_base_url": cfg.Storefront.ImageBaseURL,
		"browse.page_size":          cfg.Browse.PageSize,
		"browse.narrow_width":       cfg.Browse.NarrowWidth,
		"browse.lookahead_rows":     cfg.Browse.LookaheadRows,
		"browse.url_debounce":       cfg.Browse.URLDebounce,
		"browse.restore_delay":      cfg.Browse.RestoreDelay,
		"server.addr":               cfg.Server.Addr,
		"server.allowed_origins":    cfg.Server.AllowedOrigins,
		"server.redis_url":          cfg.Server.RedisURL,
		"server.inquiry_limit":      cfg.Server.InquiryLimit,
		"server.inquiry_window":     cfg.Server.InquiryWindow,
		"server.cookie_secure":      cfg.Server.CookieSecure,
		"server.facets_ttl":         cfg.Server.FacetsTTL,
		"viewer.command":            cfg.Viewer.Command,
		"viewer.args":               cfg.Viewer.Args,
		"store.path":                cfg.Store.Path,
		"logging.file":              cfg.Logging.File,
		"logging.level":             cfg.Logging.Level,
	}
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(defaultConfigPath(), cfg)
}

// SaveConfigTo writes cfg as config.yaml inside dir
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, val := range configValues(cfg) {
		if d, ok := val.(time.Duration); ok {
			val = d.String()
		}
		v.Set(key, val)
	}

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a backend is set
func (c *Config) IsConfigured() bool {
	return c.Backend.URL != ""
}

// ClearSession removes the local store, dropping the visitor token
func ClearSession(cfg *Config) error {
	if cfg.Store.Path == "" {
		return nil
	}
	if err := os.RemoveAll(store.ExpandHome(cfg.Store.Path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}
