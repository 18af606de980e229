package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mitropolia-targovistei/calendar-site/internal/chrome"
)

// Constants
const (
	EnvPrefix          = "SITE"
	DefaultAddr        = ":8080"
	DefaultDataDir     = "data"
	DefaultAssetsDir   = "public"
	DefaultYear        = 2025
	DefaultLoadTimeout = 10 * time.Second
	DefaultWidth       = 1024
	ReloadDebounce     = 250 * time.Millisecond

	// Error messages
	ErrInvalidDate     = "Invalid date"
	ErrInvalidIndex    = "Invalid image index"
	ErrInvalidLanguage = "Unsupported language"
	ErrInvalidAction   = "Unknown menu action"
	ErrInternalServer  = "Internal server error"
	ErrFailedToExport  = "Failed to generate export"
	ErrFailedToReload  = "Failed to reload data"
	ErrUnauthorized    = "Unauthorized"

	// Mode strings
	ModeDir = "dir"
	ModeURL = "url"
)

// Config is the runtime configuration. Values come from defaults, an optional config
// file and SITE_* environment variables, in increasing precedence; CLI flags are applied
// on top by the caller.
type Config struct {
	Addr          string
	DataDir       string
	DataURL       string
	AssetsDir     string
	Year          int
	LogLevel      string
	AuthFile      string
	ContactEmail  string
	Watch         bool
	LoadTimeout   time.Duration
	PerExportUIDs bool
	DefaultWidth  int
}

// LoadConfig reads configuration through viper. configFile may be empty.
func LoadConfig(configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("data_url", "")
	v.SetDefault("assets_dir", DefaultAssetsDir)
	v.SetDefault("year", DefaultYear)
	v.SetDefault("log_level", "info")
	v.SetDefault("auth_file", "")
	v.SetDefault("contact_email", "")
	v.SetDefault("watch", false)
	v.SetDefault("load_timeout", DefaultLoadTimeout)
	v.SetDefault("per_export_uids", false)
	v.SetDefault("default_width", DefaultWidth)

	// PORT is honoured for container platforms that only set that variable.
	_ = v.BindEnv("port", "SITE_PORT", "PORT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Addr:          strings.TrimSpace(v.GetString("addr")),
		DataDir:       strings.TrimSpace(v.GetString("data_dir")),
		DataURL:       strings.TrimSpace(v.GetString("data_url")),
		AssetsDir:     strings.TrimSpace(v.GetString("assets_dir")),
		Year:          v.GetInt("year"),
		LogLevel:      strings.TrimSpace(v.GetString("log_level")),
		AuthFile:      strings.TrimSpace(v.GetString("auth_file")),
		ContactEmail:  strings.TrimSpace(v.GetString("contact_email")),
		Watch:         v.GetBool("watch"),
		LoadTimeout:   v.GetDuration("load_timeout"),
		PerExportUIDs: v.GetBool("per_export_uids"),
		DefaultWidth:  v.GetInt("default_width"),
	}
	if port := strings.TrimSpace(v.GetString("port")); port != "" && cfg.Addr == "" {
		cfg.Addr = ":" + port
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.AssetsDir == "" {
		c.AssetsDir = DefaultAssetsDir
	}
	if c.Year <= 0 {
		c.Year = DefaultYear
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.DefaultWidth <= 0 {
		c.DefaultWidth = DefaultWidth
	}
	if c.AuthFile == "" {
		c.AuthFile = filepath.Join(c.DataDir, DefaultAuthFile)
	}
	if c.ContactEmail != "" && !chrome.ValidateEmail(c.ContactEmail) {
		return Config{}, fmt.Errorf("invalid contact email %q", c.ContactEmail)
	}
	return c, nil
}

// Mode reports whether collaborators are read from the data directory or a base URL.
func (c Config) Mode() string {
	if c.DataURL != "" {
		return ModeURL
	}
	return ModeDir
}
