package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "MTGMCP"
	AppName   = "mtgmcp"
	Version   = "0.3.0"

	DefaultScryfallURL   = "https://api.scryfall.com"
	DefaultEDHRECURL     = "https://json.edhrec.com/pages"
	DefaultArchidektURL  = "https://archidekt.com/api"
	DefaultFetchInterval = 75 * time.Millisecond
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultSimilarTTL    = 365 * 24 * time.Hour
	DefaultLogLevel      = "info"
)

// Config holds every runtime setting for both binaries
type Config struct {
	CacheDir      string        `mapstructure:"cache_dir"`
	LogLevel      string        `mapstructure:"log_level"`
	UserAgent     string        `mapstructure:"user_agent"`
	FetchInterval time.Duration `mapstructure:"fetch_interval"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	SimilarTTL    time.Duration `mapstructure:"similar_ttl"`
	ScryfallURL   string        `mapstructure:"scryfall_url"`
	EDHRECURL     string        `mapstructure:"edhrec_url"`
	ArchidektURL  string        `mapstructure:"archidekt_url"`
}

// UserAgent is the fixed product identifier sent upstream
func UserAgent() string {
	return AppName + "/" + Version
}

// CacheDir returns the cache root from MTGMCP_CACHE_DIR,
// falling back to the per-user cache directory.
func CacheDir() string {
	if env := os.Getenv(EnvPrefix + "_CACHE_DIR"); env != "" {
		return ExpandHome(env)
	}
	base, err := os.UserCacheDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, AppName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// RegisterFlags adds the shared configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (toml, yaml or json)")
	fs.String("cache-dir", CacheDir(), "directory for cached card data")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.Duration("fetch-interval", DefaultFetchInterval, "minimum spacing between upstream requests")
}

// Load resolves configuration from defaults, an optional .env file, an optional
// config file, MTGMCP_* environment variables and flags, in increasing precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("cache_dir", CacheDir())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("user_agent", UserAgent())
	v.SetDefault("fetch_interval", DefaultFetchInterval)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("similar_ttl", DefaultSimilarTTL)
	v.SetDefault("scryfall_url", DefaultScryfallURL)
	v.SetDefault("edhrec_url", DefaultEDHRECURL)
	v.SetDefault("archidekt_url", DefaultArchidektURL)

	if fs != nil {
		for flag, key := range map[string]string{
			"cache-dir":      "cache_dir",
			"log-level":      "log_level",
			"fetch-interval": "fetch_interval",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}

		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(ExpandHome(f.Value.String()))
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.CacheDir = ExpandHome(cfg.CacheDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CacheDir == "" {
		return errors.New("cache_dir cannot be empty")
	}
	if c.FetchInterval < 0 {
		return fmt.Errorf("fetch_interval cannot be negative: %s", c.FetchInterval)
	}
	if c.SimilarTTL <= 0 {
		return fmt.Errorf("similar_ttl must be positive: %s", c.SimilarTTL)
	}
	for name, u := range map[string]string{
		"scryfall_url":  c.ScryfallURL,
		"edhrec_url":    c.EDHRECURL,
		"archidekt_url": c.ArchidektURL,
	} {
		if u == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}
	return nil
}
