package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	PathPrefix string `mapstructure:"path_prefix"`
	SitemapDir string `mapstructure:"sitemap_dir"`
	// Files larger than this many bytes are served as attachments.
	// Negative disables forced attachment entirely.
	DispositionThreshold int64   `mapstructure:"disposition_threshold"`
	RateLimitMbps        float64 `mapstructure:"rate_limit_mbps"`
	Gzip                 bool    `mapstructure:"gzip"`
	JournalPath          string  `mapstructure:"journal_path"`
	CacheMaxAge          int     `mapstructure:"cache_max_age"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:           "127.0.0.1:8983",
		PathPrefix:           "sitemaps",
		SitemapDir:           "./sitemaps",
		DispositionThreshold: 8388608, // 8MB
		RateLimitMbps:        0,       // no limit
		Gzip:                 true,
		JournalPath:          "", // journal disabled unless configured
		CacheMaxAge:          3600,
	}
}

// LoadConfig loads configuration from file or creates default config
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	// Set config file name and type
	viper.SetConfigName("sitemapd")
	viper.SetConfigType("yaml")

	// Add config paths in order of priority
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".config", "sitemapd"))
		viper.AddConfigPath(homeDir) // for .sitemapd.yaml
	}
	viper.AddConfigPath("/etc/sitemapd")
	viper.AddConfigPath(".")

	// Set environment variable prefix
	viper.SetEnvPrefix("SITEMAPD")
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found - use defaults (not an error)
			return config, nil
		}
		// Config file was found but another error occurred (parse error, permission, etc.)
		// Return the actual error so users know their config is broken
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal config
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(config *Config) error {
	// Create config directory if it doesn't exist
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "sitemapd")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "sitemapd.yaml")

	// Set values in viper
	viper.Set("listen_addr", config.ListenAddr)
	viper.Set("path_prefix", config.PathPrefix)
	viper.Set("sitemap_dir", config.SitemapDir)
	viper.Set("disposition_threshold", config.DispositionThreshold)
	viper.Set("rate_limit_mbps", config.RateLimitMbps)
	viper.Set("gzip", config.Gzip)
	viper.Set("journal_path", config.JournalPath)
	viper.Set("cache_max_age", config.CacheMaxAge)

	// Write config file
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.config/sitemapd/sitemapd.yaml"
	}

	return filepath.Join(homeDir, ".config", "sitemapd", "sitemapd.yaml")
}
