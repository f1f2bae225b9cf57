package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Ledger locations. Explicit paths win over DataDir.
	DataDir     string
	SiteLedger  string
	MoneyLedger string
	PlaceLedger string

	// Build configuration
	TopPlaces int
	CacheTTL  time.Duration

	// Logging configuration
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.ledgerlink.yaml or ./.ledgerlink.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile := os.Getenv("LEDGERLINK_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".ledgerlink")
	}

	// Read config file (ignore error if not found)
	_ = v.ReadInConfig()

	config := fromViper(v)
	config.ConfigFile = v.ConfigFileUsed()
	return config, nil
}

// LoadConfigFile reads an explicit config file on top of the environment.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	config := fromViper(v)
	config.ConfigFile = path
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("top_places", constants.DefaultTopPlaces)
	v.SetDefault("cache_ttl", constants.DefaultCacheTTL)
}

func fromViper(v *viper.Viper) *Config {
	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		DataDir:     v.GetString("data_dir"),
		SiteLedger:  v.GetString("site_ledger"),
		MoneyLedger: v.GetString("money_ledger"),
		PlaceLedger: v.GetString("place_ledger"),

		TopPlaces: v.GetInt("top_places"),
		CacheTTL:  v.GetDuration("cache_ttl"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.TopPlaces <= 0 {
		config.TopPlaces = constants.DefaultTopPlaces
	}
	if config.CacheTTL < 0 {
		config.CacheTTL = constants.DefaultCacheTTL
	}
	return config
}

// Paths resolves the three ledger files. A ledger without an explicit path
// uses its conventional name inside DataDir.
func (c *Config) Paths() ledgers.Paths {
	paths := ledgers.DefaultPaths(c.DataDir)
	if c.SiteLedger != "" {
		paths.Site = c.SiteLedger
	}
	if c.MoneyLedger != "" {
		paths.Money = c.MoneyLedger
	}
	if c.PlaceLedger != "" {
		paths.Place = c.PlaceLedger
	}
	return paths
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides a set variable, so .env.local is read first to win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
