package config

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion   string `mapstructure:"GENERAL_VERSION"`
	Environment      string `mapstructure:"ENVIRONMENT"`
	ServerPort       int    `mapstructure:"SERVER_PORT"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     int    `mapstructure:"DB_PORT"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	CacheAddress     string `mapstructure:"CACHE_ADDRESS"`
	CachePort        int    `mapstructure:"CACHE_PORT"`
	CorsAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
	AdminPassword    string `mapstructure:"ADMIN_PASSWORD"`
	AuthSecret       string `mapstructure:"AUTH_SECRET"`
}

// StoreConfigured reports whether database credentials are present. When they
// are not, the service still starts: reads come back empty and writes are
// rejected with a store-not-configured error.
func (c Config) StoreConfigured() bool {
	return c.DatabaseHost != "" && c.DatabaseName != "" && c.DatabaseUser != ""
}

// CacheConfigured reports whether a valkey instance is reachable by config.
// Without one an in-process cache takes over.
func (c Config) CacheConfigured() bool {
	return c.CacheAddress != "" && c.CachePort > 0
}

// AdminConfigured reports whether the admin surface can issue tokens.
func (c Config) AdminConfigured() bool {
	return c.AdminPassword != "" && c.AuthSecret != ""
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	// Enable automatic environment variable reading first
	viper.AutomaticEnv()

	// Bind environment variables to config keys
	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"CACHE_ADDRESS", "CACHE_PORT",
		"CORS_ALLOW_ORIGINS",
		"ADMIN_PASSWORD", "AUTH_SECRET",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if viper.IsSet("SERVER_PORT") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		// Load base .env file
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		// Load .env.local overrides if it exists
		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config",
		"port", config.ServerPort,
		"storeConfigured", config.StoreConfigured(),
		"cacheConfigured", config.CacheConfigured(),
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if !config.StoreConfigured() {
		log.Warn("Database credentials missing, starting in degraded mode")
	}
	if !config.AdminConfigured() {
		log.Warn("Admin credentials not fully configured, admin login disabled")
	}

	ConfigInstance = config
	return nil
}
