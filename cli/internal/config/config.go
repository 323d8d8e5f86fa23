package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	DatabasePath string
	Provider     string
	Database     string
	DisplayType  string
	Debug        bool
	Telemetry    bool
}

// LoadConfig loads configuration from config files, the environment, and
// .env files, in increasing priority.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".dmql")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "dmql"))

	viper.SetEnvPrefix("DMQL")
	viper.AutomaticEnv()

	viper.SetDefault("database_path", ":memory:")
	viper.SetDefault("provider", "sqlite3")
	viper.SetDefault("display_type", "table")
	viper.SetDefault("debug", false)
	viper.SetDefault("telemetry", false)

	// Config file is optional.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DatabasePath: viper.GetString("database_path"),
		Provider:     viper.GetString("provider"),
		Database:     viper.GetString("database"),
		DisplayType:  viper.GetString("display_type"),
		Debug:        viper.GetBool("debug"),
		Telemetry:    viper.GetBool("telemetry"),
	}
	if url := os.Getenv("DMQL_DATABASE_URL"); url != "" {
		cfg.DatabasePath = url
	}
	return cfg, nil
}

// SaveConfig writes the configuration to the user config directory.
func SaveConfig(cfg *Config) error {
	viper.Set("database_path", cfg.DatabasePath)
	viper.Set("provider", cfg.Provider)
	viper.Set("database", cfg.Database)
	viper.Set("display_type", cfg.DisplayType)
	viper.Set("debug", cfg.Debug)
	viper.Set("telemetry", cfg.Telemetry)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "dmql")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(configPath, ".dmql.yaml"))
}
