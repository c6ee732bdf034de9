package config

import (
	"os"

	"github.com/jeremyhappach/rule-your-poker-sub003/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for Rule Your Poker
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	StartGameDelay int `yaml:"startGameDelay" envconfig:"start_game_delay"`
	Log            struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Recovery struct {
		// SweepInterval is how often abandoned rounds are swept, in seconds
		SweepInterval int `yaml:"sweepInterval" envconfig:"sweep_interval"`
		// MaxAge is how long a round may sit in processing before the sweep
		// abandons it, in seconds
		MaxAge int `yaml:"maxAge" envconfig:"max_age"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("RYP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	config = Config{}
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return err
	}

	if err := envconfig.Process("ryp", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
