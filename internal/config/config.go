package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	SRS    SRSConfig    `mapstructure:"srs"`
	Import ImportConfig `mapstructure:"import"`
}

type StoreConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path" validate:"required"`
}

type SRSConfig struct {
	TargetRetention float64 `mapstructure:"target_retention" validate:"gt=0,lt=1"`
}

type ImportConfig struct {
	BatchSize int `mapstructure:"batch_size" validate:"gt=0"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tango")
	}

	v.SetDefault("store.snapshot_path", filepath.Join("data", "snapshot.db"))
	v.SetDefault("srs.target_retention", 0.9)
	v.SetDefault("import.batch_size", 50)

	// Bind the snapshot path to an environment variable so scripts can
	// point the CLI at a different store without a config file.
	if err := v.BindEnv("store.snapshot_path", "TANGO_SNAPSHOT_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind TANGO_SNAPSHOT_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
