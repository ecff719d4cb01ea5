package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// config holds command defaults read from ~/.xlcell/config.yaml and
// XLCELL_* environment variables. Flags given on the command line win.
type config struct {
	Sheet    string `mapstructure:"sheet"`
	Output   string `mapstructure:"output"`
	Location string `mapstructure:"location"`
}

func loadConfig() (*config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	v.SetDefault("sheet", "")
	v.SetDefault("output", "text")
	v.SetDefault("location", "")

	v.SetEnvPrefix("XLCELL")
	v.AutomaticEnv()

	// A missing config file is fine, a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xlcell"
	}
	return filepath.Join(home, ".xlcell")
}
