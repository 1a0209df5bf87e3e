package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"www.velocidex.com/golang/go-istat/parser"
)

// IstatConfig holds defaults that may be set in istat-config.yaml or
// through ISTAT_* environment variables. Command line flags override
// them.
type IstatConfig struct {
	SectorSize   int64  `mapstructure:"sector_size"`
	ImageOffset  int64  `mapstructure:"image_offset"`
	Timezone     string `mapstructure:"timezone"`
	StrictFixups bool   `mapstructure:"strict_fixups"`
	MaxClusters  int64  `mapstructure:"max_clusters"`
}

func LoadConfig(path string) (*IstatConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("istat-config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.istat")
		v.AddConfigPath("/etc/istat")
	}

	v.SetDefault("sector_size", 512)
	v.SetDefault("image_offset", 0)
	v.SetDefault("timezone", "UTC")
	v.SetDefault("strict_fixups", false)
	v.SetDefault("max_clusters", 0)

	v.SetEnvPrefix("ISTAT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var not_found viper.ConfigFileNotFoundError
		// An explicitly named file must exist.
		if path != "" || !errors.As(err, &not_found) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config IstatConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.SectorSize <= 0 {
		return nil, fmt.Errorf("invalid sector_size %d", config.SectorSize)
	}

	return &config, nil
}

// Options merges the config with the global command line flags.
func (self *IstatConfig) Options() (parser.Options, error) {
	options := parser.GetDefaultOptions()

	tz := self.Timezone
	if *tz_flag != "" {
		tz = *tz_flag
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return options, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	options.Location = loc
	options.StrictFixups = self.StrictFixups || *strict_flag
	options.MaxClusters = self.MaxClusters

	return options, nil
}
