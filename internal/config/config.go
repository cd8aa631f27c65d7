package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cardroom-server/internal/util"
)

// Config provides configuration for the card room server
type Config struct {
	loaded        bool
	Listen        string `yaml:"listen" envconfig:"listen"`
	SessionSecret string `yaml:"sessionSecret" envconfig:"session_secret"`
	Log           struct {
		Level string `yaml:"level" envconfig:"level"`
	}
	Game struct {
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		BuyIn      int `yaml:"buyIn" envconfig:"buy_in"`
		MaxSeats   int `yaml:"maxSeats" envconfig:"max_seats"`
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

// Load will load the configuration. A missing config file is not an error;
// defaults and environment variables still apply.
func Load() error {
	config = Config{}
	config.Listen = ":5080"
	config.SessionSecret = "local-development-secret"
	config.Log.Level = "info"
	config.Game.SmallBlind = 5
	config.Game.BigBlind = 10
	config.Game.BuyIn = 1000
	config.Game.MaxSeats = 9

	configFile := util.Getenv("CARDROOM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cardroom", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
