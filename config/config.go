package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	LogDev   bool           `mapstructure:"log_dev"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
}

type GameConfig struct {
	MaxPlayers   int `mapstructure:"max_players"`
	MinPlayers   int `mapstructure:"min_players"`
	DeckSize     int `mapstructure:"deck_size"`
	HandSize     int `mapstructure:"hand_size"`
	CodeLength   int `mapstructure:"code_length"`
	TickSeconds  int `mapstructure:"tick_seconds"`
	StatsSeconds int `mapstructure:"stats_seconds"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"` // "gorm" or "sql"
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("fruitclash")
	viper.AutomaticEnv()

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("server.rpc_address", ":9101")
	viper.SetDefault("game.max_players", 4)
	viper.SetDefault("game.min_players", 2)
	viper.SetDefault("game.deck_size", 16)
	viper.SetDefault("game.hand_size", 4)
	viper.SetDefault("game.code_length", 4)
	viper.SetDefault("game.tick_seconds", 30)
	viper.SetDefault("game.stats_seconds", 10)
	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.driver", "gorm")
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("log_dev", false)

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional; defaults and env vars are enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
