package config

import "github.com/spf13/viper"

// Config holds the runtime configuration, read from the environment.
type Config struct {
	DatabaseURL  string
	DatabaseName string
	AppPort      string
	RabbitMQURL  string
}

// Load reads configuration from environment variables with defaults for
// local development. An empty RABBITMQ_URL disables event publishing.
func Load() *Config {
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "zensupply")
	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		DatabaseURL:  viper.GetString("DATABASE_URL"),
		DatabaseName: viper.GetString("DATABASE_NAME"),
		AppPort:      viper.GetString("APP_PORT"),
		RabbitMQURL:  viper.GetString("RABBITMQ_URL"),
	}
}
