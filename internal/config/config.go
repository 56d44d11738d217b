package config

import "github.com/spf13/viper"

// Config holds everything the application reads from the environment.
type Config struct {
	AppPort       string
	DatabaseURL   string // postgres DSN; empty selects SQLite
	SQLitePath    string
	SessionSecret string
	RabbitMQURL   string // empty disables event publishing
	BcryptCost    int
}

// Load reads configuration from environment variables with sensible
// defaults for local development.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("BLOG_DB_PATH", "blog.db")
	viper.SetDefault("SESSION_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("BCRYPT_COST", 0) // 0 selects bcrypt.DefaultCost
	viper.AutomaticEnv()

	return Config{
		AppPort:       viper.GetString("APP_PORT"),
		DatabaseURL:   viper.GetString("DATABASE_URL"),
		SQLitePath:    viper.GetString("BLOG_DB_PATH"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		BcryptCost:    viper.GetInt("BCRYPT_COST"),
	}
}
