package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
	Analytics   Analytics   `mapstructure:",squash"`
	RecordPurge RecordPurge `mapstructure:",squash"`
	RateLimit   RateLimit   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	SSLMode      string `mapstructure:"database_sslmode"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns int    `mapstructure:"database_max_idle_conns"`
}

// Auth holds the secret shared with the service that issues access tokens.
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Analytics struct {
	MaxBuckets          int `mapstructure:"analytics_max_buckets"`
	DefaultLookbackDays int `mapstructure:"analytics_default_lookback_days"`
}

// RecordPurge configures the job that hard deletes records of soft deleted import files.
type RecordPurge struct {
	CronSchedule  string `mapstructure:"record_purge_cron"`
	RetentionDays int    `mapstructure:"record_purge_retention_days"`
	Enabled       bool   `mapstructure:"record_purge_enabled"`
}

// RateLimit bounds analytics requests per project.
type RateLimit struct {
	Enabled bool    `mapstructure:"rate_limit_enabled"`
	RPS     float64 `mapstructure:"rate_limit_rps"`
	Burst   int     `mapstructure:"rate_limit_burst"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/royaltyx")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("AUTH_SECRET", "change_me")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("ANALYTICS_MAX_BUCKETS", 3660)
	viper.SetDefault("ANALYTICS_DEFAULT_LOOKBACK_DAYS", 365)

	viper.SetDefault("RECORD_PURGE_CRON", "30 2 * * *") // every day at 02:30
	viper.SetDefault("RECORD_PURGE_RETENTION_DAYS", 30)
	viper.SetDefault("RECORD_PURGE_ENABLED", false)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("using environment only, viper could not read .env: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = config.Database.BuildDSN()

	return config, nil
}

func (d Database) BuildDSN() string {
	dsn := fmt.Sprintf("%s://%s:%s@%s", d.Driver, d.User, d.Password, d.URL)
	if d.SSLMode != "" {
		dsn = fmt.Sprintf("%s?sslmode=%s", dsn, d.SSLMode)
	}
	return dsn
}

// loadEnvFile loads the first .env found in the working directory or up to two levels above it.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not read working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on the environment")
}
