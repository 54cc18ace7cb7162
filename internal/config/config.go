package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	S3        S3Config        `mapstructure:"s3"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`

	// Seed admin credentials; when both are set, an admin account is
	// created (or its password realigned) at startup.
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type S3Config struct {
	Endpoint         string `mapstructure:"endpoint"`
	Region           string `mapstructure:"region"`
	Bucket           string `mapstructure:"bucket"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UsePathStyle     bool   `mapstructure:"use_path_style"`
	PresignExpireSec int    `mapstructure:"presign_expire_sec"`
}

type PaymentConfig struct {
	// SettingsCacheTTLSec bounds how stale the public payment settings
	// endpoint may be after an admin update.
	SettingsCacheTTLSec int `mapstructure:"settings_cache_ttl_sec"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Load reads config.yaml from the working directory (or CONFIG_PATH) and
// applies SANGAM_* environment overrides, e.g. SANGAM_DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "sangam-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.presign_expire_sec", 900)
	v.SetDefault("payment.settings_cache_ttl_sec", 60)
	v.SetDefault("telemetry.sample_ratio", 1.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if p := v.GetString("config_path"); p != "" {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("SANGAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
