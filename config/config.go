// Application configuration, built once in main and injected everywhere.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Paddle   PaddleConfig   `mapstructure:"paddle"`
	Email    EmailConfig    `mapstructure:"email"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion  string        `mapstructure:"app_version"`
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Env         string        `mapstructure:"environment"`
	Mode        string        `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`

	UnreadCountTTL time.Duration `mapstructure:"unread_count_ttl"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenExpiration time.Duration `mapstructure:"token_expiration"`
	GoogleClientID  string        `mapstructure:"google_client_id"`
	GoogleRedirect  string        `mapstructure:"google_redirect_url"`
}

type PaddleConfig struct {
	APIToken      string `mapstructure:"api_token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	BaseURL       string `mapstructure:"base_url"`
}

type EmailConfig struct {
	From           string `mapstructure:"from"`
	FromName       string `mapstructure:"from_name"`
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	Enabled        bool   `mapstructure:"enabled"`
}

type WorkerConfig struct {
	ReminderInterval time.Duration `mapstructure:"reminder_interval"`
	BatchSize        int           `mapstructure:"batch_size"`
}

func LoadConfig() (*viper.Viper, error) {
	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	if err := viperInstance.ReadInConfig(); err != nil {
		// Config file is optional when env vars carry the required values.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	applyEnvOverrides(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate fails fast on the values the webhook and billing paths cannot run
// without, instead of surfacing 500s per request later.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host and dbname are required")
	}
	if c.Paddle.APIToken == "" {
		return fmt.Errorf("paddle api token is required")
	}
	if c.Paddle.WebhookSecret == "" {
		return fmt.Errorf("paddle webhook secret is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	return nil
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func applyEnvOverrides(c *Config) {
	c.Database.Host = GetEnv("DB_HOST", c.Database.Host)
	c.Database.Password = GetEnv("DB_PASSWORD", c.Database.Password)
	c.Paddle.APIToken = GetEnv("PADDLE_API_TOKEN", c.Paddle.APIToken)
	c.Paddle.WebhookSecret = GetEnv("PADDLE_WEBHOOK_SECRET", c.Paddle.WebhookSecret)
	c.Auth.JWTSecret = GetEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Email.SendGridAPIKey = GetEnv("SENDGRID_API_KEY", c.Email.SendGridAPIKey)
	c.Redis.Password = GetEnv("REDIS_PASSWORD", c.Redis.Password)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "subtrack_user")
	v.SetDefault("database.dbname", "subtrack")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.unread_count_ttl", 30*time.Second)

	v.SetDefault("auth.token_expiration", 24*time.Hour)

	v.SetDefault("paddle.base_url", "https://api.paddle.com")

	v.SetDefault("email.from", "noreply@subtrack.app")
	v.SetDefault("email.from_name", "SubTrack")
	v.SetDefault("email.enabled", false)

	v.SetDefault("worker.reminder_interval", time.Hour)
	v.SetDefault("worker.batch_size", 100)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
