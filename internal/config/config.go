package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Clients  ClientsConfig
	Breaker  BreakerConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ClientsConfig struct {
	ProductServiceURL string
	PaymentServiceURL string
	Timeout           time.Duration
}

// BreakerConfig tunes the circuit breaker on the payment-details read.
// The breaker trips when, over one Interval, at least MinRequests calls
// were observed and the failure ratio reached FailureRatio. After
// CoolDown it admits up to MaxHalfOpenRequests trial calls.
type BreakerConfig struct {
	MaxHalfOpenRequests uint32
	Interval            time.Duration
	CoolDown            time.Duration
	FailureRatio        float64
	MinRequests         uint32
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "denethor")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "orders")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("PAYMENT_SERVICE_URL", "http://localhost:8082")
	viper.SetDefault("CLIENT_TIMEOUT", "5s")
	viper.SetDefault("BREAKER_MAX_HALF_OPEN_REQUESTS", 3)
	viper.SetDefault("BREAKER_INTERVAL", "1m")
	viper.SetDefault("BREAKER_COOL_DOWN", "30s")
	viper.SetDefault("BREAKER_FAILURE_RATIO", 0.5)
	viper.SetDefault("BREAKER_MIN_REQUESTS", 5)
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	clientTimeout, err := time.ParseDuration(viper.GetString("CLIENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	breakerInterval, err := time.ParseDuration(viper.GetString("BREAKER_INTERVAL"))
	if err != nil {
		return nil, err
	}

	breakerCoolDown, err := time.ParseDuration(viper.GetString("BREAKER_COOL_DOWN"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Clients: ClientsConfig{
			ProductServiceURL: viper.GetString("PRODUCT_SERVICE_URL"),
			PaymentServiceURL: viper.GetString("PAYMENT_SERVICE_URL"),
			Timeout:           clientTimeout,
		},
		Breaker: BreakerConfig{
			MaxHalfOpenRequests: viper.GetUint32("BREAKER_MAX_HALF_OPEN_REQUESTS"),
			Interval:            breakerInterval,
			CoolDown:            breakerCoolDown,
			FailureRatio:        viper.GetFloat64("BREAKER_FAILURE_RATIO"),
			MinRequests:         viper.GetUint32("BREAKER_MIN_REQUESTS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
