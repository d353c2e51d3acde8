package config

import (
    "errors"
    "strings"
    "time"

    "github.com/spf13/viper"
)

type Config struct {
    Server    ServerConfig    `mapstructure:"server"`
    Database  DatabaseConfig  `mapstructure:"database"`
    Redis     RedisConfig     `mapstructure:"redis"`
    OTP       OTPConfig       `mapstructure:"otp"`
    RateLimit RateLimitConfig `mapstructure:"rate_limit"`
    Log       LogConfig       `mapstructure:"log"`
    Sentry    SentryConfig    `mapstructure:"sentry"`
    Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release / test
}

type DatabaseConfig struct {
    Driver       string `mapstructure:"driver"` // sqlite / postgres
    DSN          string `mapstructure:"dsn"`
    MaxOpenConns int    `mapstructure:"max_open_conns"`
    MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
    Addr          string        `mapstructure:"addr"` // 留空则关闭缓存
    Password      string        `mapstructure:"password"`
    DB            int           `mapstructure:"db"`
    ConnectionTTL time.Duration `mapstructure:"connection_ttl"`
}

type OTPConfig struct {
    TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
    RPS   float64 `mapstructure:"rps"` // <=0 关闭限流
    Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
    Enabled     bool   `mapstructure:"enabled"`
    Endpoint    string `mapstructure:"endpoint"`
    ServiceName string `mapstructure:"service_name"`
}

// Load 读取 config.yaml 并叠加 CAMPUSLINK_ 前缀的环境变量
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")
    v.SetEnvPrefix("CAMPUSLINK")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "debug")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "campuslink.db")
    v.SetDefault("database.max_open_conns", 50)
    v.SetDefault("database.max_idle_conns", 10)
    v.SetDefault("redis.connection_ttl", 5*time.Minute)
    v.SetDefault("otp.ttl", 10*time.Minute)
    v.SetDefault("rate_limit.rps", 200)
    v.SetDefault("rate_limit.burst", 400)
    v.SetDefault("log.level", "info")
    v.SetDefault("tracing.service_name", "campuslink-backend")

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if !errors.As(err, &notFound) {
            return nil, err
        }
        // 没有配置文件时全靠默认值和环境变量
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
