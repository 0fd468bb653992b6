package config

import (
    "strings"

    "github.com/spf13/viper"
)

// Config 应用配置（config.yaml + 环境变量覆盖）
type Config struct {
    Server   ServerConfig   `mapstructure:"server"`
    Database DatabaseConfig `mapstructure:"database"`
    Redis    RedisConfig    `mapstructure:"redis"`
    Gateway  GatewayConfig  `mapstructure:"gateway"`
    Log      LogConfig      `mapstructure:"log"`
    Sentry   SentryConfig   `mapstructure:"sentry"`
    Trace    TraceConfig    `mapstructure:"trace"`
    JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Driver string `mapstructure:"driver"` // sqlite / postgres
    DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type GatewayConfig struct {
    BaseURL    string  `mapstructure:"base_url"`
    RetryMax   int     `mapstructure:"retry_max"`
    RateLimit  float64 `mapstructure:"rate_limit"`  // 每秒请求数
    RateBurst  int     `mapstructure:"rate_burst"`
    TimeoutSec int     `mapstructure:"timeout_sec"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
    OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type JWTConfig struct {
    Secret string `mapstructure:"secret"`
}

// Load 读取配置；缺省值保证零配置可本地运行
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./configs")

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "debug")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "feedsync.db")
    v.SetDefault("redis.addr", "")
    v.SetDefault("gateway.base_url", "http://127.0.0.1:8080")
    v.SetDefault("gateway.retry_max", 2)
    v.SetDefault("gateway.rate_limit", 50)
    v.SetDefault("gateway.rate_burst", 10)
    v.SetDefault("gateway.timeout_sec", 10)
    v.SetDefault("log.level", "info")
    v.SetDefault("jwt.secret", "dev-secret")

    v.SetEnvPrefix("FEEDSYNC")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    if err := v.ReadInConfig(); err != nil {
        // 配置文件可缺省，其余错误向上抛
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
