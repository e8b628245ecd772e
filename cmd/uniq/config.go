package main

import (
	"time"

	"github.com/dmitrymomot/uniq/pkg/logger"
)

type appConfig struct {
	Store      string        `env:"UNIQ_STORE" envDefault:"memory"`
	Table      string        `env:"UNIQ_TABLE" envDefault:"uniq_values"`
	Column     string        `env:"UNIQ_COLUMN" envDefault:"value"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string        `env:"LOG_FORMAT" envDefault:"json"`
	NodeID     int64         `env:"UNIQ_NODE_ID" envDefault:"1"`
	ReserveTTL time.Duration `env:"UNIQ_RESERVE_TTL"`
	Sentry     logger.SentryConfig
}

type redisConfig struct {
	URL string `env:"REDIS_URL,required"`
}
