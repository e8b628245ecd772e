// Package config loads environment variables into typed structs.
//
// A .env file in the working directory is read once, on first use, without
// overriding variables that are already set. Each struct type is parsed once
// and cached; later calls for the same type return the cached value.
//
//	type Config struct {
//		Store    string `env:"UNIQ_STORE" envDefault:"memory"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> value
)

// Load fills cfg from the environment using caarlos0/env struct tags.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	typ := reflect.TypeFor[T]()
	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return errors.Join(ErrParse, err)
	}

	v, _ := cache.LoadOrStore(typ, fresh)
	*cfg = v.(T)
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

func reset() {
	cache.Clear()
}
