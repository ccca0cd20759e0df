package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidTarget is returned when Load receives anything but a non-nil
// pointer to a struct.
var ErrInvalidTarget = errors.New("config: target must be a non-nil pointer to struct")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> reflect.Value (struct copy)
	loadMu     sync.Mutex
)

// Load populates cfg from environment variables using `env` struct tags.
// The first call loads a .env file from the working directory when present.
// Each struct type is parsed once; later calls for the same type copy the
// cached value into cfg.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrInvalidTarget
	}
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	if cached, ok := cache.Load(rt); ok {
		*cfg = cached.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if cached, ok := cache.Load(rt); ok {
		*cfg = cached.(T)
		return nil
	}

	// Missing .env is normal in production where variables come from the environment
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", rt.Name(), err)
	}

	cache.Store(rt, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Tests use it to reload values
// after changing the environment.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
