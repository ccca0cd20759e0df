package dto

import (
	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/core/config"
)

// Config tunes body handling. It is loaded from the environment by LoadConfig.
type Config struct {
	// MaxBodySize caps request bodies in bytes. Zero disables the limit.
	MaxBodySize int64 `env:"REQUESTDTO_MAX_BODY_SIZE" envDefault:"1048576"`
	// DefaultContentType decodes bodies sent without a Content-Type header.
	DefaultContentType string `env:"REQUESTDTO_DEFAULT_CONTENT_TYPE" envDefault:"application/json"`
	// StrictJSON rejects unknown fields in JSON and YAML bodies.
	StrictJSON bool `env:"REQUESTDTO_STRICT_JSON" envDefault:"true"`
	// Sanitize strips control characters from every extracted and decoded string.
	Sanitize bool `env:"REQUESTDTO_SANITIZE" envDefault:"false"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		MaxBodySize:        codec.DefaultMaxSize,
		DefaultContentType: codec.MediaTypeJSON,
		StrictJSON:         true,
	}
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func (c Config) codecs() *codec.Registry {
	reg := codec.Default(
		codec.MaxSize(c.MaxBodySize),
		codec.Strict(c.StrictJSON),
		codec.Sanitize(c.Sanitize),
	)
	if c.DefaultContentType != "" {
		reg.SetDefault(c.DefaultContentType)
	}
	return reg
}
