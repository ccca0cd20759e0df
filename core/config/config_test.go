package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/requestdto/core/config"
)

type testConfig struct {
	Name    string `env:"CONFIG_TEST_NAME" envDefault:"default"`
	Limit   int64  `env:"CONFIG_TEST_LIMIT" envDefault:"1024"`
	Enabled bool   `env:"CONFIG_TEST_ENABLED"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default", cfg.Name)
		assert.Equal(t, int64(1024), cfg.Limit)
		assert.False(t, cfg.Enabled)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)
		t.Setenv("CONFIG_TEST_NAME", "api")
		t.Setenv("CONFIG_TEST_LIMIT", "2048")
		t.Setenv("CONFIG_TEST_ENABLED", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "api", cfg.Name)
		assert.Equal(t, int64(2048), cfg.Limit)
		assert.True(t, cfg.Enabled)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)
		t.Setenv("CONFIG_TEST_NAME", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CONFIG_TEST_NAME", "second")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)

		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("nil target", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrInvalidTarget)
	})

	t.Run("non struct target", func(t *testing.T) {
		var n int
		assert.ErrorIs(t, config.Load(&n), config.ErrInvalidTarget)
	})
}
