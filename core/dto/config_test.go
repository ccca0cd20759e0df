package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/requestdto/core/config"
	"github.com/dmitrymomot/requestdto/core/dto"
)

func TestLoadConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("REQUESTDTO_MAX_BODY_SIZE", "2048")
	t.Setenv("REQUESTDTO_DEFAULT_CONTENT_TYPE", "application/yaml")
	t.Setenv("REQUESTDTO_STRICT_JSON", "false")
	t.Setenv("REQUESTDTO_SANITIZE", "true")

	cfg, err := dto.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dto.Config{
		MaxBodySize:        2048,
		DefaultContentType: "application/yaml",
		StrictJSON:         false,
		Sanitize:           true,
	}, cfg)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := dto.DefaultConfig()
	assert.Equal(t, int64(1<<20), cfg.MaxBodySize)
	assert.Equal(t, "application/json", cfg.DefaultContentType)
	assert.True(t, cfg.StrictJSON)
	assert.False(t, cfg.Sanitize)
}
