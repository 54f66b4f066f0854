package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/third774/dyte-remix/internal/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *config.Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"DYTE_AUTH_HEADER": "Basic abc"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, "https://api.dyte.io/", cfg.DyteBaseURL)
				assert.Equal(t, "__session", cfg.SessionCookieName)
				assert.Equal(t, "default_session_secret", cfg.SessionSecret)
				assert.Equal(t, config.MetadataBackendMemory, cfg.MetadataBackend)
				assert.Equal(t, 30*time.Second, cfg.DyteTimeout())
				assert.Equal(t, 720*time.Hour, cfg.SessionMaxAge())
				// 3 search attempts + create + token issue at 30s, 2 backoff pauses, 15s slack.
				assert.Equal(t, 5*30*time.Second+4*time.Second+15*time.Second, cfg.WriteTimeout())
				assert.False(t, cfg.IsProduction())
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"DYTE_AUTH_HEADER":     "Basic abc",
				"DYTE_BASE_URL":        "http://localhost:9999/",
				"ENVIRONMENT":          "production",
				"METADATA_BACKEND":     "redis",
				"DYTE_SEARCH_RETRIES":  "0",
				"DYTE_TIMEOUT_SECONDS": "5",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "http://localhost:9999/", cfg.DyteBaseURL)
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, config.MetadataBackendRedis, cfg.MetadataBackend)
				assert.Equal(t, 0, cfg.DyteSearchRetries)
				assert.Equal(t, 5*time.Second, cfg.DyteTimeout())
				assert.Equal(t, 3*5*time.Second+15*time.Second, cfg.WriteTimeout())
			},
		},
		{
			name:    "missing auth header",
			env:     map[string]string{"DYTE_AUTH_HEADER": ""},
			wantErr: true,
		},
		{
			name: "unknown backend",
			env: map[string]string{
				"DYTE_AUTH_HEADER": "Basic abc",
				"METADATA_BACKEND": "cloudflare-kv",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
