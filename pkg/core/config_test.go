package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("42")

	assert.Equal(t, "42", config.UserID)
	assert.Equal(t, ProductionURL, config.BaseURL)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, "picostocks/go", config.UserAgent)
	assert.Equal(t, 4, config.Workers)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.PrivateKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid_config",
			config:  DefaultConfig("42"),
			wantErr: false,
		},
		{
			name:    "valid_with_key",
			config:  DefaultConfig("42").WithPrivateKey(strings.Repeat("ab", 32)),
			wantErr: false,
		},
		{
			name:    "missing_user",
			config:  DefaultConfig(""),
			wantErr: true,
			errMsg:  "UserID",
		},
		{
			name:    "missing_base_url",
			config:  DefaultConfig("42").WithBaseURL(""),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "invalid_base_url",
			config:  DefaultConfig("42").WithBaseURL("not a url"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "invalid_timeout",
			config:  DefaultConfig("42").WithTimeout(-1 * time.Second),
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name:    "zero_workers",
			config:  DefaultConfig("42").WithWorkers(0),
			wantErr: true,
			errMsg:  "Workers",
		},
		{
			name:    "non_hex_key",
			config:  DefaultConfig("42").WithPrivateKey("zz-not-hex"),
			wantErr: true,
			errMsg:  "PrivateKey",
		},
		{
			name: "invalid_log_level",
			config: func() *Config {
				c := DefaultConfig("42")
				c.LogLevel = "verbose"
				return c
			}(),
			wantErr: true,
			errMsg:  "LogLevel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.errMsg), "expected error to contain %q, got %q", tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_APIRoot(t *testing.T) {
	assert.Equal(t, "https://picostocks.com/api/v1", DefaultConfig("1").APIRoot())
	assert.Equal(t, "http://localhost:8000/v1", DefaultConfig("1").WithBaseURL("http://localhost:8000/v1").APIRoot())
}

func TestConfig_Chained(t *testing.T) {
	config := DefaultConfig("7")
	result := config.
		WithBaseURL("https://api.picostocks.com/v1/").
		WithTimeout(30 * time.Second).
		WithWorkers(8).
		WithPrivateKey("00ff")

	assert.Equal(t, config, result)
	assert.Equal(t, "https://api.picostocks.com/v1/", config.BaseURL)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, 8, config.Workers)
	assert.Equal(t, "00ff", config.PrivateKey)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvUserID, "99")
	t.Setenv(EnvBaseURL, "http://localhost:8000/api/v1/")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvWorkers, "2")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvPrivateKey, "")

	config, err := LoadEnv("")
	require.NoError(t, err)

	assert.Equal(t, "99", config.UserID)
	assert.Equal(t, "http://localhost:8000/api/v1/", config.BaseURL)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, "debug", config.LogLevel)
	assert.NoError(t, config.Validate())
}

func TestLoadEnv_File(t *testing.T) {
	t.Setenv(EnvUserID, "")
	t.Setenv(EnvPrivateKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvUserID)
	os.Unsetenv(EnvPrivateKey)

	path := filepath.Join(t.TempDir(), ".env")
	content := EnvUserID + "=314\n" + EnvPrivateKey + "=" + strings.Repeat("0a", 32) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadEnv(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv(EnvUserID)
		os.Unsetenv(EnvPrivateKey)
	})

	assert.Equal(t, "314", config.UserID)
	assert.Equal(t, strings.Repeat("0a", 32), config.PrivateKey)
	assert.Equal(t, ProductionURL, config.BaseURL)
}

func TestLoadEnv_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})

	t.Run("bad_timeout", func(t *testing.T) {
		t.Setenv(EnvTimeout, "soon")
		_, err := LoadEnv("")
		assert.ErrorContains(t, err, EnvTimeout)
	})

	t.Run("bad_workers", func(t *testing.T) {
		t.Setenv(EnvTimeout, "")
		t.Setenv(EnvWorkers, "many")
		_, err := LoadEnv("")
		assert.ErrorContains(t, err, EnvWorkers)
	})
}
