package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ADYEN_MERCHANT_ACCOUNT", "Mercantor")
	t.Setenv("ADYEN_LOGIN", "ws@Company.Mercantor")
	t.Setenv("ADYEN_PASSWORD", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Mercantor", cfg.MerchantAccount)
	assert.Equal(t, "test", cfg.Environment)
	assert.False(t, cfg.Live())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerResetTimeout)
	assert.Empty(t, cfg.PolicyRules)
	assert.False(t, cfg.TraceStdout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADYEN_ENVIRONMENT", "LIVE")
	t.Setenv("ADYEN_TIMEOUT", "5s")
	t.Setenv("ADYEN_ENDPOINT_TEMPLATE", "http://localhost:9000/{service}")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "0")
	t.Setenv("TRACE_STDOUT", "true")
	t.Setenv("POLICY_RULES", `[{"id":"cap","expression":"amount > 100000","priority":1}]`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Live())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:9000/{service}", cfg.EndpointTemplate)
	assert.Equal(t, 0, cfg.BreakerFailureThreshold)
	assert.True(t, cfg.TraceStdout)
	require.Len(t, cfg.PolicyRules, 1)
	assert.Equal(t, "cap", cfg.PolicyRules[0].ID)
	assert.Equal(t, "amount > 100000", cfg.PolicyRules[0].Expression)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adyen.env")
	require.NoError(t, os.WriteFile(path, []byte("ADYEN_MERCHANT_ACCOUNT=FromFile\nADYEN_LOGIN=ws\nADYEN_PASSWORD=pw\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ADYEN_MERCHANT_ACCOUNT")
		os.Unsetenv("ADYEN_LOGIN")
		os.Unsetenv("ADYEN_PASSWORD")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.MerchantAccount)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing credentials", map[string]string{"ADYEN_PASSWORD": ""}, "Password"},
		{"bad environment", map[string]string{"ADYEN_ENVIRONMENT": "staging"}, "Environment"},
		{"bad template", map[string]string{"ADYEN_ENDPOINT_TEMPLATE": "http://localhost"}, "EndpointTemplate"},
		{"bad timeout", map[string]string{"ADYEN_TIMEOUT": "soon"}, "ADYEN_TIMEOUT"},
		{"bad threshold", map[string]string{"BREAKER_FAILURE_THRESHOLD": "many"}, "BREAKER_FAILURE_THRESHOLD"},
		{"bad rules", map[string]string{"POLICY_RULES": "{"}, "POLICY_RULES"},
		{"bad log level", map[string]string{"LOG_LEVEL": "chatty"}, "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
