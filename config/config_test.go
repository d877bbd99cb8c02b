package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://dummyjson.com/carts", cfg.CartBaseURL)
	assert.Equal(t, 1, cfg.CartID)
	assert.Equal(t, 999999, cfg.MissingCartID)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.BatchConcurrency)
	assert.Equal(t, 1280, cfg.ViewportWidth)
	assert.Equal(t, 720, cfg.ViewportHeight)
	assert.False(t, cfg.BrowserEnabled())
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"CART_API_BASE_URL": "http://localhost:9000/carts/",
		"CART_ID":           "7",
		"REQUEST_TIMEOUT":   "250ms",
		"WEBDRIVER_URL":     "http://localhost:4444",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CartID)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.True(t, cfg.BrowserEnabled())
	assert.Equal(t, map[string]string{
		"baseURL":       "http://localhost:9000/carts",
		"cartId":        "7",
		"missingCartId": "999999",
	}, cfg.TemplateVars())
}

func TestInvalidValuesAreRejected(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"bad url":              {"CART_API_BASE_URL": "not a url"},
		"zero cart id":         {"CART_ID": "0"},
		"same missing id":      {"CART_ID": "5", "MISSING_CART_ID": "5"},
		"zero request timeout": {"REQUEST_TIMEOUT": "0s"},
		"unparseable number":   {"BATCH_CONCURRENCY": "many"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromMap(vars)
			assert.Error(t, err)
		})
	}
}

func TestZeroPreflightTimeoutDisablesPreflight(t *testing.T) {
	assert.True(t, Default().PreflightEnabled())

	cfg, err := FromMap(map[string]string{"PREFLIGHT_TIMEOUT": "0s"})
	require.NoError(t, err)
	assert.False(t, cfg.PreflightEnabled())

	_, err = FromMap(map[string]string{"PREFLIGHT_TIMEOUT": "-1s"})
	assert.Error(t, err)
}

func TestWithCartBaseURLDoesNotMutateOriginal(t *testing.T) {
	cfg := Default()
	local := cfg.WithCartBaseURL("http://127.0.0.1:1234/carts/")
	assert.Equal(t, "http://127.0.0.1:1234/carts", local.CartBaseURL)
	assert.Equal(t, "https://dummyjson.com/carts", cfg.CartBaseURL)
}
