package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjariza/productos-cliente/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Valores por defecto según entorno
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_DefaultsDesarrollo(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8081", cfg.Products.BaseURL)
	assert.Equal(t, "http://localhost:8082", cfg.Inventory.BaseURL)
	assert.Equal(t, "clave123", cfg.Auth.APIKey)
	assert.Equal(t, "X-API-KEY", cfg.Auth.HeaderName)

	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout, "timeout de desarrollo")
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
	assert.Equal(t, time.Second, cfg.HTTP.RetryDelay, "retardo base de desarrollo")
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 5*time.Second, cfg.Notifications.AutoHideDelay)
	assert.Equal(t, 10, cfg.Stock.LowStockThreshold)
}

func TestLoad_DefaultsProduccion(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout, "timeout de producción es mayor")
	assert.Equal(t, 2*time.Second, cfg.HTTP.RetryDelay, "retardo base de producción es mayor")
	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 3*time.Second, cfg.Notifications.AutoHideDelay,
		"en producción las notificaciones se ocultan antes")
}

// ──────────────────────────────────────────────────────────────────────────────
// Variables de entorno sobreescriben los defaults
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_EnvVarsSobreescriben(t *testing.T) {
	t.Setenv("PRODUCTS_BASE_URL", "https://productos.ejemplo.com")
	t.Setenv("INVENTORY_BASE_URL", "https://inventario.ejemplo.com")
	t.Setenv("API_KEY", "otra-clave")
	t.Setenv("HTTP_TIMEOUT_MS", "2500")
	t.Setenv("HTTP_RETRY_ATTEMPTS", "5")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://productos.ejemplo.com", cfg.Products.BaseURL)
	assert.Equal(t, "https://inventario.ejemplo.com", cfg.Inventory.BaseURL)
	assert.Equal(t, "otra-clave", cfg.Auth.APIKey)
	assert.Equal(t, 2500*time.Millisecond, cfg.HTTP.Timeout)
	assert.Equal(t, 5, cfg.HTTP.RetryAttempts)
	assert.Equal(t, 3, cfg.Stock.LowStockThreshold)
}

// Un valor numérico malformado cae al default en lugar de convertirse en
// cero (para el timeout, cero significaría "sin timeout").
func TestLoad_ValorNumericoMalformadoUsaDefault(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_MS", "abc")
	t.Setenv("HTTP_RETRY_ATTEMPTS", "tres")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
}
