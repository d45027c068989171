package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App           AppConfig
	Products      ServiceConfig
	Inventory     ServiceConfig
	Auth          AuthConfig
	HTTP          HTTPConfig
	Pagination    PaginationConfig
	Notifications NotificationConfig
	Stock         StockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// ServiceConfig URL base de un microservicio backend.
type ServiceConfig struct {
	BaseURL string
}

// AuthConfig autenticación por API key estática (se reenvía en cada petición).
type AuthConfig struct {
	APIKey     string
	HeaderName string
}

// HTTPConfig timeouts y política de reintentos para llamadas salientes.
type HTTPConfig struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// PaginationConfig valores por defecto de paginación para listados.
type PaginationConfig struct {
	DefaultPageSize int
}

// NotificationConfig comportamiento de las notificaciones transitorias.
type NotificationConfig struct {
	AutoHideDelay time.Duration
}

// StockConfig umbral para categorizar el stock como bajo.
type StockConfig struct {
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PRODUCTS_BASE_URL, API_KEY, etc.
// Los valores por defecto dependen del entorno: en production el timeout y el
// retardo de reintento son mayores y las notificaciones se ocultan antes.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := getString(v, "APP_ENV", "development")
	prod := env == "production"

	cfg := &Config{
		App: AppConfig{
			Env:  env,
			Name: getString(v, "APP_NAME", "productos-cliente"),
		},
		Products: ServiceConfig{
			BaseURL: getString(v, "PRODUCTS_BASE_URL", "http://localhost:8081"),
		},
		Inventory: ServiceConfig{
			BaseURL: getString(v, "INVENTORY_BASE_URL", "http://localhost:8082"),
		},
		Auth: AuthConfig{
			APIKey:     getString(v, "API_KEY", "clave123"),
			HeaderName: getString(v, "API_KEY_HEADER", "X-API-KEY"),
		},
		HTTP: HTTPConfig{
			Timeout:       msDuration(v, "HTTP_TIMEOUT_MS", pick(prod, 15000, 10000)),
			RetryAttempts: getInt(v, "HTTP_RETRY_ATTEMPTS", 3),
			RetryDelay:    msDuration(v, "HTTP_RETRY_DELAY_MS", pick(prod, 2000, 1000)),
		},
		Pagination: PaginationConfig{
			DefaultPageSize: getInt(v, "PAGE_SIZE", pick(prod, 20, 10)),
		},
		Notifications: NotificationConfig{
			AutoHideDelay: msDuration(v, "NOTIFICATIONS_AUTOHIDE_MS", pick(prod, 3000, 5000)),
		},
		Stock: StockConfig{
			LowStockThreshold: getInt(v, "LOW_STOCK_THRESHOLD", 10),
		},
	}

	return cfg, nil
}

// pick devuelve a si cond es verdadero, si no b.
func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}

func msDuration(v *viper.Viper, key string, defMS int) time.Duration {
	return time.Duration(getInt(v, key, defMS)) * time.Millisecond
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
