package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jjariza/productos-cliente/pkg/config"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// maxBodySize límite de lectura del cuerpo de respuesta.
const maxBodySize = 1 << 20

// Client cliente HTTP saliente compartido por los repositorios: URL base,
// autenticación por API key, timeout y política de reintentos. Cada petición
// lleva un X-Request-ID propio para correlacionar logs.
type Client struct {
	baseURL    string
	apiKey     string
	headerName string
	hc         *http.Client
	retry      RetryPolicy
	log        *logger.Logger
}

// NewClient construye el cliente para un microservicio.
func NewClient(baseURL string, auth config.AuthConfig, httpCfg config.HTTPConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     auth.APIKey,
		headerName: auth.HeaderName,
		hc: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		retry: RetryPolicy{
			MaxAttempts: httpCfg.RetryAttempts,
			BaseDelay:   httpCfg.RetryDelay,
		},
		log: log,
	}
}

// Retry expone la política de reintentos para que los repositorios envuelvan
// sus lecturas.
func (c *Client) Retry() RetryPolicy { return c.retry }

// do ejecuta una petición JSON. body nil = sin cuerpo; out nil = se descarta
// la respuesta. Un estado no-2xx se devuelve como *APIError (con la lista
// estructurada de errores si el cuerpo la trae); un fallo sin respuesta se
// devuelve tal cual (fallo del lado del cliente).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.headerName, c.apiKey)
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		// Sin respuesta del servidor: timeout, DNS, conexión rechazada...
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("metodo", method).
		Str("ruta", path).
		Int("estado", resp.StatusCode).
		Dur("duracion", time.Since(start)).
		Msg("petición completada")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errDoc errorDocument
		if jsonErr := json.Unmarshal(raw, &errDoc); jsonErr == nil {
			apiErr.Errors = errDoc.Errors
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("deserializar respuesta: %w", err)
		}
	}
	return nil
}
