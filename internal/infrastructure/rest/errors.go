package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jjariza/productos-cliente/internal/domain"
)

// ErrorSource ubicación del error dentro de la petición, según JSON:API.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// ErrorObject entrada individual de la lista de errores del backend.
type ErrorObject struct {
	Code      string       `json:"code"`
	Title     string       `json:"title"`
	Detail    string       `json:"detail"`
	Timestamp string       `json:"timestamp,omitempty"`
	Source    *ErrorSource `json:"source,omitempty"`
	Status    string       `json:"status,omitempty"`
}

// APIError fallo reportado por el servidor: respuesta no-2xx, con o sin
// lista estructurada de errores en el cuerpo.
type APIError struct {
	StatusCode int
	Errors     []ErrorObject
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %s", e.Errors[0].Title, e.Errors[0].Detail)
	}
	return fmt.Sprintf("Error del servidor (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap permite errors.Is contra los sentinelas de dominio.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusConflict:
		return domain.ErrInsufficientStock
	}
	return nil
}

// Normalize convierte cualquier fallo de transporte en un único mensaje
// legible. Regla: si hay lista estructurada de errores no vacía, se usa
// "{title}: {detail}" de la primera entrada; si la respuesta llegó sin lista,
// "Error del servidor ({status}): ..."; si no hubo respuesta, es un fallo del
// lado del cliente.
func Normalize(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return fmt.Sprintf("Error del cliente: %v", err)
}

// normalizedError conserva la causa original (para errors.Is) pero se
// presenta con el mensaje ya normalizado.
type normalizedError struct {
	msg   string
	cause error
}

func (e *normalizedError) Error() string { return e.msg }
func (e *normalizedError) Unwrap() error { return e.cause }
