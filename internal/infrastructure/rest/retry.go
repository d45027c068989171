package rest

import (
	"context"
	"time"

	"github.com/jjariza/productos-cliente/pkg/logger"
)

// RetryPolicy reintentos acotados con retardo lineal: antes del reintento N
// se espera BaseDelay × N. Todos los fallos de transporte se reintentan por
// igual; no se distingue entre errores recuperables y no recuperables.
type RetryPolicy struct {
	MaxAttempts int // número TOTAL de intentos (mínimo 1)
	BaseDelay   time.Duration
}

// Do ejecuta fn hasta MaxAttempts veces. Devuelve nil al primer éxito; si
// todos los intentos fallan, devuelve el error del último. La espera entre
// intentos respeta la cancelación del contexto.
func (p RetryPolicy) Do(ctx context.Context, log *logger.Logger, op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for n := 1; n <= attempts; n++ {
		if err = fn(); err == nil {
			return nil
		}
		if n == attempts {
			break
		}
		delay := time.Duration(n) * p.BaseDelay
		log.Warn().
			Str("operacion", op).
			Int("reintento", n).
			Dur("espera", delay).
			Err(err).
			Msg("reintentando operación")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
