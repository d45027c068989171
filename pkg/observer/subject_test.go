package observer_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjariza/productos-cliente/pkg/observer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Subject — valor actual y suscripción
// ──────────────────────────────────────────────────────────────────────────────

func TestSubject_ValorInicial(t *testing.T) {
	s := observer.NewSubject(42)
	assert.Equal(t, 42, s.Value(), "el subject debe arrancar con el valor inicial")
}

func TestSubject_NextActualizaValor(t *testing.T) {
	s := observer.NewSubject("a")
	s.Next("b")
	assert.Equal(t, "b", s.Value())
}

// El suscriptor recibe el valor actual de inmediato, sin esperar un Next.
func TestSubject_SuscriptorRecibeValorActualAlSuscribirse(t *testing.T) {
	s := observer.NewSubject(7)

	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })

	require.Equal(t, []int{7}, got, "la suscripción debe entregar el valor vigente de inmediato")
}

func TestSubject_NextNotificaATodosLosSuscriptores(t *testing.T) {
	s := observer.NewSubject(0)

	var a, b []int
	s.Subscribe(func(v int) { a = append(a, v) })
	s.Subscribe(func(v int) { b = append(b, v) })

	s.Next(1)
	s.Next(2)

	assert.Equal(t, []int{0, 1, 2}, a)
	assert.Equal(t, []int{0, 1, 2}, b)
}

func TestSubject_CancelarDejaDeNotificar(t *testing.T) {
	s := observer.NewSubject(0)

	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })

	s.Next(1)
	cancel()
	s.Next(2)

	assert.Equal(t, []int{0, 1}, got, "tras cancelar no deben llegar más valores")
	assert.Equal(t, 0, s.SubscriberCount())
}

// Cancelar dos veces no debe entrar en pánico ni afectar a otros suscriptores.
func TestSubject_CancelarEsIdempotente(t *testing.T) {
	s := observer.NewSubject(0)

	var otros int
	cancel := s.Subscribe(func(int) {})
	s.Subscribe(func(int) { otros++ })

	cancel()
	cancel()
	s.Next(1)

	assert.Equal(t, 2, otros, "el otro suscriptor debe seguir recibiendo valores")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Update aplica la transformación bajo el lock: transformaciones concurrentes
// nunca se pisan, a diferencia de un Value seguido de Next.
func TestSubject_UpdateEsAtomico(t *testing.T) {
	const n = 100
	s := observer.NewSubject(map[int]bool{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			s.Update(func(current map[int]bool) map[int]bool {
				next := make(map[int]bool, len(current)+1)
				for key := range current {
					next[key] = true
				}
				next[k] = true
				return next
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Value(), n, "ninguna transformación concurrente debe perderse")
}

func TestSubject_UpdateNotificaSuscriptores(t *testing.T) {
	s := observer.NewSubject(1)

	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })

	s.Update(func(v int) int { return v + 1 })

	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, s.Value())
}

// Escrituras concurrentes no deben corromper el estado ni disparar el detector
// de carreras.
func TestSubject_NextConcurrente(t *testing.T) {
	s := observer.NewSubject(0)
	s.Subscribe(func(int) {})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Next(v)
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, s.Value(), 0)
	assert.Less(t, s.Value(), 50)
}
