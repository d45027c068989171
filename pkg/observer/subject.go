package observer

import "sync"

// Subject mantiene un valor actual y una lista de suscriptores que son
// notificados de forma síncrona en cada reemplazo del valor.
// Los valores se reemplazan siempre completos (copy-on-write por parte del
// emisor), de modo que los suscriptores nunca observan estados parciales.
type Subject[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// NewSubject crea un Subject con el valor inicial dado.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Value devuelve el valor actual.
func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Next reemplaza el valor actual y notifica a todos los suscriptores.
// La notificación es síncrona: al retornar, todos los suscriptores ya
// observaron el nuevo valor.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	s.value = v
	// Copia de la lista para notificar fuera del lock: un suscriptor puede
	// a su vez suscribirse o cancelar sin provocar deadlock.
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update reemplaza el valor aplicando fn bajo el lock del Subject y notifica
// a todos los suscriptores. A diferencia de Value seguido de Next, la
// secuencia leer-transformar-escribir es atómica: dos Update concurrentes
// nunca se pisan. fn no debe bloquear ni llamar de vuelta al Subject.
func (s *Subject[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	fns := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		fns = append(fns, sub)
	}
	s.mu.Unlock()

	for _, sub := range fns {
		sub(v)
	}
}

// Subscribe registra un suscriptor. El suscriptor recibe inmediatamente el
// valor actual y luego cada reemplazo. Devuelve la función de cancelación;
// cancelar equivale a remover el suscriptor de la lista.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SubscriberCount devuelve cuántos suscriptores hay activos.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
