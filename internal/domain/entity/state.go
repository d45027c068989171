package entity

import "time"

// LoadingState estado de carga de un repositorio: si hay una petición en
// vuelo, el último error normalizado y cuándo se resolvió la última petición.
// Se sobreescribe completo en cada inicio/fin de petición; no se historiza.
// Error solo es no-nil cuando Loading es false y el último intento falló.
type LoadingState struct {
	Loading    bool
	Error      *string
	LastUpdate *time.Time
}

// Started devuelve el estado "petición en vuelo" (limpia el error previo).
func Started() LoadingState {
	return LoadingState{Loading: true}
}

// Settled devuelve el estado "petición resuelta con éxito".
func Settled(now time.Time) LoadingState {
	return LoadingState{LastUpdate: &now}
}

// Failed devuelve el estado "petición fallida" con el mensaje normalizado.
func Failed(msg string, now time.Time) LoadingState {
	return LoadingState{Error: &msg, LastUpdate: &now}
}
