package dto

// PaginationOptions paginación para listados (página base cero).
type PaginationOptions struct {
	Page int
	Size int
}

// WithDefaults aplica el tamaño de página por defecto si Size no es válido.
func (p PaginationOptions) WithDefaults(defaultSize int) PaginationOptions {
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}
