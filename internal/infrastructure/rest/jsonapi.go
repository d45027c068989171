package rest

// Envolturas del contrato JSON:API que hablan ambos microservicios.
// Este paquete las consume; la definición del contrato pertenece al backend.

type jsonAPIMeta struct {
	TotalRecords int `json:"totalRecords"`
	Page         int `json:"page"`
	Size         int `json:"size"`
	TotalPages   int `json:"totalPages"`
}

// document respuesta exitosa con un único elemento en data.
type document[T any] struct {
	Data T            `json:"data"`
	Meta *jsonAPIMeta `json:"meta,omitempty"`
}

// listDocument respuesta exitosa con lista en data y metadatos de página.
type listDocument[T any] struct {
	Data []T         `json:"data"`
	Meta jsonAPIMeta `json:"meta"`
}

// messageData cuerpo de data para operaciones que solo devuelven un mensaje
// (compra, sincronización).
type messageData struct {
	Message string `json:"message"`
}

// errorDocument respuesta de error con lista estructurada de errores.
type errorDocument struct {
	Errors []ErrorObject `json:"errors"`
}
