package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/pkg/logger"
	"github.com/jjariza/productos-cliente/pkg/observer"
)

// Service bus de notificaciones transitorias. Mantiene la lista ordenada de
// mensajes activos y la publica como flujo observable; cada mutación
// reemplaza la lista completa (copy-on-write), así los suscriptores siempre
// observan un snapshot consistente. Ciclo de vida por notificación:
// creada → visible → removida, sin estados intermedios.
type Service struct {
	log           *logger.Logger
	autoHideDelay time.Duration

	mu     sync.Mutex
	nextID int
	list   *observer.Subject[[]entity.Notification]
}

// NewService construye el bus. autoHideDelay es la duración por defecto de
// las notificaciones con auto-ocultado.
func NewService(autoHideDelay time.Duration, log *logger.Logger) *Service {
	return &Service{
		log:           log.Component("notificaciones"),
		autoHideDelay: autoHideDelay,
		nextID:        1,
		list:          observer.NewSubject([]entity.Notification{}),
	}
}

// Notifications devuelve el flujo observable de notificaciones activas.
func (s *Service) Notifications() *observer.Subject[[]entity.Notification] {
	return s.list
}

// Active devuelve el snapshot actual de notificaciones.
func (s *Service) Active() []entity.Notification {
	return s.list.Value()
}

// generateId produce un ID único: contador monótono + timestamp.
func (s *Service) generateID() string {
	s.mu.Lock()
	n := s.nextID
	s.nextID++
	s.mu.Unlock()
	return fmt.Sprintf("notification_%d_%d", n, time.Now().UnixMilli())
}

// add agrega la notificación a la lista y programa su auto-ocultado si aplica.
// La mutación corre bajo el lock del Subject: el auto-ocultado dispara Remove
// desde el goroutine del timer y no debe pisar un alta concurrente.
func (s *Service) add(n entity.Notification) string {
	n.ID = s.generateID()
	n.Timestamp = time.Now()

	s.list.Update(func(current []entity.Notification) []entity.Notification {
		next := make([]entity.Notification, 0, len(current)+1)
		next = append(next, current...)
		return append(next, n)
	})

	if n.AutoHide {
		id := n.ID
		time.AfterFunc(n.Duration, func() { s.Remove(id) })
	}

	s.log.Debug().Str("id", n.ID).Str("tipo", string(n.Type)).Str("titulo", n.Title).Msg("nueva notificación")
	return n.ID
}

// Success agrega una notificación de éxito con auto-ocultado.
func (s *Service) Success(title, message string) string {
	return s.add(entity.Notification{
		Type:     entity.NotificationSuccess,
		Title:    title,
		Message:  message,
		AutoHide: true,
		Duration: s.autoHideDelay,
	})
}

// Error agrega una notificación de error. Por defecto no se auto-oculta:
// requiere que el usuario la vea y la descarte.
func (s *Service) Error(title, message string, actions ...entity.NotificationAction) string {
	return s.add(entity.Notification{
		Type:    entity.NotificationError,
		Title:   title,
		Message: message,
		Actions: actions,
	})
}

// Warning agrega una notificación de advertencia con auto-ocultado.
func (s *Service) Warning(title, message string) string {
	return s.add(entity.Notification{
		Type:     entity.NotificationWarning,
		Title:    title,
		Message:  message,
		AutoHide: true,
		Duration: s.autoHideDelay,
	})
}

// WarningSticky agrega una advertencia que no se auto-oculta.
func (s *Service) WarningSticky(title, message string) string {
	return s.add(entity.Notification{
		Type:    entity.NotificationWarning,
		Title:   title,
		Message: message,
	})
}

// Info agrega una notificación informativa con auto-ocultado.
func (s *Service) Info(title, message string) string {
	return s.add(entity.Notification{
		Type:     entity.NotificationInfo,
		Title:    title,
		Message:  message,
		AutoHide: true,
		Duration: s.autoHideDelay,
	})
}

// Add agrega una notificación construida por el llamador (duración y
// auto-ocultado explícitos). Devuelve el ID asignado.
func (s *Service) Add(n entity.Notification) string {
	return s.add(n)
}

// Remove elimina una notificación puntual. Remover un ID inexistente es un
// no-op.
func (s *Service) Remove(id string) {
	s.list.Update(func(current []entity.Notification) []entity.Notification {
		next := make([]entity.Notification, 0, len(current))
		for _, n := range current {
			if n.ID == id {
				continue
			}
			next = append(next, n)
		}
		return next
	})
}

// Clear elimina todas las notificaciones. Idempotente.
func (s *Service) Clear() {
	s.list.Next([]entity.Notification{})
	s.log.Debug().Msg("todas las notificaciones removidas")
}

// ClearByType elimina todas las notificaciones de un tipo.
func (s *Service) ClearByType(t entity.NotificationType) {
	s.list.Update(func(current []entity.Notification) []entity.Notification {
		next := make([]entity.Notification, 0, len(current))
		for _, n := range current {
			if n.Type == t {
				continue
			}
			next = append(next, n)
		}
		return next
	})
}

// ByType devuelve las notificaciones activas de un tipo.
func (s *Service) ByType(t entity.NotificationType) []entity.Notification {
	var result []entity.Notification
	for _, n := range s.list.Value() {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}

// HasErrors indica si hay notificaciones de error activas.
func (s *Service) HasErrors() bool {
	for _, n := range s.list.Value() {
		if n.Type == entity.NotificationError {
			return true
		}
	}
	return false
}

// Count devuelve el conteo de notificaciones activas por severidad.
func (s *Service) Count() entity.NotificationCount {
	var c entity.NotificationCount
	for _, n := range s.list.Value() {
		c.Total++
		switch n.Type {
		case entity.NotificationError:
			c.Errors++
		case entity.NotificationWarning:
			c.Warnings++
		}
	}
	return c
}

// ── Constructores de conveniencia para los casos comunes ─────────────────────

// ProductCreated notifica la creación exitosa de un producto.
func (s *Service) ProductCreated(productName string) string {
	return s.Success("Producto Creado",
		fmt.Sprintf("El producto %q ha sido creado exitosamente.", productName))
}

// ProductUpdated notifica la actualización exitosa de un producto.
func (s *Service) ProductUpdated(productName string) string {
	return s.Success("Producto Actualizado",
		fmt.Sprintf("El producto %q ha sido actualizado exitosamente.", productName))
}

// ProductDeleted notifica la eliminación exitosa de un producto.
func (s *Service) ProductDeleted(productName string) string {
	return s.Success("Producto Eliminado",
		fmt.Sprintf("El producto %q ha sido eliminado exitosamente.", productName))
}

// PurchaseCompleted notifica una compra realizada.
func (s *Service) PurchaseCompleted(productName string, quantity int) string {
	return s.Success("Compra Realizada",
		fmt.Sprintf("Se han comprado %d unidades de %q exitosamente.", quantity, productName))
}

// InsufficientStock advierte que la cantidad solicitada excede el stock.
func (s *Service) InsufficientStock(productName string, available, requested int) string {
	return s.WarningSticky("Stock Insuficiente",
		fmt.Sprintf("Solo hay %d unidades disponibles de %q. Se solicitaron %d unidades.",
			available, productName, requested))
}

// ConnectionError notifica un fallo de conexión con acción de reintento.
func (s *Service) ConnectionError(details string, retry func()) string {
	if details == "" {
		details = "No se pudo conectar con el servidor. Verifica tu conexión a internet."
	}
	var actions []entity.NotificationAction
	if retry != nil {
		actions = append(actions, entity.NotificationAction{
			Label:  "Reintentar",
			Invoke: retry,
			Style:  entity.ActionPrimary,
		})
	}
	return s.Error("Error de Conexión", details, actions...)
}

// AuthenticationError notifica que la API key no es válida.
func (s *Service) AuthenticationError() string {
	return s.Error("Error de Autenticación",
		"La clave de API no es válida. Contacta al administrador del sistema.")
}

// DataLoaded informa cuántos elementos se cargaron.
func (s *Service) DataLoaded(itemType string, count int) string {
	return s.Info("Datos Cargados",
		fmt.Sprintf("Se han cargado %d %s exitosamente.", count, itemType))
}

// SyncCompleted notifica una sincronización de inventario completada.
func (s *Service) SyncCompleted(productName string) string {
	msg := "La sincronización de inventario ha sido completada."
	if productName != "" {
		msg = fmt.Sprintf("El inventario de %q ha sido sincronizado.", productName)
	}
	return s.Success("Sincronización Completada", msg)
}

// LowStockAlert advierte stock bajo de un producto.
func (s *Service) LowStockAlert(productName string, currentStock int) string {
	return s.WarningSticky("Stock Bajo",
		fmt.Sprintf("El producto %q tiene solo %d unidades en stock.", productName, currentStock))
}

// OutOfStockAlert notifica que un producto está agotado.
func (s *Service) OutOfStockAlert(productName string) string {
	return s.Error("Sin Stock", fmt.Sprintf("El producto %q está sin stock.", productName))
}
