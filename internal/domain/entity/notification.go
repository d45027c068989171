package entity

import "time"

// NotificationType tipo de notificación transitoria.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// ActionStyle estilo visual de una acción adjunta a una notificación.
type ActionStyle string

const (
	ActionPrimary   ActionStyle = "primary"
	ActionSecondary ActionStyle = "secondary"
	ActionDanger    ActionStyle = "danger"
)

// NotificationAction acción opcional que el usuario puede invocar desde la
// notificación (p. ej. "Reintentar").
type NotificationAction struct {
	Label  string
	Invoke func()
	Style  ActionStyle
}

// Notification mensaje transitorio para el usuario. Duration solo tiene
// sentido cuando AutoHide es true; sin AutoHide la notificación vive hasta
// que se remueve explícitamente o se limpia el bus.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Timestamp time.Time
	AutoHide  bool
	Duration  time.Duration
	Actions   []NotificationAction
}

// NotificationCount conteo de notificaciones activas por severidad.
type NotificationCount struct {
	Total    int
	Errors   int
	Warnings int
}
