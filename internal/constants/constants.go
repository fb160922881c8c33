package constants

// Remision status values. Transitions are user-driven and unordered:
// any status may be set from any other.
const (
	RemisionStatusPendiente = "pendiente"
	RemisionStatusEmbarcada = "embarcada"
	RemisionStatusEntregada = "entregada"
)

// User status values.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Async task type names.
const (
	TaskRemisionRecountPiezas = "remision:recount_piezas"
	TaskImageFileCleanup      = "image:file_cleanup"
)
