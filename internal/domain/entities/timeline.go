package entities

import "time"

// EventKind tags a timeline event. The list is open-ended: the backend may
// introduce kinds this layer does not know, which render with the raw tag.
type EventKind string

const (
	EventOrderCreated  EventKind = "ORDER_CREATED"
	EventStatusChanged EventKind = "STATUS_CHANGED"
	EventTechAssigned  EventKind = "TECH_ASSIGNED"
	EventLaborAdded    EventKind = "LABOR_ADDED"
	EventPartAdded     EventKind = "PART_ADDED"
)

// TimelineEvent is an append-only audit record the backend emits as a side
// effect of order mutations. Read-only from this layer.
type TimelineEvent struct {
	ID        int64     `json:"id"`
	Kind      EventKind `json:"tipo"`
	Detail    string    `json:"detalle"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    *int64    `json:"usuarioId"`
}
