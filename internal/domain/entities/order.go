package entities

import (
	"errors"
	"time"
)

// OrderStatus is the service-order lifecycle enum.
//
// Any status may move to any other by explicit user selection; DONE and
// DELIVERED are sink states from this layer's point of view (the backend
// remains the authority).
type OrderStatus string

const (
	OrderStatusOpen         OrderStatus = "OPEN"
	OrderStatusInProgress   OrderStatus = "IN_PROGRESS"
	OrderStatusAwaitingPart OrderStatus = "AWAITING_PART"
	OrderStatusDone         OrderStatus = "DONE"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
)

// OrderStatuses lists the selectable statuses in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusOpen,
	OrderStatusInProgress,
	OrderStatusAwaitingPart,
	OrderStatusDone,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusInProgress, OrderStatusAwaitingPart,
		OrderStatusDone, OrderStatusDelivered:
		return true
	}
	return false
}

// Closed reports whether the status puts the order in read-only mode.
func (s OrderStatus) Closed() bool {
	return s == OrderStatusDone || s == OrderStatusDelivered
}

// IntakeType is how the equipment entered the workshop.
type IntakeType string

const (
	IntakeWarranty    IntakeType = "WARRANTY"
	IntakeMaintenance IntakeType = "MAINTENANCE"
	IntakeRepair      IntakeType = "REPAIR"
)

// LaborEntry is a logged unit of work on an order.
type LaborEntry struct {
	ID          int64     `json:"id"`
	Description string    `json:"descripcion"`
	Hours       float64   `json:"horas"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PartEntry is a catalog part consumed on an order.
type PartEntry struct {
	ID         int64 `json:"id"`
	PartID     int64 `json:"repuestoId"`
	Part       *Part `json:"repuesto"`
	Quantity   int   `json:"cantidad"`
	IsWarranty bool  `json:"esGarantia"`
}

// UnitCost is the effective per-unit cost: zero when the part goes out under
// warranty.
func (p PartEntry) UnitCost() float64 {
	if p.IsWarranty || p.Part == nil {
		return 0
	}
	return p.Part.UnitCost
}

func (p PartEntry) Total() float64 {
	return p.UnitCost() * float64(p.Quantity)
}

// Order is the full service-order snapshot the backend returns from
// GET /api/ordenes/:id, including both child collections.
type Order struct {
	ID           int64       `json:"id"`
	Code         string      `json:"codigo"`
	Status       OrderStatus `json:"estado"`
	IntakeType   IntakeType  `json:"tipoIngreso"`
	IntakeReason string      `json:"motivoIngreso"`
	IntakeDate   time.Time   `json:"fechaIngreso"`
	ExitDate     *time.Time  `json:"fechaSalida"`

	SiteID       int64       `json:"sedeId"`
	Site         *Site       `json:"sede"`
	ClientID     int64       `json:"clienteId"`
	Client       *Client     `json:"cliente"`
	EquipmentID  int64       `json:"equipoId"`
	Equipment    *Equipment  `json:"equipo"`
	TechnicianID *int64      `json:"tecnicoId"`
	Technician   *Technician `json:"tecnicoAsignado"`

	Labor []LaborEntry `json:"manoObra"`
	Parts []PartEntry  `json:"repuestos"`
}

// ReadOnly is a pure function of the status: a DONE or DELIVERED order
// accepts no further mutation from this layer.
func (o *Order) ReadOnly() bool { return o.Status.Closed() }

var ErrMalformedOrder = errors.New("malformed order payload")

// Validate checks the decoded snapshot at the trust boundary instead of
// assuming the backend's shape.
func (o *Order) Validate() error {
	if o.ID <= 0 || o.Code == "" || !o.Status.Valid() {
		return ErrMalformedOrder
	}
	return nil
}

// LaborTotalHours sums the hours of all labor entries.
func (o *Order) LaborTotalHours() float64 {
	var total float64
	for _, l := range o.Labor {
		total += l.Hours
	}
	return total
}

// PartsTotal sums the effective cost of all part entries.
func (o *Order) PartsTotal() float64 {
	var total float64
	for _, p := range o.Parts {
		total += p.Total()
	}
	return total
}

// OrderPatch is the partial representation returned by the status and
// technician PATCH endpoints. Pointer fields distinguish "absent" from
// "set"; only present fields are merged into the local snapshot.
type OrderPatch struct {
	Status   *OrderStatus `json:"estado"`
	ExitDate *time.Time   `json:"fechaSalida"`
	// A null tecnicoId (unassignment) decodes to nil, same as an absent key;
	// the technician-assignment operation applies these two unconditionally.
	Technician   *Technician `json:"tecnicoAsignado"`
	TechnicianID *int64      `json:"tecnicoId"`
}
