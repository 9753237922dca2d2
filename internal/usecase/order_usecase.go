package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderID       = errors.New("invalid order id")
	ErrOrderClosed          = errors.New("order is closed and read-only")
	ErrConfirmationRequired = errors.New("closing an order requires confirmation")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrMissingDescription   = errors.New("description is required")
	ErrInvalidHours         = errors.New("hours must be a number greater than zero")
	ErrMissingPart          = errors.New("a part must be selected")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
)

// OrderView is the snapshot handed to handlers: the order plus the timeline
// refresh counter the activity panel keys its reloads on.
type OrderView struct {
	Order      entities.Order `json:"orden"`
	RefreshSeq uint64         `json:"timelineSeq"`
	ReadOnly   bool           `json:"soloLectura"`
}

// IOrderUseCase is the order mutation workflow. Every mutating operation
// follows the same protocol: refuse locally when the order is read-only,
// validate locally, dispatch exactly one gateway call, merge the response
// into the held snapshot, bump the refresh counter. Failures leave local
// state untouched; there is no optimistic write and therefore no rollback.
type IOrderUseCase interface {
	Load(ctx context.Context, sess entities.Session, orderID int64) (OrderView, error)
	ChangeStatus(ctx context.Context, sess entities.Session, orderID int64, status entities.OrderStatus) (OrderView, error)
	Close(ctx context.Context, sess entities.Session, orderID int64, confirmed bool) (OrderView, error)
	AssignTechnician(ctx context.Context, sess entities.Session, orderID int64, technicianID *int64) (OrderView, error)
	AddLabor(ctx context.Context, sess entities.Session, orderID int64, description string, hours float64) (OrderView, error)
	UpdateLabor(ctx context.Context, sess entities.Session, orderID, itemID int64, description string, hours float64) (OrderView, error)
	DeleteLabor(ctx context.Context, sess entities.Session, orderID, itemID int64) (OrderView, error)
	AddPart(ctx context.Context, sess entities.Session, orderID, partID int64, quantity int, isWarranty bool) (OrderView, error)
	UpdatePart(ctx context.Context, sess entities.Session, orderID, itemID int64, quantity int, isWarranty bool) (OrderView, error)
	DeletePart(ctx context.Context, sess entities.Session, orderID, itemID int64) (OrderView, error)
	Timeline(ctx context.Context, sess entities.Session, orderID int64) ([]entities.TimelineEvent, uint64, error)
	DropSession(sid string)
}

// orderView is the one in-memory order a detail view works against. The lock
// is held across the round trip, so mutations on the same view serialize;
// overlapping mutations from two controls still resolve as last-server-
// response-wins, with no sequence numbers or lost-update detection.
type orderView struct {
	mu         sync.Mutex
	order      entities.Order
	refreshSeq uint64
}

type OrderUseCase struct {
	gateway interfaces.IBackendGateway

	mu    sync.Mutex
	views map[string]*orderView
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(gateway interfaces.IBackendGateway) *OrderUseCase {
	return &OrderUseCase{gateway: gateway, views: make(map[string]*orderView)}
}

func viewKey(sid string, orderID int64) string {
	return fmt.Sprintf("%s/%d", sid, orderID)
}

func (u *OrderUseCase) view(sid string, orderID int64) *orderView {
	u.mu.Lock()
	defer u.mu.Unlock()
	key := viewKey(sid, orderID)
	v, ok := u.views[key]
	if !ok {
		v = &orderView{}
		u.views[key] = v
	}
	return v
}

// DropSession forgets every view held for a session (logout, forced or not).
func (u *OrderUseCase) DropSession(sid string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	prefix := sid + "/"
	for key := range u.views {
		if strings.HasPrefix(key, prefix) {
			delete(u.views, key)
		}
	}
}

// Load fetches the full snapshot, nested collections included, in one call.
// Mutations never refetch; they merge their own responses into this snapshot.
func (u *OrderUseCase) Load(ctx context.Context, sess entities.Session, orderID int64) (OrderView, error) {
	if orderID <= 0 {
		return OrderView{}, ErrInvalidOrderID
	}

	v := u.view(sess.SID, orderID)
	v.mu.Lock()
	defer v.mu.Unlock()
	return u.loadLocked(ctx, sess, orderID, v)
}

func (u *OrderUseCase) loadLocked(ctx context.Context, sess entities.Session, orderID int64, v *orderView) (OrderView, error) {
	raw, err := u.gateway.Do(ctx, sess, "GET", fmt.Sprintf("/api/ordenes/%d", orderID), nil)
	if err != nil {
		return OrderView{}, err
	}

	var o entities.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return OrderView{}, entities.ErrMalformedOrder
	}
	if err := o.Validate(); err != nil {
		return OrderView{}, err
	}

	// The refresh counter survives reloads so the activity panel does not
	// mistake a reload for "nothing changed".
	v.order = o
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) snapshotLocked(v *orderView) OrderView {
	return OrderView{Order: v.order, RefreshSeq: v.refreshSeq, ReadOnly: v.order.ReadOnly()}
}

// begin acquires the view for a mutation, loading the snapshot first when the
// detail view has not been opened yet. The caller must unlock.
func (u *OrderUseCase) begin(ctx context.Context, sess entities.Session, orderID int64) (*orderView, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	v := u.view(sess.SID, orderID)
	v.mu.Lock()
	if v.order.ID == 0 {
		if _, err := u.loadLocked(ctx, sess, orderID, v); err != nil {
			v.mu.Unlock()
			return nil, err
		}
	}
	if v.order.ReadOnly() {
		v.mu.Unlock()
		return nil, ErrOrderClosed
	}
	return v, nil
}

// ChangeStatus drives the status selector. Closed orders refuse locally with
// no network call; DONE and DELIVERED become sinks once merged.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, sess entities.Session, orderID int64, status entities.OrderStatus) (OrderView, error) {
	if !status.Valid() {
		return OrderView{}, ErrInvalidStatus
	}

	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	raw, err := u.gateway.Do(ctx, sess, "PATCH", fmt.Sprintf("/api/ordenes/%d/estado", orderID), map[string]any{
		"estado": status,
	})
	if err != nil {
		return OrderView{}, err
	}

	u.applyOrderPatch(v, raw, status)
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

// Close is the dedicated shortcut that always targets DONE. The interactive
// confirmation happens in the browser; the request must carry the flag.
func (u *OrderUseCase) Close(ctx context.Context, sess entities.Session, orderID int64, confirmed bool) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	if !confirmed {
		return OrderView{}, ErrConfirmationRequired
	}

	raw, err := u.gateway.Do(ctx, sess, "PATCH", fmt.Sprintf("/api/ordenes/%d/estado", orderID), map[string]any{
		"estado": entities.OrderStatusDone,
	})
	if err != nil {
		return OrderView{}, err
	}

	u.applyOrderPatch(v, raw, entities.OrderStatusDone)
	if v.order.ExitDate == nil {
		now := time.Now().UTC()
		v.order.ExitDate = &now
	}
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

// applyOrderPatch shallow-merges the PATCH response's scalar fields. The
// requested status is the fallback when the backend omits it from the body.
func (u *OrderUseCase) applyOrderPatch(v *orderView, raw json.RawMessage, requested entities.OrderStatus) {
	patch := decodePatch(raw)
	if patch.Status != nil && patch.Status.Valid() {
		v.order.Status = *patch.Status
	} else {
		v.order.Status = requested
	}
	if patch.ExitDate != nil {
		v.order.ExitDate = patch.ExitDate
	}
}

func decodePatch(raw json.RawMessage) entities.OrderPatch {
	var patch entities.OrderPatch
	if len(raw) > 0 {
		// A body that does not decode is treated as an empty patch; the
		// local fallback still applies the user's request.
		_ = json.Unmarshal(raw, &patch)
	}
	return patch
}

// AssignTechnician sets or clears (nil) the assigned technician.
func (u *OrderUseCase) AssignTechnician(ctx context.Context, sess entities.Session, orderID int64, technicianID *int64) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	raw, err := u.gateway.Do(ctx, sess, "PATCH", fmt.Sprintf("/api/ordenes/%d/tecnico", orderID), map[string]any{
		"tecnicoId": technicianID,
	})
	if err != nil {
		return OrderView{}, err
	}

	patch := decodePatch(raw)
	// The assignment response always speaks to these two fields; null means
	// unassigned, so they apply unconditionally.
	v.order.TechnicianID = patch.TechnicianID
	v.order.Technician = patch.Technician
	if patch.TechnicianID == nil && technicianID != nil {
		v.order.TechnicianID = technicianID
	}
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) AddLabor(ctx context.Context, sess entities.Session, orderID int64, description string, hours float64) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	description = strings.TrimSpace(description)
	if description == "" {
		return OrderView{}, ErrMissingDescription
	}
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return OrderView{}, ErrInvalidHours
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", fmt.Sprintf("/api/ordenes/%d/mano-obra", orderID), map[string]any{
		"descripcion": description,
		"horas":       hours,
	})
	if err != nil {
		return OrderView{}, err
	}

	var entry entities.LaborEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return OrderView{}, entities.ErrMalformedOrder
	}

	v.order.Labor = prependLabor(v.order.Labor, entry)
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) UpdateLabor(ctx context.Context, sess entities.Session, orderID, itemID int64, description string, hours float64) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	description = strings.TrimSpace(description)
	if description == "" {
		return OrderView{}, ErrMissingDescription
	}
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return OrderView{}, ErrInvalidHours
	}

	raw, err := u.gateway.Do(ctx, sess, "PATCH", fmt.Sprintf("/api/ordenes/%d/mano-obra/%d", orderID, itemID), map[string]any{
		"descripcion": description,
		"horas":       hours,
	})
	if err != nil {
		return OrderView{}, err
	}

	var entry entities.LaborEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return OrderView{}, entities.ErrMalformedOrder
	}

	updated := make([]entities.LaborEntry, len(v.order.Labor))
	for i, l := range v.order.Labor {
		if l.ID == entry.ID {
			updated[i] = entry
		} else {
			updated[i] = l
		}
	}
	v.order.Labor = updated
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) DeleteLabor(ctx context.Context, sess entities.Session, orderID, itemID int64) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	if _, err := u.gateway.Do(ctx, sess, "DELETE", fmt.Sprintf("/api/ordenes/%d/mano-obra/%d", orderID, itemID), nil); err != nil {
		return OrderView{}, err
	}

	kept := make([]entities.LaborEntry, 0, len(v.order.Labor))
	for _, l := range v.order.Labor {
		if l.ID != itemID {
			kept = append(kept, l)
		}
	}
	v.order.Labor = kept
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) AddPart(ctx context.Context, sess entities.Session, orderID, partID int64, quantity int, isWarranty bool) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	if partID <= 0 {
		return OrderView{}, ErrMissingPart
	}
	if quantity <= 0 {
		return OrderView{}, ErrInvalidQuantity
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", fmt.Sprintf("/api/ordenes/%d/repuestos", orderID), map[string]any{
		"repuestoId": partID,
		"cantidad":   quantity,
		"esGarantia": isWarranty,
	})
	if err != nil {
		return OrderView{}, err
	}

	var entry entities.PartEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return OrderView{}, entities.ErrMalformedOrder
	}

	v.order.Parts = prependPart(v.order.Parts, entry)
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) UpdatePart(ctx context.Context, sess entities.Session, orderID, itemID int64, quantity int, isWarranty bool) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	if quantity <= 0 {
		return OrderView{}, ErrInvalidQuantity
	}

	raw, err := u.gateway.Do(ctx, sess, "PATCH", fmt.Sprintf("/api/ordenes/%d/repuestos/%d", orderID, itemID), map[string]any{
		"cantidad":   quantity,
		"esGarantia": isWarranty,
	})
	if err != nil {
		return OrderView{}, err
	}

	var entry entities.PartEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return OrderView{}, entities.ErrMalformedOrder
	}

	updated := make([]entities.PartEntry, len(v.order.Parts))
	for i, p := range v.order.Parts {
		if p.ID == entry.ID {
			updated[i] = entry
		} else {
			updated[i] = p
		}
	}
	v.order.Parts = updated
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

func (u *OrderUseCase) DeletePart(ctx context.Context, sess entities.Session, orderID, itemID int64) (OrderView, error) {
	v, err := u.begin(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	defer v.mu.Unlock()

	if _, err := u.gateway.Do(ctx, sess, "DELETE", fmt.Sprintf("/api/ordenes/%d/repuestos/%d", orderID, itemID), nil); err != nil {
		return OrderView{}, err
	}

	kept := make([]entities.PartEntry, 0, len(v.order.Parts))
	for _, p := range v.order.Parts {
		if p.ID != itemID {
			kept = append(kept, p)
		}
	}
	v.order.Parts = kept
	v.refreshSeq++
	return u.snapshotLocked(v), nil
}

// Timeline fetches the audit feed. The refresh counter rides along so the
// activity panel can tell whether its last fetch is already stale.
func (u *OrderUseCase) Timeline(ctx context.Context, sess entities.Session, orderID int64) ([]entities.TimelineEvent, uint64, error) {
	if orderID <= 0 {
		return nil, 0, ErrInvalidOrderID
	}

	raw, err := u.gateway.Do(ctx, sess, "GET", fmt.Sprintf("/api/ordenes/%d/eventos", orderID), nil)
	if err != nil {
		return nil, 0, err
	}

	var events []entities.TimelineEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, 0, entities.ErrMalformedOrder
	}

	v := u.view(sess.SID, orderID)
	v.mu.Lock()
	seq := v.refreshSeq
	v.mu.Unlock()
	return events, seq, nil
}

func prependLabor(list []entities.LaborEntry, entry entities.LaborEntry) []entities.LaborEntry {
	out := make([]entities.LaborEntry, 0, len(list)+1)
	out = append(out, entry)
	return append(out, list...)
}

func prependPart(list []entities.PartEntry, entry entities.PartEntry) []entities.PartEntry {
	out := make([]entities.PartEntry, 0, len(list)+1)
	out = append(out, entry)
	return append(out, list...)
}
