package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase/interfaces"
)

var (
	ErrMissingSite         = errors.New("a site must be selected")
	ErrMissingIntakeReason = errors.New("intake reason is required")
	ErrInvalidIntakeType   = errors.New("invalid intake type")
	ErrMissingEquipment    = errors.New("an equipment must be selected")
	ErrMissingClient       = errors.New("a client must be selected")
	ErrMissingEquipmentRef = errors.New("brand, model and serial are required")
)

// IWorkshopUseCase covers the conventional list/create operations around the
// order workflow: orders index, order intake, equipment registration,
// technicians and sites reference data.
type IWorkshopUseCase interface {
	ListOrders(ctx context.Context, sess entities.Session, siteID *int64) ([]entities.Order, error)
	CreateOrder(ctx context.Context, sess entities.Session, in OrderIntake) (entities.Order, error)
	ListEquipment(ctx context.Context, sess entities.Session) ([]entities.Equipment, error)
	CreateEquipment(ctx context.Context, sess entities.Session, e entities.Equipment) (entities.Equipment, error)
	ListTechnicians(ctx context.Context, sess entities.Session) ([]entities.Technician, error)
	ListSites(ctx context.Context, sess entities.Session) ([]entities.Site, error)
}

// OrderIntake is the command that opens a service order from an
// equipment + client pair.
type OrderIntake struct {
	SiteID       int64
	ClientID     int64
	EquipmentID  int64
	IntakeType   entities.IntakeType
	IntakeReason string
}

type WorkshopUseCase struct {
	gateway interfaces.IBackendGateway
}

var _ IWorkshopUseCase = (*WorkshopUseCase)(nil)

func NewWorkshopUseCase(gateway interfaces.IBackendGateway) *WorkshopUseCase {
	return &WorkshopUseCase{gateway: gateway}
}

func (u *WorkshopUseCase) ListOrders(ctx context.Context, sess entities.Session, siteID *int64) ([]entities.Order, error) {
	path := "/api/ordenes"
	if siteID != nil {
		path = fmt.Sprintf("/api/ordenes?sedeId=%d", *siteID)
	}

	raw, err := u.gateway.Do(ctx, sess, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var orders []entities.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, entities.ErrMalformedOrder
	}
	return orders, nil
}

func (u *WorkshopUseCase) CreateOrder(ctx context.Context, sess entities.Session, in OrderIntake) (entities.Order, error) {
	if in.SiteID <= 0 {
		// Non-admins work at a fixed site; fall back to it when the
		// form did not send one. Admins must choose explicitly.
		if user, ok := sess.User(); ok && !user.IsAdmin() && user.SiteID != nil {
			in.SiteID = *user.SiteID
		}
	}
	if in.SiteID <= 0 {
		return entities.Order{}, ErrMissingSite
	}
	if in.ClientID <= 0 {
		return entities.Order{}, ErrMissingClient
	}
	if in.EquipmentID <= 0 {
		return entities.Order{}, ErrMissingEquipment
	}
	switch in.IntakeType {
	case entities.IntakeWarranty, entities.IntakeMaintenance, entities.IntakeRepair:
	default:
		return entities.Order{}, ErrInvalidIntakeType
	}
	in.IntakeReason = strings.TrimSpace(in.IntakeReason)
	if in.IntakeReason == "" {
		return entities.Order{}, ErrMissingIntakeReason
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", "/api/ordenes", map[string]any{
		"sedeId":        in.SiteID,
		"clienteId":     in.ClientID,
		"equipoId":      in.EquipmentID,
		"tipoIngreso":   in.IntakeType,
		"motivoIngreso": in.IntakeReason,
		"tecnicoId":     nil,
	})
	if err != nil {
		return entities.Order{}, err
	}

	var order entities.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return entities.Order{}, entities.ErrMalformedOrder
	}
	if err := order.Validate(); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (u *WorkshopUseCase) ListEquipment(ctx context.Context, sess entities.Session) ([]entities.Equipment, error) {
	raw, err := u.gateway.Do(ctx, sess, "GET", "/api/equipos", nil)
	if err != nil {
		return nil, err
	}

	var equipment []entities.Equipment
	if err := json.Unmarshal(raw, &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (u *WorkshopUseCase) CreateEquipment(ctx context.Context, sess entities.Session, e entities.Equipment) (entities.Equipment, error) {
	if e.ClientID <= 0 {
		return entities.Equipment{}, ErrMissingClient
	}
	e.Brand = strings.TrimSpace(e.Brand)
	e.Model = strings.TrimSpace(e.Model)
	e.Serial = strings.TrimSpace(e.Serial)
	if e.Brand == "" || e.Model == "" || e.Serial == "" {
		return entities.Equipment{}, ErrMissingEquipmentRef
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", "/api/equipos", map[string]any{
		"clienteId":   e.ClientID,
		"marca":       e.Brand,
		"modelo":      e.Model,
		"serial":      e.Serial,
		"descripcion": e.Description,
	})
	if err != nil {
		return entities.Equipment{}, err
	}

	var created entities.Equipment
	if err := json.Unmarshal(raw, &created); err != nil {
		return entities.Equipment{}, err
	}
	return created, nil
}

func (u *WorkshopUseCase) ListTechnicians(ctx context.Context, sess entities.Session) ([]entities.Technician, error) {
	raw, err := u.gateway.Do(ctx, sess, "GET", "/api/tecnicos", nil)
	if err != nil {
		return nil, err
	}

	var technicians []entities.Technician
	if err := json.Unmarshal(raw, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

func (u *WorkshopUseCase) ListSites(ctx context.Context, sess entities.Session) ([]entities.Site, error) {
	raw, err := u.gateway.Do(ctx, sess, "GET", "/api/sedes", nil)
	if err != nil {
		return nil, err
	}

	var sites []entities.Site
	if err := json.Unmarshal(raw, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}
