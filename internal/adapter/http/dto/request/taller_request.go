package request

import (
	"strings"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

func (r OrderStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.TrimSpace(r.Status))
}

type OrderCloseRequest struct {
	Confirmed bool `json:"confirmado"`
}

// TechnicianRequest carries an explicit null for unassignment, so the field
// stays a pointer and there is no binding tag.
type TechnicianRequest struct {
	TechnicianID *int64 `json:"tecnicoId"`
}

type LaborRequest struct {
	Description string  `json:"descripcion"`
	Hours       float64 `json:"horas"`
}

type PartEntryRequest struct {
	PartID     int64 `json:"repuestoId"`
	Quantity   int   `json:"cantidad"`
	IsWarranty bool  `json:"esGarantia"`
}

type OrderCreateRequest struct {
	SiteID       int64  `json:"sedeId"`
	ClientID     int64  `json:"clienteId"`
	EquipmentID  int64  `json:"equipoId"`
	IntakeType   string `json:"tipoIngreso"`
	IntakeReason string `json:"motivoIngreso"`
}

func (r OrderCreateRequest) ResolveIntake() usecase.OrderIntake {
	return usecase.OrderIntake{
		SiteID:       r.SiteID,
		ClientID:     r.ClientID,
		EquipmentID:  r.EquipmentID,
		IntakeType:   entities.IntakeType(strings.TrimSpace(r.IntakeType)),
		IntakeReason: strings.TrimSpace(r.IntakeReason),
	}
}

type ClientCreateRequest struct {
	Name     string `json:"nombre"`
	Document string `json:"documento"`
	Phone    string `json:"telefono"`
	Email    string `json:"correo"`
	Company  string `json:"empresa"`
}

type PartCreateRequest struct {
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	UnitCost    float64 `json:"costo"`
	GlobalStock int     `json:"stockGlobal"`
}

type EquipmentCreateRequest struct {
	ClientID    int64  `json:"clienteId"`
	Brand       string `json:"marca"`
	Model       string `json:"modelo"`
	Serial      string `json:"serial"`
	Description string `json:"descripcion"`
}

func (r EquipmentCreateRequest) ResolveEquipment() entities.Equipment {
	return entities.Equipment{
		ClientID:    r.ClientID,
		Brand:       strings.TrimSpace(r.Brand),
		Model:       strings.TrimSpace(r.Model),
		Serial:      strings.TrimSpace(r.Serial),
		Description: strings.TrimSpace(r.Description),
	}
}

// ClientSelectRequest / PartSelectRequest carry the full row the caller is
// choosing (the duplicate-conflict flow echoes back the existing record), so
// the candidate list can render it without another fetch.
type ClientSelectRequest struct {
	ID       int64  `json:"id" binding:"required"`
	Name     string `json:"nombre"`
	Document string `json:"documento"`
	Phone    string `json:"telefono"`
	Email    string `json:"correo"`
	Company  string `json:"empresa"`
}

func (r ClientSelectRequest) ResolveClient() entities.Client {
	return entities.Client{
		ID:       r.ID,
		Name:     r.Name,
		Document: r.Document,
		Phone:    r.Phone,
		Email:    r.Email,
		Company:  r.Company,
	}
}

type PartSelectRequest struct {
	ID          int64   `json:"id" binding:"required"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	UnitCost    float64 `json:"costo"`
	GlobalStock int     `json:"stockGlobal"`
}

func (r PartSelectRequest) ResolvePart() entities.Part {
	return entities.Part{
		ID:          r.ID,
		Code:        r.Code,
		Description: r.Description,
		UnitCost:    r.UnitCost,
		GlobalStock: r.GlobalStock,
	}
}
