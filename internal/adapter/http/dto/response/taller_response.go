package response

import (
	"taller_web/internal/domain/entities"
)

type SessionResponse struct {
	Authenticated bool           `json:"autenticado"`
	User          *entities.User `json:"usuario,omitempty"`
}

func FromSession(sess entities.Session) SessionResponse {
	user, ok := sess.User()
	if !ok {
		return SessionResponse{Authenticated: false}
	}
	return SessionResponse{Authenticated: true, User: &user}
}

// PickerResponse is what both entity pickers render: the candidate rows plus
// the id the form should hold, when one is chosen.
type PickerClientsResponse struct {
	Clients    []entities.Client `json:"clientes"`
	SelectedID *int64            `json:"seleccionadoId,omitempty"`
}

type PickerPartsResponse struct {
	Parts      []entities.Part `json:"repuestos"`
	SelectedID *int64          `json:"seleccionadoId,omitempty"`
}

// ConflictResponse surfaces a duplicate, letting the caller pick the record
// that already exists instead of retyping it.
type ConflictResponse struct {
	Message  string           `json:"error"`
	Client   *entities.Client `json:"cliente,omitempty"`
	Part     *entities.Part   `json:"repuesto,omitempty"`
	CanReuse bool             `json:"puedeReutilizar"`
}

type TimelineResponse struct {
	Events []entities.TimelineEvent `json:"eventos"`
	Seq    uint64                   `json:"timelineSeq"`
}
