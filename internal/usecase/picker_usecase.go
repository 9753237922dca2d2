package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"taller_web/internal/domain/entities"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase/interfaces"
)

var (
	// ErrSuperseded marks a search that a newer keystroke replaced while it
	// was waiting out the debounce window or in flight. Its result must be
	// dropped, never rendered.
	ErrSuperseded = errors.New("search superseded by a newer query")

	ErrMissingPartCode     = errors.New("part code and description are required")
	ErrMissingClientName   = errors.New("client name is required")
	ErrConflictWithoutBody = errors.New("duplicate reported without an existing entity")
)

// searchDebounce is the idle window a query must survive before a backend
// search fires (matches the keystroke debounce of the original picker).
const searchDebounce = 250 * time.Millisecond

// ClientConflict / PartConflict carry the backend's duplicate payload up to
// the handler, where "select the existing one instead" turns it into a
// normal selection.
type ClientConflict struct {
	Message  string
	Existing entities.Client
}

func (e *ClientConflict) Error() string { return e.Message }

type PartConflict struct {
	Message  string
	Existing entities.Part
}

func (e *PartConflict) Error() string { return e.Message }

// IPickerUseCase implements the inline-create-and-select pattern for the two
// searchable selectors: clients (equipment form) and parts (order part-add).
type IPickerUseCase interface {
	SearchClients(ctx context.Context, sess entities.Session, query string) ([]entities.Client, error)
	SearchParts(ctx context.Context, sess entities.Session, query string) ([]entities.Part, error)
	CreateClient(ctx context.Context, sess entities.Session, c entities.Client) (entities.Client, error)
	SelectClient(sess entities.Session, c entities.Client) []entities.Client
	CreatePart(ctx context.Context, sess entities.Session, p entities.Part) (entities.Part, error)
	SelectPart(sess entities.Session, p entities.Part) []entities.Part
	DropSession(sid string)
}

// pickerState is one selector's in-memory candidate list plus the debounce
// generation. The generation increments on every keystroke; only the waiter
// holding the latest generation may fire the backend search, and a result
// arriving under a stale generation is discarded (the transport is not
// aborted, matching the timer-reset pattern of the original).
type pickerState struct {
	mu         sync.Mutex
	gen        uint64
	clients    []entities.Client
	parts      []entities.Part
	selectedID int64
}

type PickerUseCase struct {
	gateway interfaces.IBackendGateway
	wait    time.Duration

	mu      sync.Mutex
	pickers map[string]*pickerState
}

var _ IPickerUseCase = (*PickerUseCase)(nil)

func NewPickerUseCase(gateway interfaces.IBackendGateway) *PickerUseCase {
	return &PickerUseCase{gateway: gateway, wait: searchDebounce, pickers: make(map[string]*pickerState)}
}

func (u *PickerUseCase) picker(sid, kind string) *pickerState {
	u.mu.Lock()
	defer u.mu.Unlock()
	key := sid + "/" + kind
	p, ok := u.pickers[key]
	if !ok {
		p = &pickerState{}
		u.pickers[key] = p
	}
	return p
}

func (u *PickerUseCase) DropSession(sid string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	prefix := sid + "/"
	for key := range u.pickers {
		if strings.HasPrefix(key, prefix) {
			delete(u.pickers, key)
		}
	}
}

// debounce claims a generation for this query and waits out the idle window.
// It returns the claimed generation, or ErrSuperseded when a newer keystroke
// arrived during the wait.
func (u *PickerUseCase) debounce(ctx context.Context, p *pickerState) (uint64, error) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	select {
	case <-time.After(u.wait):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	p.mu.Lock()
	latest := p.gen
	p.mu.Unlock()
	if gen != latest {
		return 0, ErrSuperseded
	}
	return gen, nil
}

// stale reports whether a newer keystroke arrived while the backend call was
// in flight.
func (p *pickerState) stale(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen != p.gen
}

func searchPath(resource, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "/api/" + resource
	}
	return fmt.Sprintf("/api/%s?search=%s", resource, url.QueryEscape(query))
}

// SearchClients re-issues the candidate query for each settled keystroke:
// at most one backend search per idle window, stale results dropped.
func (u *PickerUseCase) SearchClients(ctx context.Context, sess entities.Session, query string) ([]entities.Client, error) {
	p := u.picker(sess.SID, "clientes")

	gen, err := u.debounce(ctx, p)
	if err != nil {
		return nil, err
	}

	raw, err := u.gateway.Do(ctx, sess, "GET", searchPath("clientes", query), nil)
	if err != nil {
		return nil, err
	}
	if p.stale(gen) {
		return nil, ErrSuperseded
	}

	var clients []entities.Client
	if err := json.Unmarshal(raw, &clients); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.clients = clients
	p.mu.Unlock()
	return clients, nil
}

func (u *PickerUseCase) SearchParts(ctx context.Context, sess entities.Session, query string) ([]entities.Part, error) {
	p := u.picker(sess.SID, "repuestos")

	gen, err := u.debounce(ctx, p)
	if err != nil {
		return nil, err
	}

	raw, err := u.gateway.Do(ctx, sess, "GET", searchPath("repuestos", query), nil)
	if err != nil {
		return nil, err
	}
	if p.stale(gen) {
		return nil, ErrSuperseded
	}

	var parts []entities.Part
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.parts = parts
	p.mu.Unlock()
	return parts, nil
}

// CreateClient creates inline from the equipment form. A duplicate-document
// response surfaces as *ClientConflict carrying the existing client, which is
// selectable exactly like a fresh creation.
func (u *PickerUseCase) CreateClient(ctx context.Context, sess entities.Session, c entities.Client) (entities.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return entities.Client{}, ErrMissingClientName
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", "/api/clientes", map[string]any{
		"nombre":    c.Name,
		"documento": nullable(c.Document),
		"telefono":  nullable(c.Phone),
		"correo":    nullable(c.Email),
		"empresa":   nullable(c.Company),
	})
	if err != nil {
		if info, ok := backend.AsConflict(err); ok {
			if info.Client == nil {
				return entities.Client{}, ErrConflictWithoutBody
			}
			return entities.Client{}, &ClientConflict{Message: info.Message, Existing: *info.Client}
		}
		return entities.Client{}, err
	}

	var created entities.Client
	if err := json.Unmarshal(raw, &created); err != nil {
		return entities.Client{}, err
	}
	return created, nil
}

// SelectClient commits a created-or-existing client into the picker: front of
// the candidate list unless already present by id, and marked selected.
// Returns the resulting candidate list.
func (u *PickerUseCase) SelectClient(sess entities.Session, c entities.Client) []entities.Client {
	p := u.picker(sess.SID, "clientes")
	p.mu.Lock()
	defer p.mu.Unlock()

	present := false
	for _, existing := range p.clients {
		if existing.ID == c.ID {
			present = true
			break
		}
	}
	if !present {
		p.clients = append([]entities.Client{c}, p.clients...)
	}
	p.selectedID = c.ID
	return p.clients
}

// CreatePart creates inline from the part-add flow; duplicate part codes
// surface as *PartConflict.
func (u *PickerUseCase) CreatePart(ctx context.Context, sess entities.Session, part entities.Part) (entities.Part, error) {
	part.Code = strings.TrimSpace(part.Code)
	part.Description = strings.TrimSpace(part.Description)
	if part.Code == "" || part.Description == "" {
		return entities.Part{}, ErrMissingPartCode
	}

	raw, err := u.gateway.Do(ctx, sess, "POST", "/api/repuestos", map[string]any{
		"codigo":      part.Code,
		"descripcion": part.Description,
		"costo":       part.UnitCost,
		"stockGlobal": part.GlobalStock,
	})
	if err != nil {
		if info, ok := backend.AsConflict(err); ok {
			if info.Part == nil {
				return entities.Part{}, ErrConflictWithoutBody
			}
			return entities.Part{}, &PartConflict{Message: info.Message, Existing: *info.Part}
		}
		return entities.Part{}, err
	}

	var created entities.Part
	if err := json.Unmarshal(raw, &created); err != nil {
		return entities.Part{}, err
	}
	return created, nil
}

func (u *PickerUseCase) SelectPart(sess entities.Session, part entities.Part) []entities.Part {
	p := u.picker(sess.SID, "repuestos")
	p.mu.Lock()
	defer p.mu.Unlock()

	present := false
	for _, existing := range p.parts {
		if existing.ID == part.ID {
			present = true
			break
		}
	}
	if !present {
		p.parts = append([]entities.Part{part}, p.parts...)
	}
	p.selectedID = part.ID
	return p.parts
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
