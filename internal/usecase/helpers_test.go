package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"taller_web/internal/domain/entities"
)

type gatewayCall struct {
	Method string
	Path   string
	Body   any
}

// fakeGateway records every dispatched call and answers via the handler.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []gatewayCall
	handler func(method, path string, body any) (json.RawMessage, error)
}

func (g *fakeGateway) Do(_ context.Context, _ entities.Session, method, path string, body any) (json.RawMessage, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{Method: method, Path: path, Body: body})
	handler := g.handler
	g.mu.Unlock()

	if handler == nil {
		return nil, nil
	}
	return handler(method, path, body)
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) lastCall() gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[len(g.calls)-1]
}

// fakeSessionRepo is an in-memory session store.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]entities.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]entities.Session)}
}

func (r *fakeSessionRepo) Put(_ context.Context, s entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.SID] = s
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, sid string) (entities.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sid], nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	return nil
}

func authedSession() entities.Session {
	return entities.Session{
		SID:     "sid-test",
		Token:   "tok-test",
		RawUser: `{"id":1,"nombre":"Ana","rol":"FRONT_DESK"}`,
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
