package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"taller_web/internal/domain/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvalidator struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeInvalidator) Delete(_ context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, sid)
	return nil
}

func testSession() entities.Session {
	return entities.Session{SID: "sid-1", Token: "tok-1", RawUser: `{"id":1,"nombre":"Ana"}`}
}

func TestDoForwardsTokenAndReturnsBody(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	inv := &fakeInvalidator{}
	c := NewClient(srv.URL, inv, zap.NewNop())

	raw, err := c.Do(context.Background(), testSession(), "GET", "/api/ordenes", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(raw))
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Empty(t, inv.deleted)
}

func TestDo401DestroysSessionRegardlessOfBody(t *testing.T) {
	bodies := []string{"", "token expired", `{"error":"whatever"}`}

	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(body))
		}))

		inv := &fakeInvalidator{}
		c := NewClient(srv.URL, inv, zap.NewNop())

		_, err := c.Do(context.Background(), testSession(), "GET", "/api/ordenes/1", nil)
		require.ErrorIs(t, err, ErrSessionExpired)
		require.Equal(t, []string{"sid-1"}, inv.deleted)
		srv.Close()
	}
}

func TestDoNon2xxKeepsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"cantidad inválida"}`))
	}))
	defer srv.Close()

	inv := &fakeInvalidator{}
	c := NewClient(srv.URL, inv, zap.NewNop())

	_, err := c.Do(context.Background(), testSession(), "POST", "/api/ordenes/1/repuestos", map[string]int{"cantidad": 0})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnprocessableEntity, se.Code)
	require.JSONEq(t, `{"error":"cantidad inválida"}`, se.Body)
	require.Empty(t, inv.deleted)
}

func TestDoEmptyBodyStatusError(t *testing.T) {
	err := &StatusError{Code: 500}
	require.Equal(t, "Error HTTP 500", err.Error())
}

func TestAsConflictParsesDuplicatePayload(t *testing.T) {
	err := &StatusError{
		Code: http.StatusConflict,
		Body: `{"error":"documento duplicado","cliente":{"id":7,"nombre":"Ana Torres","documento":"123"}}`,
	}

	info, ok := AsConflict(err)
	require.True(t, ok)
	require.Equal(t, "documento duplicado", info.Message)
	require.NotNil(t, info.Client)
	require.Equal(t, int64(7), info.Client.ID)
	require.Nil(t, info.Part)
}

func TestAsConflictRejectsNonConflicts(t *testing.T) {
	_, ok := AsConflict(&StatusError{Code: http.StatusConflict, Body: `{"error":"sin entidad"}`})
	require.False(t, ok)

	_, ok = AsConflict(&StatusError{Code: http.StatusBadRequest, Body: `{"error":"x"}`})
	require.False(t, ok)

	_, ok = AsConflict(ErrSessionExpired)
	require.False(t, ok)
}
