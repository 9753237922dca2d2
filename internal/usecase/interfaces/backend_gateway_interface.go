package interfaces

import (
	"context"
	"encoding/json"

	"taller_web/internal/domain/entities"
)

// IBackendGateway is the single chokepoint for workshop backend calls.
//
// Do attaches the session's bearer token (a zero session means an
// unauthenticated call, used only for login), sends/decodes JSON, and
// classifies outcomes:
//   - 2xx: the raw JSON body.
//   - 401: the session record is destroyed as a side effect and the call
//     fails with backend.ErrSessionExpired. Callers must not try to recover.
//   - other non-2xx: a backend.StatusError whose message is the raw body.
//
// Calls are independent round trips: no retries, no caching, no in-flight
// deduplication.
type IBackendGateway interface {
	Do(ctx context.Context, sess entities.Session, method, path string, body any) (json.RawMessage, error)
}
