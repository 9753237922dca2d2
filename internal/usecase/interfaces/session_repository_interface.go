package interfaces

import (
	"context"

	"taller_web/internal/domain/entities"
)

// ISessionRepository abstracts DynamoDB persistence for Session records.
//
// Contract:
//   - Put commits the whole record in one write (login is atomic from the
//     caller's point of view).
//   - Get returns a zero Session (SID == "") when the record is absent.
//   - Delete is idempotent; deleting a missing record is not an error.
type ISessionRepository interface {
	Put(ctx context.Context, s entities.Session) error
	Get(ctx context.Context, sid string) (entities.Session, error)
	Delete(ctx context.Context, sid string) error
}
