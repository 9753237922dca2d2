package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taller_web/internal/domain/entities"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrLoginRejected      = errors.New("login rejected by backend")
	ErrMalformedLogin     = errors.New("malformed login response")
)

// ISessionUseCase owns the session lifecycle: the login handshake with the
// backend, the signed cookie that names the session, and the fails-closed
// resolution the route guard and every handler rely on.
type ISessionUseCase interface {
	Login(ctx context.Context, email, password string) (entities.Session, string, error)
	Logout(ctx context.Context, sess entities.Session) error
	Resolve(ctx context.Context, cookieValue string) (entities.Session, bool)
	IssueCookie(sess entities.Session) (string, error)
}

type SessionUseCase struct {
	repo    interfaces.ISessionRepository
	gateway interfaces.IBackendGateway
	secret  []byte
	ttl     time.Duration
}

var _ ISessionUseCase = (*SessionUseCase)(nil)

func NewSessionUseCase(repo interfaces.ISessionRepository, gateway interfaces.IBackendGateway, secret string, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{repo: repo, gateway: gateway, secret: []byte(secret), ttl: ttl}
}

// loginResponse is the backend's POST /api/auth/login body. The profile is
// kept raw: it is stored verbatim and parsed on each read.
type loginResponse struct {
	Token   string          `json:"token"`
	Usuario json.RawMessage `json:"usuario"`
}

// Login forwards the credentials (no bearer token yet), persists the session
// record in one write, and returns the signed cookie value.
func (u *SessionUseCase) Login(ctx context.Context, email, password string) (entities.Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return entities.Session{}, "", ErrMissingCredentials
	}

	raw, err := u.gateway.Do(ctx, entities.Session{}, "POST", "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		// There is no session to expire yet; a 401 here means the
		// credentials were refused.
		if errors.Is(err, backend.ErrSessionExpired) {
			return entities.Session{}, "", ErrLoginRejected
		}
		return entities.Session{}, "", err
	}

	var lr loginResponse
	if err := json.Unmarshal(raw, &lr); err != nil {
		return entities.Session{}, "", ErrMalformedLogin
	}

	sess := entities.Session{
		SID:       uuid.NewString(),
		Token:     lr.Token,
		RawUser:   string(lr.Usuario),
		CreatedAt: time.Now().UTC(),
	}
	if !sess.IsAuthenticated() {
		return entities.Session{}, "", ErrMalformedLogin
	}

	if err := u.repo.Put(ctx, sess); err != nil {
		return entities.Session{}, "", err
	}

	cookie, err := u.IssueCookie(sess)
	if err != nil {
		return entities.Session{}, "", err
	}
	return sess, cookie, nil
}

// Logout destroys the session record. Idempotent: logging out twice, or after
// a 401 already cleared the record, succeeds.
func (u *SessionUseCase) Logout(ctx context.Context, sess entities.Session) error {
	if sess.SID == "" {
		return nil
	}
	return u.repo.Delete(ctx, sess.SID)
}

// Resolve maps a cookie value to a live, authenticated session. Every failure
// mode (bad signature, expired claim, missing record, corrupt profile) is
// "not authenticated", never an error page.
func (u *SessionUseCase) Resolve(ctx context.Context, cookieValue string) (entities.Session, bool) {
	if cookieValue == "" {
		return entities.Session{}, false
	}

	tok, err := jwt.Parse(cookieValue, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return u.secret, nil
	})
	if err != nil || !tok.Valid {
		return entities.Session{}, false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return entities.Session{}, false
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return entities.Session{}, false
	}

	sess, err := u.repo.Get(ctx, sid)
	if err != nil || sess.SID == "" {
		return entities.Session{}, false
	}
	if !sess.IsAuthenticated() {
		return entities.Session{}, false
	}
	return sess, true
}

// IssueCookie signs a short claim set naming the session.
func (u *SessionUseCase) IssueCookie(sess entities.Session) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sess.SID,
		"iat": now.Unix(),
		"exp": now.Add(u.ttl).Unix(),
	})
	return tok.SignedString(u.secret)
}
