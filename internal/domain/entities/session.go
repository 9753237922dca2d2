package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// Session is the server-side record behind the browser's session cookie.
//
// Storage model (DynamoDB):
//   - PK: sid
//
// The user profile is kept as the raw JSON the backend returned at login.
// Parsing is deferred to read time so a corrupted record makes the session
// unauthenticated instead of unreadable.
type Session struct {
	SID       string    `json:"sid"`
	Token     string    `json:"token"`
	RawUser   string    `json:"usuario"`
	CreatedAt time.Time `json:"created_at"`
}

// User returns the parsed profile, or false when the stored payload is
// missing or malformed.
func (s Session) User() (User, bool) {
	raw := strings.TrimSpace(s.RawUser)
	if raw == "" {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, false
	}
	if u.ID == 0 {
		return User{}, false
	}
	return u, true
}

// IsAuthenticated reports whether the session can back authenticated calls:
// token present and profile parseable. Fails closed on bad stored data.
func (s Session) IsAuthenticated() bool {
	if s.Token == "" {
		return false
	}
	_, ok := s.User()
	return ok
}
