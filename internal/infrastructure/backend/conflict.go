package backend

import (
	"encoding/json"
	"errors"

	"taller_web/internal/domain/entities"
)

// ConflictInfo is the structured payload the backend returns when a creation
// hits a duplicate, e.g. {"error":"...","cliente":{...}} for a repeated
// document number or {"error":"...","repuesto":{...}} for a repeated part
// code. Exactly one of Client/Part is set.
type ConflictInfo struct {
	Message string           `json:"error"`
	Client  *entities.Client `json:"cliente"`
	Part    *entities.Part   `json:"repuesto"`
}

// AsConflict reports whether err carries a parseable conflict payload with an
// existing entity. Anything else (plain-text bodies, JSON without an entity)
// stays a generic failure.
func AsConflict(err error) (ConflictInfo, bool) {
	var se *StatusError
	if !errors.As(err, &se) {
		return ConflictInfo{}, false
	}

	var info ConflictInfo
	if jerr := json.Unmarshal([]byte(se.Body), &info); jerr != nil {
		return ConflictInfo{}, false
	}
	if info.Client != nil && info.Client.ID > 0 {
		return info, true
	}
	if info.Part != nil && info.Part.ID > 0 {
		return info, true
	}
	return ConflictInfo{}, false
}
