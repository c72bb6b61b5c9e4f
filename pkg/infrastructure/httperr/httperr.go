package httperr

import (
	"encoding/json"
	"net/http"

	"github.com/transgare/backoffice/pkg/domain"
)

// Write maps a fault kind to an HTTP status and writes a JSON error body.
// Conflicts come back 409 so a UI can offer a retry ("seat taken, pick
// another"); consistency faults come back 500 so callers alert instead.
func Write(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.FaultValidation:
		status = http.StatusBadRequest
	case domain.FaultConflict:
		status = http.StatusConflict
	case domain.FaultNotFound:
		status = http.StatusNotFound
	case domain.FaultConsistency:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"kind":  string(domain.KindOf(err)),
	})
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON writes a success payload.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
