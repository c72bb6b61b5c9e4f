package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/transgare/backoffice/pkg/domain"
)

func TestWriteStatusByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewFault(domain.FaultValidation, "bad input"), http.StatusBadRequest},
		{"conflict", domain.NewFault(domain.FaultConflict, "seat taken"), http.StatusConflict},
		{"not found", domain.NewFault(domain.FaultNotFound, "no such trip"), http.StatusNotFound},
		{"consistency", domain.NewFault(domain.FaultConsistency, "ledgers disagree"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Write(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] != tt.err.Error() {
				t.Errorf("error = %v, want %q", body["error"], tt.err.Error())
			}
		})
	}
}

func TestWriteWrappedFaultUsesSentinelKind(t *testing.T) {
	sentinel := domain.NewFault(domain.FaultConflict, "seat already held")
	rec := httptest.NewRecorder()

	Write(rec, domain.WrapFault(sentinel, "seat %s", "A1"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))
	if err := DecodeJSON(req, &payload); err == nil {
		t.Fatal("DecodeJSON accepted an unknown field")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	if err := DecodeJSON(req, &payload); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if payload.Name != "ok" {
		t.Errorf("name = %q, want ok", payload.Name)
	}
}
