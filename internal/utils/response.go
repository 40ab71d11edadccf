package utils

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Stable error codes carried in Payload.Code so clients can branch without
// parsing messages.
const (
	CodeValidationError    = "validation_error"
	CodeDuplicateUsername  = "duplicate_username"
	CodeWeakPassword       = "weak_password"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeNotFound           = "not_found"
	CodeTamperedOrCorrupt  = "tampered_or_corrupt"
	CodeServerError        = "server_error"
)

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
