package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/api/middleware"
	"github.com/shreyas-k21/passvault/internal/crypto"
	"github.com/shreyas-k21/passvault/internal/session"
	"github.com/shreyas-k21/passvault/internal/utils"
	"github.com/shreyas-k21/passvault/internal/vault"
)

// requireIdentity pulls the identity the auth middleware attached. Protected
// routes are always behind the middleware, so a miss is a server bug, not a
// client error.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*session.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Not authenticated",
			Code:    utils.CodeUnauthenticated,
		})
		return nil, false
	}
	return identity, true
}

func parseRecordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid record id",
			Code:    utils.CodeValidationError,
		})
		return uuid.Nil, false
	}
	return id, true
}

// writeRecordError maps service failures to responses with stable codes.
func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vault.ErrValidation):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: err.Error(),
			Code:    utils.CodeValidationError,
		})
	case errors.Is(err, vault.ErrNotFound):
		// Covers both "does not exist" and "not yours".
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Record not found",
			Code:    utils.CodeNotFound,
		})
	case errors.Is(err, crypto.ErrTampered):
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to decrypt record",
			Code:    utils.CodeTamperedOrCorrupt,
		})
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Something went wrong",
			Code:    utils.CodeServerError,
		})
	}
}
