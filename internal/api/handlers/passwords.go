package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shreyas-k21/passvault/internal/utils"
	"github.com/shreyas-k21/passvault/internal/vault"
)

type PasswordsHandler struct {
	vault *vault.Service
}

func NewPasswordsHandler(v *vault.Service) *PasswordsHandler {
	return &PasswordsHandler{vault: v}
}

// Collection godoc
// @Summary List or create password entries
// @Description GET lists the caller's entries with decrypted secrets; POST creates one
// @Tags Passwords
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/passwords [get]
func (h *PasswordsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		entries, err := h.vault.ListPasswords(r.Context(), identity.UserID)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    entries,
		})

	case http.MethodPost:
		var input vault.PasswordInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
				Code:    utils.CodeValidationError,
			})
			return
		}
		entry, err := h.vault.CreatePassword(r.Context(), identity.UserID, input)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusCreated, utils.Payload{
			Success: true,
			Message: "Password created successfully",
			Data:    entry,
		})

	default:
		methodNotAllowed(w)
	}
}

// Item godoc
// @Summary Fetch, update or delete one password entry
// @Description Scoped to the caller; a foreign id reads as not found
// @Tags Passwords
// @Accept json
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/passwords/{id} [get]
func (h *PasswordsHandler) Item(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := h.vault.GetPassword(r.Context(), identity.UserID, id)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    entry,
		})

	case http.MethodPut:
		var input vault.PasswordInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
				Code:    utils.CodeValidationError,
			})
			return
		}
		entry, err := h.vault.UpdatePassword(r.Context(), identity.UserID, id, input)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Password updated successfully",
			Data:    entry,
		})

	case http.MethodDelete:
		if err := h.vault.DeletePassword(r.Context(), identity.UserID, id); err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Password deleted successfully",
		})

	default:
		methodNotAllowed(w)
	}
}
