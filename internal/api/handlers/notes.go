package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shreyas-k21/passvault/internal/utils"
	"github.com/shreyas-k21/passvault/internal/vault"
)

type NotesHandler struct {
	vault *vault.Service
}

func NewNotesHandler(v *vault.Service) *NotesHandler {
	return &NotesHandler{vault: v}
}

// Collection handles listing and creating notes for the caller.
func (h *NotesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		notes, err := h.vault.ListNotes(r.Context(), identity.UserID)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    notes,
		})

	case http.MethodPost:
		var input vault.NoteInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
				Code:    utils.CodeValidationError,
			})
			return
		}
		note, err := h.vault.CreateNote(r.Context(), identity.UserID, input)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusCreated, utils.Payload{
			Success: true,
			Message: "Note created successfully",
			Data:    note,
		})

	default:
		methodNotAllowed(w)
	}
}

// Item handles fetching, updating and deleting one note.
func (h *NotesHandler) Item(w http.ResponseWriter, r *http.Request) {
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
		note, err := h.vault.GetNote(r.Context(), identity.UserID, id)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    note,
		})

	case http.MethodPut:
		var input vault.NoteInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
				Code:    utils.CodeValidationError,
			})
			return
		}
		note, err := h.vault.UpdateNote(r.Context(), identity.UserID, id, input)
		if err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Note updated successfully",
			Data:    note,
		})

	case http.MethodDelete:
		if err := h.vault.DeleteNote(r.Context(), identity.UserID, id); err != nil {
			writeRecordError(w, err)
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Note deleted successfully",
		})

	default:
		methodNotAllowed(w)
	}
}
