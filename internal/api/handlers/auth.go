package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shreyas-k21/passvault/internal/api/middleware"
	"github.com/shreyas-k21/passvault/internal/auth"
	"github.com/shreyas-k21/passvault/internal/session"
	"github.com/shreyas-k21/passvault/internal/utils"
)

type AuthHandler struct {
	creds       *auth.Service
	sessions    *session.Manager
	sessionTTL  time.Duration
	environment string
}

func NewAuthHandler(creds *auth.Service, sessions *session.Manager, sessionTTL time.Duration, environment string) *AuthHandler {
	return &AuthHandler{
		creds:       creds,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		environment: environment,
	}
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body credentialsInput true "Username and password"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var input credentialsInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
			Code:    utils.CodeValidationError,
		})
		return
	}

	user, err := h.creds.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateUsername):
			utils.JSONResponse(w, http.StatusConflict, utils.Payload{
				Success: false,
				Message: "Username is already taken",
				Code:    utils.CodeDuplicateUsername,
			})
		case errors.Is(err, auth.ErrWeakPassword):
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: err.Error(),
				Code:    utils.CodeWeakPassword,
			})
		case errors.Is(err, auth.ErrValidation):
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: err.Error(),
				Code:    utils.CodeValidationError,
			})
		default:
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Registration failed",
				Code:    utils.CodeServerError,
			})
		}
		return
	}

	// Registration logs the user straight in, as login would.
	token, err := h.sessions.Establish(r.Context(), user.ID, user.Username)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Registration failed",
			Code:    utils.CodeServerError,
		})
		return
	}
	h.setSessionCookie(w, token)

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data: map[string]any{
			"userId":   user.ID,
			"username": user.Username,
		},
	})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body credentialsInput true "Username and password"
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var input credentialsInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
			Code:    utils.CodeValidationError,
		})
		return
	}

	user, err := h.creds.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		// Unknown username and wrong password produce the same response.
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
			Code:    utils.CodeInvalidCredentials,
		})
		return
	}

	token, err := h.sessions.Establish(r.Context(), user.ID, user.Username)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Login failed",
			Code:    utils.CodeServerError,
		})
		return
	}
	h.setSessionCookie(w, token)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data: map[string]any{
			"userId":   user.ID,
			"username": user.Username,
		},
	})
}

// Logout godoc
// @Summary Log out
// @Description Invalidate the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		// Destroy is idempotent; logging out twice is fine.
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Logout failed",
				Code:    utils.CodeServerError,
			})
			return
		}
	}
	h.clearSessionCookie(w)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Status godoc
// @Summary Authentication status
// @Description Report whether the caller holds a live session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/auth/status [get]
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil {
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    map[string]any{"authenticated": false},
		})
		return
	}

	identity, err := h.sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Data:    map[string]any{"authenticated": false},
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Data: map[string]any{
			"authenticated": true,
			"userId":        identity.UserID,
			"username":      identity.Username,
		},
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	isProd := h.environment == "production"

	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	isProd := h.environment == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   isProd,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
		Success: false,
		Message: "Method not allowed",
	})
}
