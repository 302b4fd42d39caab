package handlers

import (
	"log/slog"
	"net/http"

	"github.com/grk-gaming/tournament-hub/services"
)

type UserHandler struct {
	userService  services.UserService
	emailService *services.EmailService
}

func NewUserHandler(us services.UserService, es *services.EmailService) *UserHandler {
	return &UserHandler{
		userService:  us,
		emailService: es,
	}
}

// RegisterHandler handles POST /users/register.
func (h *UserHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if h.emailService != nil {
		if err := h.emailService.SendRegistrationNotification(user); err != nil {
			slog.Error("failed to send registration notification", slog.Any("error", err))
		}
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /users/{userID}.
func (h *UserHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
