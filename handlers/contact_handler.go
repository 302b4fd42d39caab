package handlers

import (
	"errors"
	"net/http"

	"github.com/grk-gaming/tournament-hub/services"
)

type ContactHandler struct {
	emailService *services.EmailService
}

func NewContactHandler(es *services.EmailService) *ContactHandler {
	return &ContactHandler{emailService: es}
}

// SendHandler handles POST /contact.
func (h *ContactHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == "" || input.Email == "" || input.Message == "" {
		badRequestResponse(w, r, errors.New("name, email and message are required"))
		return
	}

	if err := h.emailService.SendContactMessage(input.Name, input.Email, input.Subject, input.Message); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Message sent successfully"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
