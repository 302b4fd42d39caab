package handlers

import (
	"errors"
	"net/http"

	"github.com/grk-gaming/tournament-hub/services"
)

// Payment proof uploads are capped well below the JSON body limit; proofs
// are screenshots, not archives.
const maxProofUploadBytes = 10 << 20 // 10MB

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// CreateHandler handles POST /registrations.
func (h *RegistrationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.registrationService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTournamentHandler handles GET /tournaments/{tournamentID}/registrations.
func (h *RegistrationHandler) ListByTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registrations, err := h.registrationService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitPaymentHandler handles POST /registrations/{registrationID}/payment.
// Multipart form: transaction_id (required) plus an optional proof file.
func (h *RegistrationHandler) SubmitPaymentHandler(w http.ResponseWriter, r *http.Request) {
	registrationID, err := getIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxProofUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart form data"))
		return
	}

	input := services.SubmitPaymentInput{
		RegistrationID: registrationID,
		TransactionID:  r.FormValue("transaction_id"),
	}

	file, header, err := r.FormFile("proof")
	if err == nil {
		defer file.Close()
		input.Proof = file
		input.ProofFilename = header.Filename
		input.ProofContentType = header.Header.Get("Content-Type")
	} else if !errors.Is(err, http.ErrMissingFile) {
		badRequestResponse(w, r, errors.New("invalid proof file"))
		return
	}

	registration, err := h.registrationService.SubmitPayment(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
