package models

import "time"

// PaymentStatus tracks the lifecycle of a registration's entry-fee payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentVerified PaymentStatus = "verified"
)

type Registration struct {
	ID            int           `json:"id"`
	UserID        int           `json:"user_id"`
	TournamentID  int           `json:"tournament_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TransactionID *string       `json:"transaction_id,omitempty"`
	ProofKey      *string       `json:"-"`
	ProofURL      *string       `json:"payment_proof_url,omitempty"`
	RegisteredAt  time.Time     `json:"registered_at"`
}
