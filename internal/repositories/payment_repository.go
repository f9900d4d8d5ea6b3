package repositories

import (
	"context"
	"errors"

	"krouai/internal/models"
)

// ErrPaymentNotFound is returned when no payment exists for a hash.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository owns the pending_payments and user_credits tables.
type PaymentRepository interface {
	// CreatePending inserts a new payment row with status pending.
	CreatePending(ctx context.Context, payment *models.PendingPayment) error

	// GetByHash returns the payment for a payload hash, or
	// ErrPaymentNotFound.
	GetByHash(ctx context.Context, md5Hash string) (*models.PendingPayment, error)

	// Settle flips the payment to completed and adds its credits to the
	// user's balance in one transaction. It returns false when the
	// payment was already completed, in which case nothing is written.
	Settle(ctx context.Context, payment *models.PendingPayment) (applied bool, err error)

	// GetCredits returns the balance row for a user, or nil when the
	// user has never been credited.
	GetCredits(ctx context.Context, userID string) (*models.UserCredit, error)
}
