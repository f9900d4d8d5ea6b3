package payment

import (
	"context"

	"krouai/internal/bakong"
	"krouai/internal/models"
)

// Service is the payment lifecycle service: it issues KHQR payments,
// settles them idempotently and serves balance reads.
type Service interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResult, error)
	CheckPayment(ctx context.Context, md5Hash string) (*CheckPaymentResult, error)
	GetPaymentInfo(ctx context.Context, md5Hash string) (map[string]interface{}, error)
	GetCredits(ctx context.Context, userID string) (*models.UserCredit, error)
}

// Oracle is the slice of the Bakong API the service depends on.
type Oracle interface {
	CheckTransaction(ctx context.Context, md5Hash string) (string, error)
	GetTransaction(ctx context.Context, md5Hash string) (map[string]interface{}, error)
	GenerateDeeplink(ctx context.Context, qr string, src bakong.SourceInfo) (string, error)
}

// StatusCache caches terminal oracle verdicts between polls.
type StatusCache interface {
	GetStatus(ctx context.Context, md5Hash string) (string, bool)
	SetStatus(ctx context.Context, md5Hash, status string)
}
