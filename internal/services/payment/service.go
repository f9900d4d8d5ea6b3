// Package payment implements the payment lifecycle: issuing KHQR payments
// for credit packages, checking their settlement against Bakong and
// crediting the buyer exactly once.
package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"krouai/internal/bakong"
	"krouai/internal/catalog"
	domainErrors "krouai/internal/errors"
	"krouai/internal/khqr"
	"krouai/internal/models"
	"krouai/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.PaymentRepository
	oracle  Oracle
	encoder *khqr.Encoder
	cache   StatusCache
	config  Config
	metrics MetricsCollector
}

type noopCache struct{}

func (noopCache) GetStatus(context.Context, string) (string, bool) { return "", false }
func (noopCache) SetStatus(context.Context, string, string)       {}

// NewService creates the payment lifecycle service. Cache and metrics are
// optional; the rest is required.
func NewService(
	repo repositories.PaymentRepository,
	oracle Oracle,
	encoder *khqr.Encoder,
	cache StatusCache,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if oracle == nil {
		panic("oracle is required")
	}
	if encoder == nil {
		panic("encoder is required")
	}
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if config.BillPrefix == "" {
		config.BillPrefix = "KROU"
	}

	return &service{
		repo:    repo,
		oracle:  oracle,
		encoder: encoder,
		cache:   cache,
		config:  config,
		metrics: metrics,
	}
}

func (s *service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("create_payment", time.Since(start)) }()

	if req.UserID == "" {
		s.metrics.RecordError("create_payment", "missing_user_id")
		return nil, domainErrors.ErrMissingUserID
	}
	pkg, ok := catalog.Get(req.Package)
	if !ok {
		s.metrics.RecordError("create_payment", "invalid_package")
		return nil, domainErrors.ErrInvalidPackage
	}
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyKHR
	}
	if currency != models.CurrencyKHR && currency != models.CurrencyUSD {
		s.metrics.RecordError("create_payment", "invalid_currency")
		return nil, domainErrors.ErrInvalidCurrency
	}

	amount := pkg.Price(currency)
	billNumber := s.newBillNumber()

	qrString, err := s.encoder.Encode(khqr.Payment{
		Amount:        amount,
		Currency:      currency,
		BillNumber:    billNumber,
		StoreLabel:    s.config.StoreLabel,
		TerminalLabel: fmt.Sprintf("%d Credits", pkg.Credits),
	})
	if err != nil {
		s.metrics.RecordError("create_payment", "encode")
		return nil, fmt.Errorf("failed to create QR: %w", err)
	}
	md5Hash := khqr.Hash(qrString)

	deeplink, err := s.oracle.GenerateDeeplink(ctx, qrString, bakong.SourceInfo{
		AppIconURL:          s.config.AppIconURL,
		AppName:             s.config.AppName,
		AppDeepLinkCallback: fmt.Sprintf("%s&bill=%s", s.config.DeeplinkCallback, billNumber),
	})
	if err != nil {
		s.metrics.RecordError("create_payment", "deeplink")
		return nil, fmt.Errorf("failed to generate deeplink: %w", err)
	}

	payment := &models.PendingPayment{
		UserID:     req.UserID,
		BillNumber: billNumber,
		MD5Hash:    md5Hash,
		Credits:    pkg.Credits,
		Amount:     amount,
		Currency:   currency,
		QRString:   qrString,
	}
	if err := s.repo.CreatePending(ctx, payment); err != nil {
		s.metrics.RecordError("create_payment", "store")
		return nil, err
	}

	s.metrics.RecordOperationResult("create_payment", "success")
	return &CreatePaymentResult{
		QRString:   qrString,
		MD5Hash:    md5Hash,
		Deeplink:   deeplink,
		BillNumber: billNumber,
		Credits:    pkg.Credits,
		Amount:     amount,
		Currency:   currency,
	}, nil
}

func (s *service) CheckPayment(ctx context.Context, md5Hash string) (*CheckPaymentResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("check_payment", time.Since(start)) }()

	if md5Hash == "" {
		return nil, domainErrors.ErrMissingHash
	}

	status, cached := s.cache.GetStatus(ctx, md5Hash)
	if !cached {
		var err error
		status, err = s.oracle.CheckTransaction(ctx, md5Hash)
		if err != nil {
			s.metrics.RecordError("check_payment", "oracle")
			return nil, fmt.Errorf("failed to check payment: %w", err)
		}
		if status == bakong.StatusPaid {
			// PAID is terminal at Bakong, safe to cache.
			s.cache.SetStatus(ctx, md5Hash, status)
		}
	}

	if status != bakong.StatusPaid {
		s.metrics.RecordOperationResult("check_payment", "unpaid")
		return &CheckPaymentResult{Status: status}, nil
	}

	payment, err := s.repo.GetByHash(ctx, md5Hash)
	if err != nil {
		if err == repositories.ErrPaymentNotFound {
			// A paid hash we never issued, or a lost create-payment
			// write. Surface it to the operator, stay soft for the
			// caller.
			log.Printf("payment: settled hash %s has no matching record", md5Hash)
			s.metrics.RecordOrphanSettlement()
			return &CheckPaymentResult{Status: status}, nil
		}
		s.metrics.RecordError("check_payment", "store")
		return nil, err
	}

	if payment.Status == models.PaymentStatusCompleted {
		s.metrics.RecordOperationResult("check_payment", "already_processed")
		return &CheckPaymentResult{Status: status, Message: "Already processed"}, nil
	}

	applied, err := s.repo.Settle(ctx, payment)
	if err != nil {
		s.metrics.RecordError("check_payment", "settle")
		return nil, err
	}
	if !applied {
		// Lost the settlement race to a concurrent poll.
		s.metrics.RecordOperationResult("check_payment", "already_processed")
		return &CheckPaymentResult{Status: status, Message: "Already processed"}, nil
	}

	s.metrics.RecordSettlement(payment.Credits)
	s.metrics.RecordOperationResult("check_payment", "settled")
	return &CheckPaymentResult{
		Status:       status,
		CreditsAdded: payment.Credits,
		Message:      fmt.Sprintf("Successfully added %d credits!", payment.Credits),
	}, nil
}

func (s *service) GetPaymentInfo(ctx context.Context, md5Hash string) (map[string]interface{}, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("payment_info", time.Since(start)) }()

	if md5Hash == "" {
		return nil, domainErrors.ErrMissingHash
	}
	detail, err := s.oracle.GetTransaction(ctx, md5Hash)
	if err != nil {
		s.metrics.RecordError("payment_info", "oracle")
		return nil, fmt.Errorf("failed to get payment info: %w", err)
	}
	return detail, nil
}

func (s *service) GetCredits(ctx context.Context, userID string) (*models.UserCredit, error) {
	if userID == "" {
		return nil, domainErrors.ErrMissingUserID
	}
	return s.repo.GetCredits(ctx, userID)
}

// newBillNumber mints a unique human-traceable reference: the merchant
// prefix, the creation time and a short random suffix so concurrent
// requests within the same second cannot collide.
func (s *service) newBillNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s%d%s", s.config.BillPrefix, time.Now().Unix(), suffix)
}
