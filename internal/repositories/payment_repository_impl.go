package repositories

import (
	"context"
	"fmt"

	"krouai/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a PaymentRepository backed by Postgres.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePending(ctx context.Context, payment *models.PendingPayment) error {
	payment.Status = models.PaymentStatusPending
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create pending payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByHash(ctx context.Context, md5Hash string) (*models.PendingPayment, error) {
	var payment models.PendingPayment
	if err := r.db.WithContext(ctx).Where("md5_hash = ?", md5Hash).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// Settle is the only consistency-sensitive write in the system. The status
// flip is guarded by status = 'pending', so for any number of concurrent
// callers exactly one sees RowsAffected == 1 and applies the credit; the
// rest take the already-completed path without touching the balance. The
// flip and the balance upsert commit or roll back together.
func (r *paymentRepository) Settle(ctx context.Context, payment *models.PendingPayment) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PendingPayment{}).
			Where("md5_hash = ? AND status = ?", payment.MD5Hash, models.PaymentStatusPending).
			Update("status", models.PaymentStatusCompleted)
		if res.Error != nil {
			return fmt.Errorf("failed to complete payment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		credit := models.UserCredit{
			UserID:        payment.UserID,
			Credits:       payment.Credits,
			UnlockedBooks: []string{},
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"credits":    gorm.Expr("user_credits.credits + excluded.credits"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(&credit).Error; err != nil {
			return fmt.Errorf("failed to credit user: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *paymentRepository) GetCredits(ctx context.Context, userID string) (*models.UserCredit, error) {
	var credit models.UserCredit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&credit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user credits: %w", err)
	}
	return &credit, nil
}
