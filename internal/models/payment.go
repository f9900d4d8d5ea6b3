package models

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"

	CurrencyKHR = "KHR"
	CurrencyUSD = "USD"
)

// PendingPayment is one issued KHQR payment. Exactly one row exists per
// md5 hash; status only ever moves pending -> completed.
type PendingPayment struct {
	ID         uint    `gorm:"primarykey"`
	UserID     string  `gorm:"not null;index"`
	BillNumber string  `gorm:"uniqueIndex;not null"`
	MD5Hash    string  `gorm:"uniqueIndex;not null"`
	Credits    int     `gorm:"not null"`
	Amount     float64 `gorm:"not null"`
	Currency   string  `gorm:"not null;default:'KHR'"`
	Status     string  `gorm:"not null;default:'pending';index"`
	QRString   string  `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
