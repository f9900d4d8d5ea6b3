package models

import (
	"time"

	"github.com/lib/pq"
)

// UserCredit is a user's credit balance. Rows are created lazily on the
// first settlement and only ever increased by settlements.
type UserCredit struct {
	ID            uint           `gorm:"primarykey"`
	UserID        string         `gorm:"uniqueIndex;not null"`
	Credits       int            `gorm:"not null;default:0"`
	UnlockedBooks pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
