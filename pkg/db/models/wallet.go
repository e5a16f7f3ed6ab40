package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Wallet caches a customer's spendable balance. The balance is derived state:
// it must always equal the sum of the customer's WalletTransaction amounts.
type Wallet struct {
	CustomerID       uuid.UUID `gorm:"column:customer_id;type:uuid;primaryKey"`
	BalanceAvailable int64     `gorm:"column:balance_available;not null;default:0"`
	BalanceLocked    int64     `gorm:"column:balance_locked;not null;default:0"`
	LoyaltyPoints    int64     `gorm:"column:loyalty_points;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// WalletTransaction is one append-only, signed ledger row. Debits are
// negative, credits positive.
type WalletTransaction struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	Amount      int64                 `gorm:"column:amount;not null"`
	Type        enums.WalletEntryType `gorm:"column:type;type:wallet_entry_type;not null"`
	RefCode     string                `gorm:"column:ref_code;type:text;not null"`
	Description string                `gorm:"column:description;type:text;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
