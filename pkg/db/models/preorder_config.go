package models

import (
	"time"

	"github.com/google/uuid"
)

// PreorderConfig holds the slot-capacity state for one pre-order variant.
// SoldSlots only moves through the guarded reservation/release updates and
// never exceeds TotalSlots. StockHeld is physical stock received but not yet
// allocated to a contract.
type PreorderConfig struct {
	VariantID     uuid.UUID `gorm:"column:variant_id;type:uuid;primaryKey"`
	DepositAmount int64     `gorm:"column:deposit_amount;not null"`
	FullPrice     int64     `gorm:"column:full_price;not null"`
	TotalSlots    int       `gorm:"column:total_slots;not null"`
	SoldSlots     int       `gorm:"column:sold_slots;not null;default:0"`
	StockHeld     int       `gorm:"column:stock_held;not null;default:0"`
	MaxQtyPerUser int       `gorm:"column:max_qty_per_user;not null;default:1"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
