package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// PreorderContract is one customer's reservation against one pre-order
// variant for one checkout. RemainingAmount is frozen at creation
// (full_price x quantity - deposit) and not recomputed if the config price
// moves later. CreatedAt is the FIFO allocation key.
type PreorderContract struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID          uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	VariantID           uuid.UUID            `gorm:"column:variant_id;type:uuid;not null;index"`
	Quantity            int                  `gorm:"column:quantity;not null"`
	DepositAmountPaid   int64                `gorm:"column:deposit_amount_paid;not null"`
	RemainingAmount     int64                `gorm:"column:remaining_amount;not null"`
	Status              enums.ContractStatus `gorm:"column:status;type:contract_status;not null"`
	DepositOrderID      uuid.UUID            `gorm:"column:deposit_order_id;type:uuid;not null;index"`
	FinalPaymentOrderID *uuid.UUID           `gorm:"column:final_payment_order_id;type:uuid"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
