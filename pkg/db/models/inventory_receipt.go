package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryReceipt records one warehouse delivery for audit purposes.
type InventoryReceipt struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference *string                `gorm:"column:reference;type:text"`
	Items     []InventoryReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// InventoryReceiptItem is one received line. QuantityDefect goes to the
// variant's defect counter and is never sellable.
type InventoryReceiptItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReceiptID      uuid.UUID `gorm:"column:receipt_id;type:uuid;not null;index"`
	VariantID      uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	QuantityGood   int       `gorm:"column:quantity_good;not null"`
	QuantityDefect int       `gorm:"column:quantity_defect;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
