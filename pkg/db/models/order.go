package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Order is a single payable unit. Sub-orders produced from one checkout share
// a PaymentRefCode so they can be paid as a group. Orders are never deleted;
// terminal statuses are final markers.
type Order struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID          uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	PaymentRefCode      string              `gorm:"column:payment_ref_code;type:text;not null;index"`
	Status              enums.OrderStatus   `gorm:"column:status;type:order_status;not null"`
	PaymentMethod       enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null;default:'wallet'"`
	TotalAmount         int64               `gorm:"column:total_amount;not null"`
	PaidAmount          int64               `gorm:"column:paid_amount;not null;default:0"`
	ShippingFee         int64               `gorm:"column:shipping_fee;not null;default:0"`
	OriginalShippingFee int64               `gorm:"column:original_shipping_fee;not null;default:0"`
	ShippingAddressID   *uuid.UUID          `gorm:"column:shipping_address_id;type:uuid"`
	VoucherCode         *string             `gorm:"column:voucher_code;type:text"`
	PaymentDeadline     *time.Time          `gorm:"column:payment_deadline"`
	Items               []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CompletedAt         *time.Time          `gorm:"column:completed_at"`
	CancelledAt         *time.Time          `gorm:"column:cancelled_at"`
	ExpiredAt           *time.Time          `gorm:"column:expired_at"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one purchased line. UnitPrice is the price at purchase
// time and is never recomputed from the live variant. IsPreorder records the
// classification made at checkout so reversal releases the right counter.
type OrderItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	VariantID  uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index"`
	Quantity   int       `gorm:"column:quantity;not null"`
	UnitPrice  int64     `gorm:"column:unit_price;not null"`
	IsPreorder bool      `gorm:"column:is_preorder;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
