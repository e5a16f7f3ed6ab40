package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Product groups variants under one catalog entry. Type is immutable after
// creation and decides how variants are sold.
type Product struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string            `gorm:"column:name;type:text;not null"`
	Type      enums.ProductType `gorm:"column:type;type:product_type;not null"`
	BrandName *string           `gorm:"column:brand_name;type:text"`
	Variants  []Variant         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// Variant is a purchasable SKU. StockDefect units are never sellable and are
// tracked apart from StockAvailable.
type Variant struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU            string          `gorm:"column:sku;type:text;not null;uniqueIndex"`
	Name           string          `gorm:"column:name;type:text;not null"`
	UnitPrice      int64           `gorm:"column:unit_price;not null"`
	StockAvailable int             `gorm:"column:stock_available;not null;default:0"`
	StockDefect    int             `gorm:"column:stock_defect;not null;default:0"`
	WeightGrams    int             `gorm:"column:weight_grams;not null;default:0"`
	Product        *Product        `gorm:"foreignKey:ProductID"`
	PreorderConfig *PreorderConfig `gorm:"foreignKey:VariantID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
