package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable item shown on the shop page.
type Product struct {
	ID        string          `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	ImageRef  string          `gorm:"column:image_ref;not null"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }
