package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a job offer posted by a user. Lifecycle is owned by the
// listing service; payments only reference it through the owner id.
type Listing struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"column:user_id;not null;index" json:"user_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Location    string          `gorm:"size:255" json:"location"`
	Description string          `gorm:"type:text" json:"description"`
	Rate        decimal.Decimal `gorm:"type:numeric(10,2)" json:"rate"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Listing) TableName() string {
	return "listings"
}
