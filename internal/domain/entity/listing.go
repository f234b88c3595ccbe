package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
