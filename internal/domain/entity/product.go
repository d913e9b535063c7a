package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item built from an approved public design.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	DesignID  int64           `json:"designId"`
	CreatorID int64           `json:"creatorId"`
	Colors    []string        `json:"colors,omitempty"`
	Sizes     []string        `json:"sizes,omitempty"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
}
