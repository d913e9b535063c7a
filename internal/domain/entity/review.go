package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a product.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
