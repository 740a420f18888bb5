package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of a product. The rating is bounded to [1,5].
type Review struct {
	ID        uuid.UUID // The unique identifier for the review.
	ProductID uuid.UUID // The reviewed product.
	UserID    uuid.UUID // The authenticated author.
	Rating    int       // Bounded to [MinRating, MaxRating].
	Comment   string
	CreatedAt time.Time
}

// ValidRating reports whether a rating value is within bounds.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
