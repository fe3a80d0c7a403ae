package marketplace

import "time"

// Review is a player's rating of a completed request
type Review struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	PlayerID   string    `json:"player_id"`
	StringerID string    `json:"stringer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewWithDetails carries the reviewing player's name
type ReviewWithDetails struct {
	Review
	PlayerName string `json:"player_name"`
}

// RatingSummary aggregates a stringer's reviews
type RatingSummary struct {
	StringerID    string  `json:"stringer_id"`
	StringerName  string  `json:"stringer_name"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	RatingCounts  struct {
		FiveStar  int `json:"five_star"`
		FourStar  int `json:"four_star"`
		ThreeStar int `json:"three_star"`
		TwoStar   int `json:"two_star"`
		OneStar   int `json:"one_star"`
	} `json:"rating_counts"`
}

// Count records n reviews with the given star rating.
func (s *RatingSummary) Count(stars, n int) {
	switch stars {
	case 5:
		s.RatingCounts.FiveStar = n
	case 4:
		s.RatingCounts.FourStar = n
	case 3:
		s.RatingCounts.ThreeStar = n
	case 2:
		s.RatingCounts.TwoStar = n
	case 1:
		s.RatingCounts.OneStar = n
	}
}

// CreateReviewInput is the body of POST /requests/:id/review
type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}
