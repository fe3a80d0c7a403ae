package stringer

import (
	"time"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/geo"
)

// ServiceItem is one entry of a stringer's service menu.
type ServiceItem struct {
	Name       string `json:"name" validate:"required,max=100"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
}

// AvailabilityBlock is a weekly window, dow 0 = Sunday.
type AvailabilityBlock struct {
	DayOfWeek int    `json:"dow" validate:"gte=0,lte=6"`
	Start     string `json:"start" validate:"required,hhmm"`
	End       string `json:"end" validate:"required,hhmm"`
}

// Settings is the per-stringer configuration. ID is the owning profile id.
type Settings struct {
	ID              string              `json:"id"`
	BasePriceCents  int64               `json:"base_price_cents"`
	TurnaroundHours int                 `json:"turnaround_hours"`
	AcceptsRush     bool                `json:"accepts_rush"`
	RushFeeCents    int64               `json:"rush_fee_cents"`
	MaxDailyJobs    int                 `json:"max_daily_jobs"`
	Services        []ServiceItem       `json:"services"`
	Availability    []AvailabilityBlock `json:"availability"`
	Suspended       bool                `json:"suspended"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SettingsInput is the full-replace payload of PUT /stringer/settings.
// Suspension is an admin concern and cannot be set here.
type SettingsInput struct {
	BasePriceCents  int64               `json:"base_price_cents" validate:"gte=0"`
	TurnaroundHours int                 `json:"turnaround_hours" validate:"gte=1"`
	AcceptsRush     bool                `json:"accepts_rush"`
	RushFeeCents    int64               `json:"rush_fee_cents" validate:"gte=0"`
	MaxDailyJobs    int                 `json:"max_daily_jobs" validate:"gte=1"`
	Services        []ServiceItem       `json:"services" validate:"max=50,dive"`
	Availability    []AvailabilityBlock `json:"availability" validate:"max=100,dive"`
}

func (in SettingsInput) Check() error {
	for i, b := range in.Availability {
		if b.Start >= b.End {
			return apperr.Validation("availability[%d] start must be before end", i)
		}
	}
	return nil
}

func (in SettingsInput) Settings(id string) *Settings {
	s := &Settings{
		ID:              id,
		BasePriceCents:  in.BasePriceCents,
		TurnaroundHours: in.TurnaroundHours,
		AcceptsRush:     in.AcceptsRush,
		RushFeeCents:    in.RushFeeCents,
		MaxDailyJobs:    in.MaxDailyJobs,
		Services:        in.Services,
		Availability:    in.Availability,
	}
	if s.Services == nil {
		s.Services = []ServiceItem{}
	}
	if s.Availability == nil {
		s.Availability = []AvailabilityBlock{}
	}
	return s
}

// DefaultSettings are given to a player who becomes a stringer, and to
// accounts that sign up as stringers.
func DefaultSettings(id string) *Settings {
	return &Settings{
		ID:              id,
		BasePriceCents:  2500,
		TurnaroundHours: 24,
		AcceptsRush:     true,
		RushFeeCents:    500,
		MaxDailyJobs:    5,
		Services: []ServiceItem{
			{Name: "Standard Restring", PriceCents: 2500},
			{Name: "Premium String", PriceCents: 3500},
		},
		Availability: []AvailabilityBlock{},
	}
}

// Rating is the aggregate over a stringer's reviews.
type Rating struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// Candidate is a discoverable stringer as loaded for search.
type Candidate struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	AvatarURL       string    `json:"avatar_url"`
	City            string    `json:"city"`
	Location        geo.Point `json:"location"`
	BasePriceCents  int64     `json:"base_price_cents"`
	TurnaroundHours int       `json:"turnaround_hours"`
	AcceptsRush     bool      `json:"accepts_rush"`
	RushFeeCents    int64     `json:"rush_fee_cents"`
	Rating
}

// Result is a Candidate that matched a search, with its distance from the
// search origin.
type Result struct {
	Candidate
	DistanceKm float64 `json:"distance_km"`
}

// Public is the profile page of a stringer.
type Public struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	AvatarURL string     `json:"avatar_url"`
	Bio       string     `json:"bio"`
	City      string     `json:"city"`
	Location  *geo.Point `json:"location"`
	Settings  *Settings  `json:"settings"`
	Rating    Rating     `json:"rating"`
}
