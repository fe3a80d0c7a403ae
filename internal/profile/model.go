package profile

import (
	"time"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

type Profile struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Lat       *float64  `json:"lat"`
	Lng       *float64  `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public is what other users see: no phone number and no coordinates.
type Public struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Profile) Public() Public {
	return Public{
		ID:        p.ID,
		Role:      p.Role,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		City:      p.City,
		CreatedAt: p.CreatedAt,
	}
}

// UpdateInput is the body of PATCH /profile. Absent fields are left alone.
type UpdateInput struct {
	FullName  *string  `json:"full_name" validate:"omitempty,min=1,max=200"`
	AvatarURL *string  `json:"avatar_url" validate:"omitempty,max=500"`
	Bio       *string  `json:"bio" validate:"omitempty,max=2000"`
	Phone     *string  `json:"phone" validate:"omitempty,max=40"`
	City      *string  `json:"city" validate:"omitempty,max=200"`
	Lat       *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng       *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

func (in UpdateInput) Check() error {
	if (in.Lat == nil) != (in.Lng == nil) {
		return apperr.Validation("lat and lng must be given together")
	}
	return nil
}

// apply copies the present fields of in onto p and reports whether the city
// changed.
func (in UpdateInput) apply(p *Profile) (cityChanged bool) {
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.City != nil && *in.City != p.City {
		p.City = *in.City
		cityChanged = true
	}
	if in.Lat != nil {
		p.Lat, p.Lng = in.Lat, in.Lng
	}
	return cityChanged
}
