package marketplace

import (
	"time"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// Status is the lifecycle state of a Request.
type Status string

const (
	StatusRequested  Status = "requested"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// ActiveStatuses count against a stringer's daily capacity.
var ActiveStatuses = []Status{StatusRequested, StatusAccepted, StatusInProgress}

type DropoffMethod string

const (
	DropoffMeetup  DropoffMethod = "meetup"
	DropoffPickup  DropoffMethod = "pickup"
	DropoffShip    DropoffMethod = "ship"
	DropoffDropbox DropoffMethod = "dropbox"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Request is a single stringing job placed by a player with a stringer.
type Request struct {
	ID               string        `json:"id"`
	PlayerID         string        `json:"player_id"`
	StringerID       *string       `json:"stringer_id"`
	Status           Status        `json:"status"`
	RacquetBrand     string        `json:"racquet_brand"`
	RacquetModel     string        `json:"racquet_model"`
	StringPref       string        `json:"string_pref"`
	TensionLbs       *float64      `json:"tension_lbs"`
	Notes            string        `json:"notes"`
	DropoffMethod    DropoffMethod `json:"dropoff_method"`
	Address          string        `json:"address"`
	Lat              *float64      `json:"lat"`
	Lng              *float64      `json:"lng"`
	IsRush           bool          `json:"is_rush"`
	QuotedPriceCents int64         `json:"quoted_price_cents"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// IsPlayer reports whether userID placed r.
func (r *Request) IsPlayer(userID string) bool {
	return userID != "" && r.PlayerID == userID
}

// IsStringer reports whether userID is the stringer assigned to r.
func (r *Request) IsStringer(userID string) bool {
	return userID != "" && r.StringerID != nil && *r.StringerID == userID
}

// Counterpart returns the other participant of r, or "" when userID takes no
// part in it.
func (r *Request) Counterpart(userID string) string {
	switch {
	case r.IsPlayer(userID):
		if r.StringerID != nil {
			return *r.StringerID
		}
		return ""
	case r.IsStringer(userID):
		return r.PlayerID
	default:
		return ""
	}
}

// CreateRequestInput is the body of POST /requests.
type CreateRequestInput struct {
	StringerID    string        `json:"stringer_id" validate:"required,uuid"`
	RacquetBrand  string        `json:"racquet_brand" validate:"max=100"`
	RacquetModel  string        `json:"racquet_model" validate:"max=100"`
	StringPref    string        `json:"string_pref" validate:"max=200"`
	TensionLbs    *float64      `json:"tension_lbs" validate:"omitempty,gte=30,lte=80"`
	Notes         string        `json:"notes" validate:"max=2000"`
	DropoffMethod DropoffMethod `json:"dropoff_method" validate:"omitempty,oneof=meetup pickup ship dropbox"`
	Address       string        `json:"address" validate:"max=500"`
	Lat           *float64      `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng           *float64      `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	IsRush        bool          `json:"is_rush"`
}

func (in CreateRequestInput) Check() error {
	if (in.Lat == nil) != (in.Lng == nil) {
		return apperr.Validation("lat and lng must be given together")
	}
	return nil
}

// UpdateStatusInput is the body of PATCH /requests/:id/status.
type UpdateStatusInput struct {
	Status Status `json:"status" validate:"required"`
}
