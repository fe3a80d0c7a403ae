package marketplace

import (
	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

// QuotePrice is the base price plus the rush fee when rush was asked for and
// the stringer takes rush jobs.
func QuotePrice(s *stringer.Settings, isRush bool) int64 {
	price := s.BasePriceCents
	if isRush && s.AcceptsRush {
		price += s.RushFeeCents
	}
	return price
}

// CheckCapacity rejects a new request once the stringer has as many active
// requests created today as max_daily_jobs allows.
func CheckCapacity(s *stringer.Settings, activeToday int) error {
	if activeToday >= s.MaxDailyJobs {
		return apperr.Conflict("stringer has reached their daily capacity").
			With("max_daily_jobs", s.MaxDailyJobs).
			With("active_today", activeToday)
	}
	return nil
}

// Admit is run by the store against the locked settings row of the stringer.
// It returns the quoted price of the new request.
func Admit(isRush bool) AdmitFunc {
	return func(s *stringer.Settings, activeToday int) (int64, error) {
		if s.Suspended {
			return 0, apperr.NotFound("stringer settings")
		}
		if err := CheckCapacity(s, activeToday); err != nil {
			return 0, err
		}
		return QuotePrice(s, isRush), nil
	}
}
