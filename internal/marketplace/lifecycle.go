package marketplace

import (
	"slices"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

var transitions = map[Status][]Status{
	StatusRequested:  {StatusAccepted, StatusCanceled},
	StatusAccepted:   {StatusInProgress, StatusCanceled},
	StatusInProgress: {StatusReady, StatusCanceled},
	StatusReady:      {StatusCompleted},
	StatusCompleted:  {},
	StatusCanceled:   {},
}

// stringerTargets are the states only the assigned stringer may move a
// request into. The player may only cancel.
var stringerTargets = []Status{StatusAccepted, StatusInProgress, StatusReady, StatusCompleted}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// NextStatuses returns the legal successors of s, empty for terminal or
// unknown states.
func NextStatuses(s Status) []Status {
	return append([]Status{}, transitions[s]...)
}

// AllowedTransitions narrows NextStatuses(r.Status) to the moves userID may
// make: a player sees at most canceled, the assigned stringer sees the
// forward steps, anyone else sees nothing.
func AllowedTransitions(r *Request, userID string) []Status {
	out := []Status{}
	for _, to := range transitions[r.Status] {
		switch {
		case r.IsPlayer(userID) && to == StatusCanceled:
			out = append(out, to)
		case r.IsStringer(userID) && slices.Contains(stringerTargets, to):
			out = append(out, to)
		}
	}
	return out
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// CheckTransition decides whether userID may move r to status to. Permission
// is checked before legality, so a player asking for anything other than a
// cancellation is always forbidden.
func CheckTransition(r *Request, userID string, to Status) error {
	if userID == "" {
		return apperr.Unauthenticated("")
	}
	if !to.Valid() {
		return apperr.Validation("unknown status %q", to).With("allowed_statuses", allStatuses())
	}

	switch {
	case r.IsPlayer(userID):
		if to != StatusCanceled {
			return apperr.Forbidden("players can only cancel a request")
		}
	case r.IsStringer(userID):
		if !slices.Contains(stringerTargets, to) {
			return apperr.Forbidden("stringers cannot move a request to %s", to)
		}
	default:
		return apperr.Forbidden("you are not a participant in this request")
	}

	if !CanTransition(r.Status, to) {
		return apperr.New(apperr.KindInvalidTransition, "cannot move request from %s to %s", r.Status, to).
			With("current_status", r.Status).
			With("valid_transitions", NextStatuses(r.Status))
	}
	return nil
}

func allStatuses() []Status {
	return []Status{StatusRequested, StatusAccepted, StatusInProgress, StatusReady, StatusCompleted, StatusCanceled}
}
