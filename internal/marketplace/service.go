package marketplace

import (
	"context"
	"errors"
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/utils"
)

//go:generate mockgen -destination=mocks/notifier.go -package=mocks . Notifier

// Notifier is told about request events once they are committed. Failures
// are logged by the caller and never fail the operation.
type Notifier interface {
	RequestCreated(ctx context.Context, r *Request) error
	StatusChanged(ctx context.Context, r *Request, from Status) error
	ReviewPrompt(ctx context.Context, r *Request) error
}

// Notifiers fans an event out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) RequestCreated(ctx context.Context, r *Request) error {
	var errs []error
	for _, n := range ns {
		errs = append(errs, n.RequestCreated(ctx, r))
	}
	return errors.Join(errs...)
}

func (ns Notifiers) StatusChanged(ctx context.Context, r *Request, from Status) error {
	var errs []error
	for _, n := range ns {
		errs = append(errs, n.StatusChanged(ctx, r, from))
	}
	return errors.Join(errs...)
}

func (ns Notifiers) ReviewPrompt(ctx context.Context, r *Request) error {
	var errs []error
	for _, n := range ns {
		errs = append(errs, n.ReviewPrompt(ctx, r))
	}
	return errors.Join(errs...)
}

type Service struct {
	store  Store
	notify Notifier
	log    *zap.Logger
	now    func() time.Time
	scope  tally.Scope
}

type Option func(*Service)

// WithClock replaces time.Now, which decides the current capacity day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, notify Notifier, log *zap.Logger, scope tally.Scope, opts ...Option) *Service {
	s := &Service{
		store:  store,
		notify: notify,
		log:    log,
		now:    time.Now,
		scope:  scope.SubScope("requests"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CapacityDay returns the UTC midnight starting the day t falls on.
func CapacityDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create places a new request from playerID with the stringer named in in.
func (s *Service) Create(ctx context.Context, playerID string, in CreateRequestInput) (*Request, error) {
	if playerID == "" {
		return nil, apperr.Unauthenticated("")
	}
	if in.StringerID == playerID {
		return nil, apperr.Validation("you cannot request your own services")
	}

	stringerID := in.StringerID
	r := &Request{
		PlayerID:      playerID,
		StringerID:    &stringerID,
		Status:        StatusRequested,
		RacquetBrand:  in.RacquetBrand,
		RacquetModel:  in.RacquetModel,
		StringPref:    in.StringPref,
		TensionLbs:    in.TensionLbs,
		Notes:         in.Notes,
		DropoffMethod: in.DropoffMethod,
		Address:       in.Address,
		Lat:           in.Lat,
		Lng:           in.Lng,
		IsRush:        in.IsRush,
		PaymentStatus: PaymentUnpaid,
	}
	if r.DropoffMethod == "" {
		r.DropoffMethod = DropoffMeetup
	}

	if err := s.store.CreateRequest(ctx, r, CapacityDay(s.now()), Admit(in.IsRush)); err != nil {
		s.reject(err)
		return nil, err
	}
	s.scope.Counter("created").Inc(1)
	s.log.Info("request created",
		zap.String("request_id", r.ID),
		zap.String("player_id", playerID),
		zap.String("stringer_id", stringerID),
		zap.Int64("quoted_price_cents", r.QuotedPriceCents),
		zap.Bool("is_rush", r.IsRush),
	)

	if err := s.notify.RequestCreated(ctx, r); err != nil {
		s.log.Warn("request created notification failed", zap.String("request_id", r.ID), zap.Error(err))
	}
	return r, nil
}

func (s *Service) reject(err error) {
	reason := "error"
	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		reason = "capacity"
	case apperr.KindNotFound:
		reason = "no_settings"
	case apperr.KindValidation:
		reason = "validation"
	}
	s.scope.Tagged(map[string]string{"reason": reason}).Counter("rejected").Inc(1)
}

// ApplyTransition moves a request to status to on behalf of userID.
func (s *Service) ApplyTransition(ctx context.Context, userID, requestID string, to Status) (*Request, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	if !to.Valid() {
		return nil, apperr.Validation("unknown status %q", to).With("allowed_statuses", allStatuses())
	}

	current, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(current, userID, to); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateStatus(ctx, requestID, current.Status, to)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.log.Info("lost status race",
				zap.String("request_id", requestID),
				zap.String("from", string(current.Status)),
				zap.String("to", string(to)),
			)
		}
		return nil, err
	}
	s.scope.Tagged(map[string]string{"to": string(to)}).Counter("transitions").Inc(1)
	s.log.Info("request status changed",
		zap.String("request_id", requestID),
		zap.String("by", userID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
	)

	if err := s.notify.StatusChanged(ctx, updated, current.Status); err != nil {
		s.log.Warn("status notification failed", zap.String("request_id", requestID), zap.Error(err))
	}
	if to == StatusCompleted {
		if err := s.notify.ReviewPrompt(ctx, updated); err != nil {
			s.log.Warn("review prompt failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}
	return updated, nil
}

// Get returns a request to one of its participants.
func (s *Service) Get(ctx context.Context, userID, requestID string) (*Request, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !r.IsPlayer(userID) && !r.IsStringer(userID) {
		return nil, apperr.Forbidden("you are not a participant in this request")
	}
	return r, nil
}

// ListMine returns the requests userID placed or was assigned, newest first.
func (s *Service) ListMine(ctx context.Context, userID string, status Status) ([]Request, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("unknown status %q", status)
	}
	return s.store.ListForUser(ctx, userID, status)
}

// CreateReview records the player's rating of a completed request.
func (s *Service) CreateReview(ctx context.Context, userID, requestID string, in CreateReviewInput) (*Review, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !r.IsPlayer(userID) {
		return nil, apperr.Forbidden("only the player who placed the request can review it")
	}
	if r.Status != StatusCompleted || r.StringerID == nil {
		return nil, apperr.Validation("can only review completed requests").With("request_status", r.Status)
	}

	review := &Review{
		RequestID:  r.ID,
		PlayerID:   userID,
		StringerID: *r.StringerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	s.scope.Counter("reviews").Inc(1)
	s.log.Info("review created", zap.String("request_id", r.ID), zap.Int("rating", in.Rating))
	return review, nil
}

// RequestReview returns the review of a request to one of its participants.
func (s *Service) RequestReview(ctx context.Context, userID, requestID string) (*ReviewWithDetails, error) {
	if _, err := s.Get(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return s.store.GetReviewForRequest(ctx, requestID)
}

// StringerReviews returns a page of a stringer's reviews with its summary.
func (s *Service) StringerReviews(ctx context.Context, stringerID string, page utils.Page) (*RatingSummary, []ReviewWithDetails, error) {
	summary, err := s.store.RatingSummary(ctx, stringerID)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.store.ListReviews(ctx, stringerID, page)
	if err != nil {
		return nil, nil, err
	}
	return summary, reviews, nil
}
