package marketplace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/marketplace/mocks"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

const (
	playerID   = "11111111-1111-1111-1111-111111111111"
	stringerID = "22222222-2222-2222-2222-222222222222"
	requestID  = "44444444-4444-4444-4444-444444444444"
)

// 23:30 in New York is already the next UTC day.
var clock = time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("EDT", -4*3600))

type ServiceSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	notify *mocks.MockNotifier
	scope  tally.TestScope
	svc    *marketplace.Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.notify = mocks.NewMockNotifier(s.ctrl)
	s.scope = tally.NewTestScope("", nil)
	s.svc = marketplace.NewService(s.store, s.notify, zap.NewNop(), s.scope,
		marketplace.WithClock(func() time.Time { return clock }))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// fakeCreate plays the store's part of request creation: run admission
// against settings and activeToday, then persist.
func fakeCreate(settings *stringer.Settings, activeToday int) func(context.Context, *marketplace.Request, time.Time, marketplace.AdmitFunc) error {
	return func(_ context.Context, r *marketplace.Request, _ time.Time, admit marketplace.AdmitFunc) error {
		quote, err := admit(settings, activeToday)
		if err != nil {
			return err
		}
		r.ID = requestID
		r.QuotedPriceCents = quote
		r.CreatedAt = clock
		return nil
	}
}

func (s *ServiceSuite) counter(name string) int64 {
	c, ok := s.scope.Snapshot().Counters()[name]
	if !ok {
		return 0
	}
	return c.Value()
}

func (s *ServiceSuite) TestCreateQuotesRush() {
	settings := &stringer.Settings{ID: stringerID, BasePriceCents: 2500, AcceptsRush: true, RushFeeCents: 1000, MaxDailyJobs: 5}
	wantDay := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		rush bool
		want int64
	}{{true, 3500}, {false, 2500}} {
		s.store.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), wantDay, gomock.Any()).
			DoAndReturn(fakeCreate(settings, 0))
		s.notify.EXPECT().RequestCreated(gomock.Any(), gomock.Any()).Return(nil)

		r, err := s.svc.Create(context.Background(), playerID, marketplace.CreateRequestInput{
			StringerID: stringerID,
			IsRush:     tc.rush,
		})
		s.Require().NoError(err)
		s.Equal(tc.want, r.QuotedPriceCents)
		s.Equal(marketplace.StatusRequested, r.Status)
		s.Equal(marketplace.PaymentUnpaid, r.PaymentStatus)
		s.Equal(marketplace.DropoffMeetup, r.DropoffMethod)
		s.Equal(stringerID, *r.StringerID)
	}
	s.Equal(int64(2), s.counter("requests.created+"))
}

func (s *ServiceSuite) TestCreateRejectsAtCapacity() {
	settings := &stringer.Settings{ID: stringerID, BasePriceCents: 2500, MaxDailyJobs: 2}
	s.store.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeCreate(settings, 2))

	_, err := s.svc.Create(context.Background(), playerID, marketplace.CreateRequestInput{StringerID: stringerID})
	s.Equal(apperr.KindConflict, apperr.KindOf(err))
	s.Equal(int64(1), s.counter("requests.rejected+reason=capacity"))
	s.Zero(s.counter("requests.created+"))
}

func (s *ServiceSuite) TestCreateRejectsMissingOrSuspendedSettings() {
	s.store.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperr.NotFound("stringer settings"))
	_, err := s.svc.Create(context.Background(), playerID, marketplace.CreateRequestInput{StringerID: stringerID})
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))

	suspended := &stringer.Settings{ID: stringerID, MaxDailyJobs: 5, Suspended: true}
	s.store.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeCreate(suspended, 0))
	_, err = s.svc.Create(context.Background(), playerID, marketplace.CreateRequestInput{StringerID: stringerID})
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
	s.Equal(int64(2), s.counter("requests.rejected+reason=no_settings"))
}

func (s *ServiceSuite) TestCreateGuards() {
	_, err := s.svc.Create(context.Background(), "", marketplace.CreateRequestInput{StringerID: stringerID})
	s.Equal(apperr.KindUnauthenticated, apperr.KindOf(err))

	_, err = s.svc.Create(context.Background(), stringerID, marketplace.CreateRequestInput{StringerID: stringerID})
	s.Equal(apperr.KindValidation, apperr.KindOf(err))
}

func (s *ServiceSuite) TestCreateSurvivesNotifierFailure() {
	settings := &stringer.Settings{ID: stringerID, BasePriceCents: 2500, MaxDailyJobs: 5}
	s.store.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeCreate(settings, 0))
	s.notify.EXPECT().RequestCreated(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	r, err := s.svc.Create(context.Background(), playerID, marketplace.CreateRequestInput{
		StringerID:    stringerID,
		DropoffMethod: marketplace.DropoffShip,
	})
	s.Require().NoError(err)
	s.Equal(marketplace.DropoffShip, r.DropoffMethod)
}

func request(status marketplace.Status) *marketplace.Request {
	sid := stringerID
	return &marketplace.Request{ID: requestID, PlayerID: playerID, StringerID: &sid, Status: status}
}

func (s *ServiceSuite) TestScenarioCCompleteThenFrozen() {
	ready := request(marketplace.StatusReady)
	completed := request(marketplace.StatusCompleted)

	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(ready, nil)
	s.store.EXPECT().UpdateStatus(gomock.Any(), requestID, marketplace.StatusReady, marketplace.StatusCompleted).
		Return(completed, nil)
	s.notify.EXPECT().StatusChanged(gomock.Any(), completed, marketplace.StatusReady).Return(nil)
	s.notify.EXPECT().ReviewPrompt(gomock.Any(), completed).Return(nil)

	got, err := s.svc.ApplyTransition(context.Background(), stringerID, requestID, marketplace.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(marketplace.StatusCompleted, got.Status)
	s.Equal(int64(1), s.counter("requests.transitions+to=completed"))

	// every later attempt fails without touching the row
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(completed, nil).AnyTimes()
	for _, who := range []string{playerID, stringerID} {
		for _, to := range []marketplace.Status{
			marketplace.StatusRequested, marketplace.StatusAccepted, marketplace.StatusInProgress,
			marketplace.StatusReady, marketplace.StatusCompleted, marketplace.StatusCanceled,
		} {
			_, err := s.svc.ApplyTransition(context.Background(), who, requestID, to)
			s.Error(err, "%s -> %s", who, to)
		}
	}
}

func (s *ServiceSuite) TestTransitionLostRaceIsConflict() {
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusAccepted), nil)
	s.store.EXPECT().UpdateStatus(gomock.Any(), requestID, marketplace.StatusAccepted, marketplace.StatusInProgress).
		Return(nil, apperr.Conflict("request status changed concurrently"))

	_, err := s.svc.ApplyTransition(context.Background(), stringerID, requestID, marketplace.StatusInProgress)
	s.Equal(apperr.KindConflict, apperr.KindOf(err))
}

func (s *ServiceSuite) TestTransitionErrors() {
	_, err := s.svc.ApplyTransition(context.Background(), "", requestID, marketplace.StatusCanceled)
	s.Equal(apperr.KindUnauthenticated, apperr.KindOf(err))

	_, err = s.svc.ApplyTransition(context.Background(), playerID, requestID, "done")
	s.Equal(apperr.KindValidation, apperr.KindOf(err))

	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(nil, apperr.NotFound("request"))
	_, err = s.svc.ApplyTransition(context.Background(), playerID, requestID, marketplace.StatusCanceled)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))

	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusRequested), nil)
	_, err = s.svc.ApplyTransition(context.Background(), playerID, requestID, marketplace.StatusAccepted)
	s.Equal(apperr.KindForbidden, apperr.KindOf(err))
}

func (s *ServiceSuite) TestPlayerCancelNotifiesWithoutReviewPrompt() {
	canceled := request(marketplace.StatusCanceled)
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusAccepted), nil)
	s.store.EXPECT().UpdateStatus(gomock.Any(), requestID, marketplace.StatusAccepted, marketplace.StatusCanceled).
		Return(canceled, nil)
	s.notify.EXPECT().StatusChanged(gomock.Any(), canceled, marketplace.StatusAccepted).Return(errors.New("queue full"))

	got, err := s.svc.ApplyTransition(context.Background(), playerID, requestID, marketplace.StatusCanceled)
	s.Require().NoError(err)
	s.Equal(marketplace.StatusCanceled, got.Status)
}

func (s *ServiceSuite) TestCreateReview() {
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusCompleted), nil)
	s.store.EXPECT().CreateReview(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *marketplace.Review) error {
			s.Equal(stringerID, r.StringerID)
			s.Equal(playerID, r.PlayerID)
			r.ID = "rev-1"
			return nil
		})

	review, err := s.svc.CreateReview(context.Background(), playerID, requestID,
		marketplace.CreateReviewInput{Rating: 5, Comment: "great tension"})
	s.Require().NoError(err)
	s.Equal("rev-1", review.ID)
	s.Equal(5, review.Rating)
}

func (s *ServiceSuite) TestCreateReviewGuards() {
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusCompleted), nil)
	_, err := s.svc.CreateReview(context.Background(), stringerID, requestID, marketplace.CreateReviewInput{Rating: 5})
	s.Equal(apperr.KindForbidden, apperr.KindOf(err))

	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusReady), nil)
	_, err = s.svc.CreateReview(context.Background(), playerID, requestID, marketplace.CreateReviewInput{Rating: 5})
	s.Equal(apperr.KindValidation, apperr.KindOf(err))

	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusCompleted), nil)
	s.store.EXPECT().CreateReview(gomock.Any(), gomock.Any()).Return(apperr.Conflict("review already exists for this request"))
	_, err = s.svc.CreateReview(context.Background(), playerID, requestID, marketplace.CreateReviewInput{Rating: 4})
	s.Equal(apperr.KindConflict, apperr.KindOf(err))
}

func (s *ServiceSuite) TestGetAndListAreScopedToParticipants() {
	s.store.EXPECT().GetRequest(gomock.Any(), requestID).Return(request(marketplace.StatusAccepted), nil)
	_, err := s.svc.Get(context.Background(), "55555555-5555-5555-5555-555555555555", requestID)
	s.Equal(apperr.KindForbidden, apperr.KindOf(err))

	s.store.EXPECT().ListForUser(gomock.Any(), playerID, marketplace.StatusReady).Return([]marketplace.Request{}, nil)
	list, err := s.svc.ListMine(context.Background(), playerID, marketplace.StatusReady)
	s.Require().NoError(err)
	s.Empty(list)

	_, err = s.svc.ListMine(context.Background(), playerID, "nope")
	s.Equal(apperr.KindValidation, apperr.KindOf(err))
}

func TestCapacityDayIsUTC(t *testing.T) {
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), marketplace.CapacityDay(clock))

	noonUTC := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), marketplace.CapacityDay(noonUTC))
}

func TestNotifiersFanOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, b := mocks.NewMockNotifier(ctrl), mocks.NewMockNotifier(ctrl)
	r := request(marketplace.StatusCompleted)

	a.EXPECT().ReviewPrompt(gomock.Any(), r).Return(errors.New("a failed"))
	b.EXPECT().ReviewPrompt(gomock.Any(), r).Return(nil)

	err := marketplace.Notifiers{a, b}.ReviewPrompt(context.Background(), r)
	assert.EqualError(t, err, "a failed")
}
