package alerts_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/alerts"
	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/messaging"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

const (
	playerID   = "11111111-1111-1111-1111-111111111111"
	stringerID = "22222222-2222-2222-2222-222222222222"
	requestID  = "44444444-4444-4444-4444-444444444444"
)

type enqueued struct {
	task  *asynq.Task
	queue string
}

type fakeQueue struct {
	tasks []enqueued
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	e := enqueued{task: task}
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			e.queue = o.Value().(string)
		}
	}
	q.tasks = append(q.tasks, e)
	return &asynq.TaskInfo{ID: "task-1", Queue: e.queue, Type: task.Type()}, nil
}

func (q *fakeQueue) notice(t *testing.T, i int) alerts.NoticePayload {
	t.Helper()
	require.Greater(t, len(q.tasks), i)
	var p alerts.NoticePayload
	require.NoError(t, json.Unmarshal(q.tasks[i].task.Payload(), &p))
	return p
}

func request(status marketplace.Status) *marketplace.Request {
	sid := stringerID
	return &marketplace.Request{
		ID: requestID, PlayerID: playerID, StringerID: &sid, Status: status,
		RacquetBrand: "Wilson", RacquetModel: "Pro Staff", QuotedPriceCents: 3500, IsRush: true,
	}
}

func TestDispatcherRoutesToTheOtherParticipant(t *testing.T) {
	q := &fakeQueue{}
	d := alerts.NewDispatcher(q, "https://stringr.test", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, d.RequestCreated(ctx, request(marketplace.StatusRequested)))
	require.NoError(t, d.StatusChanged(ctx, request(marketplace.StatusAccepted), marketplace.StatusRequested))
	require.NoError(t, d.StatusChanged(ctx, request(marketplace.StatusCanceled), marketplace.StatusAccepted))
	require.NoError(t, d.ReviewPrompt(ctx, request(marketplace.StatusCompleted)))
	require.NoError(t, d.MessageSent(ctx, request(marketplace.StatusAccepted),
		&messaging.Message{Body: strings.Repeat("x", 300)}, stringerID))

	want := []struct {
		typ, user string
	}{
		{alerts.TaskRequestCreated, stringerID},
		{alerts.TaskRequestStatusChanged, playerID},
		{alerts.TaskRequestStatusChanged, stringerID},
		{alerts.TaskReviewPrompt, playerID},
		{alerts.TaskMessageNew, stringerID},
	}
	require.Len(t, q.tasks, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, q.tasks[i].task.Type())
		assert.Equal(t, alerts.QueueNotifications, q.tasks[i].queue)
		p := q.notice(t, i)
		assert.Equal(t, w.user, p.UserID, w.typ)
		assert.Equal(t, requestID, p.Reference)
	}

	created := q.notice(t, 0)
	assert.Contains(t, created.Body, "Wilson Pro Staff")
	assert.Contains(t, created.Body, "$35.00")
	assert.Contains(t, created.Body, "Rush job.")
	assert.Contains(t, created.Body, "https://stringr.test/requests/"+requestID)

	assert.Equal(t, "Your request is accepted", q.notice(t, 1).Title)
	assert.Contains(t, q.notice(t, 3).Body, "/requests/"+requestID+"/review")
	assert.Less(t, len(q.notice(t, 4).Body), 300)
}

func TestDispatcherPasswordReset(t *testing.T) {
	q := &fakeQueue{}
	d := alerts.NewDispatcher(q, "https://stringr.test", zap.NewNop())

	require.NoError(t, d.PasswordReset(context.Background(), playerID, "p@example.com", "Pat", "tok"))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, alerts.TaskPasswordReset, q.tasks[0].task.Type())

	var p alerts.PasswordResetPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].task.Payload(), &p))
	assert.Equal(t, "https://stringr.test/reset-password?token=tok", p.ResetURL)
	assert.Equal(t, "p@example.com", p.Email)
}

func TestDispatcherSurfacesQueueErrors(t *testing.T) {
	d := alerts.NewDispatcher(&fakeQueue{err: errors.New("redis: connection refused")}, "", zap.NewNop())
	err := d.ReviewPrompt(context.Background(), request(marketplace.StatusCompleted))
	assert.ErrorContains(t, err, "connection refused")
}

type memStore struct {
	inserted []alerts.Notification
	emails   map[string]string
	list     []alerts.Notification
	page     utils.Page
	read     map[string]bool
}

func (s *memStore) Insert(_ context.Context, n *alerts.Notification, _ string) error {
	s.inserted = append(s.inserted, *n)
	return nil
}

func (s *memStore) Recipient(_ context.Context, userID string) (string, string, error) {
	email, ok := s.emails[userID]
	if !ok {
		return "", "", apperr.NotFound("user")
	}
	return email, "", nil
}

func (s *memStore) List(_ context.Context, _ string, page utils.Page) ([]alerts.Notification, error) {
	s.page = page
	return s.list, nil
}

func (s *memStore) MarkRead(_ context.Context, id, _ string) error {
	if s.read[id] {
		return apperr.NotFound("unread notification")
	}
	s.read[id] = true
	return nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func noticeTask(t *testing.T, p alerts.NoticePayload) *asynq.Task {
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(p.Type, b)
}

func TestWorkerHandleNotice(t *testing.T) {
	store := &memStore{emails: map[string]string{playerID: "pat@example.com"}}
	mail := &fakeMailer{}
	w := alerts.NewWorker(store, mail, zap.NewNop())

	task := noticeTask(t, alerts.NoticePayload{
		UserID: playerID, Type: alerts.TaskReviewPrompt, Title: "Rate your restring", Body: "how was it", Reference: requestID,
	})
	require.NoError(t, w.HandleNotice(context.Background(), task))

	require.Len(t, store.inserted, 1)
	assert.Equal(t, alerts.TaskReviewPrompt, store.inserted[0].Type)
	require.NotNil(t, store.inserted[0].Reference)
	assert.Equal(t, requestID, *store.inserted[0].Reference)
	assert.Equal(t, []sentMail{{"pat@example.com", "Rate your restring", "how was it"}}, mail.sent)
}

func TestWorkerFailures(t *testing.T) {
	store := &memStore{emails: map[string]string{playerID: "pat@example.com"}}
	w := alerts.NewWorker(store, &fakeMailer{err: errors.New("smtp down")}, zap.NewNop())

	task := noticeTask(t, alerts.NoticePayload{UserID: playerID, Type: alerts.TaskMessageNew, Title: "t"})
	assert.Error(t, w.HandleNotice(context.Background(), task), "mail failures are retried")
	assert.Len(t, store.inserted, 1, "inbox row written before the email")

	err := w.HandleNotice(context.Background(), asynq.NewTask(alerts.TaskMessageNew, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = w.HandlePasswordReset(context.Background(), asynq.NewTask(alerts.TaskPasswordReset, []byte("[")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestWorkerPasswordReset(t *testing.T) {
	mail := &fakeMailer{}
	w := alerts.NewWorker(&memStore{}, mail, zap.NewNop())

	b, err := json.Marshal(alerts.PasswordResetPayload{UserID: playerID, Email: "pat@example.com", ResetURL: "https://x/reset?token=t"})
	require.NoError(t, err)
	require.NoError(t, w.HandlePasswordReset(context.Background(), asynq.NewTask(alerts.TaskPasswordReset, b)))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "pat@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].body, "Hello there")
	assert.Contains(t, mail.sent[0].body, "https://x/reset?token=t")
}

func TestPlunkMailer(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		if got["to"] == "bounce@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"invalid recipient"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := alerts.NewPlunkMailer("sk_test", "hello@stringr.test", srv.URL, srv.Client())
	require.NoError(t, m.Send(context.Background(), "pat@example.com", "Hi", "body"))
	assert.Equal(t, map[string]string{"to": "pat@example.com", "subject": "Hi", "body": "body", "from": "hello@stringr.test"}, got)

	err := m.Send(context.Background(), "bounce@example.com", "Hi", "body")
	assert.ErrorContains(t, err, "status=422")
	assert.ErrorContains(t, err, "invalid recipient")
}

func TestNewMailerFallsBackToLog(t *testing.T) {
	m := alerts.NewMailer(alerts.MailConfig{}, zap.NewNop())
	assert.IsType(t, alerts.LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), "a@b.c", "s", "b"))

	m = alerts.NewMailer(alerts.MailConfig{PlunkAPIKey: "k"}, zap.NewNop())
	assert.IsType(t, &alerts.PlunkMailer{}, m)
}

func TestNotificationHandlers(t *testing.T) {
	store := &memStore{read: map[string]bool{}, list: []alerts.Notification{{ID: "n1", Type: alerts.TaskMessageNew, Title: "t"}}}
	h := alerts.NewHandler(store)
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zap.NewNop())
	asUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid := c.Request().Header.Get("X-Test-User"); uid != "" {
				c.Set(middleware.KeyUserID, uid)
			}
			return next(c)
		}
	}
	e.GET("/notifications", h.ListNotifications, asUser)
	e.POST("/notifications/:id/read", h.MarkNotificationRead, asUser)

	do := func(method, target, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/notifications?page=2", playerID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"n1"`)
	assert.Equal(t, utils.Page{Page: 2, Limit: 20}, store.page)

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/notifications", "").Code)

	nid := "66666666-6666-6666-6666-666666666666"
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/notifications/"+nid+"/read", playerID).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/notifications/"+nid+"/read", playerID).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/notifications/nope/read", playerID).Code)
}
