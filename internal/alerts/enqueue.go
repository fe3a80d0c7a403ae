package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/messaging"
)

const maxRetry = 5

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher turns domain events into notification tasks.
type Dispatcher struct {
	q      Enqueuer
	appURL string
	log    *zap.Logger
	now    func() time.Time
}

func NewDispatcher(q Enqueuer, appURL string, log *zap.Logger) *Dispatcher {
	return &Dispatcher{q: q, appURL: appURL, log: log, now: time.Now}
}

func (d *Dispatcher) enqueue(ctx context.Context, taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	info, err := d.q.EnqueueContext(ctx, asynq.NewTask(taskType, b),
		asynq.Queue(QueueNotifications), asynq.MaxRetry(maxRetry))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	d.log.Debug("task enqueued", zap.String("type", taskType), zap.String("task_id", info.ID))
	return nil
}

func (d *Dispatcher) notice(ctx context.Context, taskType, userID, title, body, reference string) error {
	return d.enqueue(ctx, taskType, NoticePayload{
		UserID:    userID,
		Type:      taskType,
		Title:     title,
		Body:      body,
		Reference: reference,
		SentAt:    d.now(),
	})
}

func (d *Dispatcher) requestURL(id string) string {
	return d.appURL + "/requests/" + id
}

// RequestCreated tells the stringer about a new request.
func (d *Dispatcher) RequestCreated(ctx context.Context, r *marketplace.Request) error {
	if r.StringerID == nil {
		return nil
	}
	racquet := describeRacquet(r)
	body := fmt.Sprintf("New request for %s, quoted at %s.", racquet, formatCents(r.QuotedPriceCents))
	if r.IsRush {
		body += " Rush job."
	}
	body += "\n\nOpen it: " + d.requestURL(r.ID)
	return d.notice(ctx, TaskRequestCreated, *r.StringerID, "New restring request", body, r.ID)
}

// StatusChanged tells the participant who did not make the change. Only the
// player cancels, every other move is the stringer's.
func (d *Dispatcher) StatusChanged(ctx context.Context, r *marketplace.Request, from marketplace.Status) error {
	recipient := r.PlayerID
	if r.Status == marketplace.StatusCanceled {
		if r.StringerID == nil {
			return nil
		}
		recipient = *r.StringerID
	}
	title := "Your request is " + statusLabel(r.Status)
	body := fmt.Sprintf("Request for %s moved from %s to %s.\n\nOpen it: %s",
		describeRacquet(r), statusLabel(from), statusLabel(r.Status), d.requestURL(r.ID))
	return d.notice(ctx, TaskRequestStatusChanged, recipient, title, body, r.ID)
}

// ReviewPrompt asks the player to rate a completed request.
func (d *Dispatcher) ReviewPrompt(ctx context.Context, r *marketplace.Request) error {
	body := fmt.Sprintf("Your request for %s is complete. How did the stringing turn out?\n\nLeave a review: %s/review",
		describeRacquet(r), d.requestURL(r.ID))
	return d.notice(ctx, TaskReviewPrompt, r.PlayerID, "Rate your restring", body, r.ID)
}

// MessageSent tells recipientID about a new message on a request thread.
func (d *Dispatcher) MessageSent(ctx context.Context, r *marketplace.Request, m *messaging.Message, recipientID string) error {
	body := truncate(m.Body, 200) + "\n\nReply: " + d.requestURL(r.ID)
	return d.notice(ctx, TaskMessageNew, recipientID, "New message on your request", body, r.ID)
}

// PasswordReset emails a reset link carrying token.
func (d *Dispatcher) PasswordReset(ctx context.Context, userID, email, name, token string) error {
	return d.enqueue(ctx, TaskPasswordReset, PasswordResetPayload{
		UserID:    userID,
		Email:     email,
		Name:      name,
		ResetURL:  d.appURL + "/reset-password?token=" + token,
		Requested: d.now(),
	})
}

func describeRacquet(r *marketplace.Request) string {
	switch {
	case r.RacquetBrand != "" && r.RacquetModel != "":
		return r.RacquetBrand + " " + r.RacquetModel
	case r.RacquetBrand != "":
		return r.RacquetBrand
	default:
		return "a racquet"
	}
}

func statusLabel(s marketplace.Status) string {
	if s == marketplace.StatusInProgress {
		return "in progress"
	}
	return string(s)
}

func formatCents(c int64) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
