package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker handles notification tasks: it fills the in-app inbox and sends the
// matching email.
type Worker struct {
	store Store
	mail  Mailer
	log   *zap.Logger
}

func NewWorker(store Store, mail Mailer, log *zap.Logger) *Worker {
	return &Worker{store: store, mail: mail, log: log}
}

// Mux routes every notification task type to its handler.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	for _, t := range []string{TaskRequestCreated, TaskRequestStatusChanged, TaskReviewPrompt, TaskMessageNew} {
		mux.HandleFunc(t, w.HandleNotice)
	}
	mux.HandleFunc(TaskPasswordReset, w.HandlePasswordReset)
	return mux
}

// NewServer builds the asynq server consuming the notifications queue.
func NewServer(redis asynq.RedisConnOpt, concurrency int, log *zap.Logger) *asynq.Server {
	return asynq.NewServer(redis, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueNotifications: 1},
		Logger:      log.Named("asynq").Sugar(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Warn("notification task failed",
				zap.String("type", t.Type()),
				zap.Int("retried", retried),
				zap.Int("max_retry", maxRetry),
				zap.Error(err),
			)
		}),
	})
}

func decode(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}

// HandleNotice stores the notification, then emails it. The insert is keyed
// by task id so a retry after a mail failure does not duplicate the inbox row.
func (w *Worker) HandleNotice(ctx context.Context, t *asynq.Task) error {
	var p NoticePayload
	if err := decode(t, &p); err != nil {
		return err
	}

	n := &Notification{UserID: p.UserID, Type: p.Type, Title: p.Title, Body: p.Body}
	if p.Reference != "" {
		ref := p.Reference
		n.Reference = &ref
	}
	taskID, _ := asynq.GetTaskID(ctx)
	if err := w.store.Insert(ctx, n, taskID); err != nil {
		return err
	}

	email, _, err := w.store.Recipient(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := w.mail.Send(ctx, email, p.Title, p.Body); err != nil {
		w.log.Error("notification email failed", zap.String("type", p.Type), zap.String("user_id", p.UserID), zap.Error(err))
		return err
	}
	w.log.Info("notification sent", zap.String("type", p.Type), zap.String("user_id", p.UserID))
	return nil
}

func (w *Worker) HandlePasswordReset(ctx context.Context, t *asynq.Task) error {
	var p PasswordResetPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	name := p.Name
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf("Hello %s,\n\nWe received a request to reset your Stringr password.\n\n"+
		"To proceed, open the link below:\n%s\n\nIf you did not request this, no action is required.",
		name, p.ResetURL)
	if err := w.mail.Send(ctx, p.Email, "Password reset instructions", body); err != nil {
		w.log.Error("password reset email failed", zap.String("user_id", p.UserID), zap.Error(err))
		return err
	}
	w.log.Info("password reset sent", zap.String("user_id", p.UserID))
	return nil
}
