package alerts

import "time"

// QueueNotifications is the asynq queue every notification task goes to.
const QueueNotifications = "notifications"

// Task type constants
const (
	TaskRequestCreated       = "request:created"
	TaskRequestStatusChanged = "request:status_changed"
	TaskReviewPrompt         = "request:review_prompt"
	TaskMessageNew           = "message:new"
	TaskPasswordReset        = "auth:password_reset"
)

// NoticePayload is an in-app notification for one user, mirrored by email.
type NoticePayload struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Reference string    `json:"reference,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// Password reset payload, email only
type PasswordResetPayload struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ResetURL  string    `json:"reset_url"`
	Requested time.Time `json:"requested"`
}

// Notification is a row of the caller's in-app inbox.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Reference *string    `json:"reference"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}
