package collect

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle of one stage attempt.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notification is one progress event from the collection pipeline. It is
// transient: consumers observe a stream via the onProgress callback, nothing
// is stored.
type Notification struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// ProgressFunc receives pipeline notifications. It may be invoked at any
// adapter-call suspension point; at least two events arrive per stage (one
// loading, one success or error).
type ProgressFunc func(Notification)

func newNotification(stage, message string, status Status, now time.Time, details string) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Stage:     stage,
		Message:   message,
		Status:    status,
		Timestamp: now,
		Details:   details,
	}
}
