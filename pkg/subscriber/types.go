package subscriber

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrDuplicateEmail = errors.New("email already subscribed")
	ErrNotFound       = errors.New("email not found")
)

// Subscriber is one row of the subscribers table.
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	// Verified is reserved; nothing sets it yet.
	Verified bool `json:"verified"`
}

// Store is the subscriber persistence contract used by the HTTP layer.
type Store interface {
	Add(ctx context.Context, email string) (Subscriber, error)
	Remove(ctx context.Context, email string) error
	List(ctx context.Context) ([]Subscriber, error)
	Emails(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// NormalizeEmail trims surrounding whitespace and rejects strings without '@'.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// EmailsOf projects subscribers onto their addresses.
func EmailsOf(subs []Subscriber) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Email)
	}
	return out
}
