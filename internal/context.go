package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// AuthUser is the resolved identity of the caller, placed in the request
// context by the auth middleware. Services never read it themselves; the
// handler layer extracts it and passes explicit user IDs down.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	if ctx == nil {
		return nil, false
	}
	if u, ok := ctx.Value(ContextUserKey).(*AuthUser); ok && u != nil {
		return u, true
	}
	return nil, false
}

func ContextWithUser(ctx context.Context, u *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
