// Package session carries the verified caller identity through a request.
package session

import "context"

const RoleAdmin = "admin"

// Session is the identity the identity provider vouched for.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or the zero (anonymous) session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(contextKey{}).(Session)
	return s
}
