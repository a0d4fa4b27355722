package plugin

import (
	"context"
	"net/http"
)

// Session is the per visitor store behind the admin login and the math challenge. *scs.Session satisfies it.
type Session interface {
	GetString(key string) (string, error)
	PutString(w http.ResponseWriter, key string, val string) error
	GetBool(key string) (bool, error)
	PutBool(w http.ResponseWriter, key string, val bool) error
	Remove(w http.ResponseWriter, key string) error
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by WithSession.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
