package model

import (
	"context"
	"time"

	"lodge/infras/jwt"
	"lodge/shared/constant"
	sharedModel "lodge/shared/model"
)

// Session is the caller identity decoded from the bearer token.
type Session struct {
	Subject   string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}

func NewSession(token string, claims *jwt.Claims) Session {
	s := Session{
		Subject:  claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
		Token:    token,
	}

	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}

	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}

	if s.Username == constant.Empty {
		s.Username = s.Subject
	}

	return s
}

// IsValid reports whether the session has a role and has not expired at now.
func (s Session) IsValid(now time.Time) bool {
	return s.Token != constant.Empty && s.Role != constant.Empty && now.Before(s.ExpiresAt)
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if r == s.Role {
			return true
		}
	}

	return false
}

// WithSession stores the session and the values older handlers read by key.
func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeySession, s)
	ctx = context.WithValue(ctx, constant.ContextKeyToken, s.Token)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, s.Subject)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, s.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, s.Role)

	return ctx
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(constant.ContextKeySession).(Session)

	return s, ok
}

// Profile is the account of the logged-in user as the upstream reports it.
type Profile struct {
	ID          sharedModel.FlexString `json:"id"`
	Name        string                 `json:"name"`
	Username    string                 `json:"username"`
	Email       string                 `json:"email"`
	PhoneNumber string                 `json:"phoneNumber"`
	Role        string                 `json:"role"`
}
