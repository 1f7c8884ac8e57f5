package dto

import (
	"strings"
	"time"

	"lodge/infras/jwt"
	"lodge/internal/domains/auth/model"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// UpstreamLoginResponse is the body of POST /auth/login.
type UpstreamLoginResponse struct {
	AuthenticationResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	} `json:"authenticationResponse"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (l *LoginResponse) FromSession(s model.Session, upstreamRole string) {
	l.Token = s.Token
	l.Username = s.Username
	l.ExpiresAt = s.ExpiresAt

	l.Role = s.Role
	if l.Role == "" {
		l.Role = jwt.NormalizeRole(upstreamRole)
	}
}

type RegisterRequest struct {
	Name        string `json:"name"         validate:"required,min=2,max=100"`
	Email       string `json:"email"        validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
}

// UpstreamRegisterRequest is the body of POST /auth/register.
type UpstreamRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (r RegisterRequest) ToUpstream() UpstreamRegisterRequest {
	return UpstreamRegisterRequest{
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Password:    r.Password,
	}
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
}

// IsEmpty reports whether the request changes nothing.
func (u UpdateProfileRequest) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.PhoneNumber == nil
}

// ToUpstream merges the changes onto the current profile, since the upstream expects a full body.
func (u UpdateProfileRequest) ToUpstream(current model.Profile) model.Profile {
	if u.Name != nil {
		current.Name = strings.TrimSpace(*u.Name)
	}

	if u.Email != nil {
		current.Email = strings.ToLower(strings.TrimSpace(*u.Email))
	}

	if u.PhoneNumber != nil {
		current.PhoneNumber = strings.TrimSpace(*u.PhoneNumber)
	}

	return current
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

func (p *ProfileResponse) FromModel(m model.Profile) {
	p.ID = m.ID.String()
	p.Name = m.Name
	p.Username = m.Username
	p.Email = m.Email
	p.PhoneNumber = m.PhoneNumber
	p.Role = jwt.NormalizeRole(m.Role)
}
