package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"lodge/config"
	"lodge/infras/jwt"
	otelMocks "lodge/infras/otel/mocks"
	"lodge/infras/upstream/upstreamtest"
	"lodge/internal/domains/auth/model"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, role string, exp time.Time) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":      "7",
		"username": "ada",
		"role":     role,
		"iat":      now.Add(-time.Minute).Unix(),
		"exp":      exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)

	return token
}

func newService(t *testing.T) (*upstreamtest.Server, service.Auth) {
	t.Helper()

	srv, client := upstreamtest.New(t)

	return srv, service.New(client, jwt.New(), timezone.NewFixedClock(now), &config.Config{}, otelMocks.NewOtel())
}

func TestLogin(t *testing.T) {
	srv, svc := newService(t)

	token := sign(t, "ROLE_RECEPTIONIST", now.Add(time.Hour))
	srv.Router.Post("/auth/login", upstreamtest.Reply(http.StatusOK, map[string]any{
		"authenticationResponse": map[string]string{"token": token, "role": "RECEPTIONIST"},
	}))

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ada@lodge.test", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, token, res.Token)
	assert.Equal(t, "RECEPTIONIST", res.Role)
	assert.Equal(t, "ada", res.Username)
	assert.True(t, res.ExpiresAt.Equal(now.Add(time.Hour)))

	var body map[string]string
	require.NoError(t, json.Unmarshal(srv.Calls()[0].Body, &body))
	assert.Equal(t, "ada@lodge.test", body["email"])
}

func TestLogin_Rejected(t *testing.T) {
	srv, svc := newService(t)
	srv.Router.Post("/auth/login", upstreamtest.Reply(http.StatusUnauthorized, map[string]string{"message": "bad credentials"}))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ada@lodge.test", Password: "wrong"})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestLogin_ExpiredTokenFromUpstream(t *testing.T) {
	srv, svc := newService(t)
	srv.Router.Post("/auth/login", upstreamtest.Reply(http.StatusOK, map[string]any{
		"authenticationResponse": map[string]string{"token": sign(t, "USER", now.Add(-time.Second))},
	}))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ada@lodge.test", Password: "secret"})

	assert.ErrorIs(t, err, failure.ErrFetchFailed)
}

func TestAuthenticate(t *testing.T) {
	_, svc := newService(t)

	session, err := svc.Authenticate(sign(t, "admin", now.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", session.Role)

	_, err = svc.Authenticate(sign(t, "admin", now))
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = svc.Authenticate("not-a-token")
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestRegister(t *testing.T) {
	srv, svc := newService(t)
	srv.Router.Post("/auth/register", upstreamtest.Reply(http.StatusConflict, map[string]string{"message": "email taken"}))

	err := svc.Register(context.Background(), dto.RegisterRequest{Name: "Ada", Email: "ada@lodge.test", PhoneNumber: "0812", Password: "secret-pass"})

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestProfile_ForwardsCallerToken(t *testing.T) {
	srv, svc := newService(t)
	srv.Router.Get("/auth/profile", upstreamtest.Reply(http.StatusOK, map[string]any{
		"id": 7, "name": "Ada", "email": "ada@lodge.test", "phoneNumber": "0812", "role": "ROLE_USER",
	}))

	ctx := model.WithSession(context.Background(), model.Session{Token: "caller-token", Role: "USER"})

	res, err := svc.Profile(ctx)
	require.NoError(t, err)

	assert.Equal(t, dto.ProfileResponse{ID: "7", Name: "Ada", Email: "ada@lodge.test", PhoneNumber: "0812", Role: "USER"}, res)
	assert.Equal(t, "Bearer caller-token", srv.Calls()[0].Token)

	_, err = svc.Profile(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestUpdateProfile(t *testing.T) {
	srv, svc := newService(t)
	srv.Router.Get("/auth/profile", upstreamtest.Reply(http.StatusOK, map[string]any{
		"id": 7, "name": "Ada", "email": "ada@lodge.test", "phoneNumber": "0812", "role": "USER",
	}))
	srv.Router.Put("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		upstreamtest.JSON(w, http.StatusOK, body)
	})

	ctx := model.WithSession(context.Background(), model.Session{Token: "caller-token", Role: "USER"})
	phone := "0899"

	res, err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{PhoneNumber: &phone})
	require.NoError(t, err)

	assert.Equal(t, "0899", res.PhoneNumber)
	assert.Equal(t, "Ada", res.Name)

	_, err = svc.UpdateProfile(ctx, dto.UpdateProfileRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
