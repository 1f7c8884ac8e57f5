package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"net/http"

	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/otel"
	"lodge/infras/upstream"
	"lodge/internal/domains/auth/model"
	"lodge/internal/domains/auth/model/dto"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathProfile  = "/auth/profile"
)

// Auth forwards account operations to the upstream. Tokens are never issued here.
type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	Profile(ctx context.Context) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.ProfileResponse, error)
	Authenticate(token string) (model.Session, error)
}

type serviceImpl struct {
	client     upstream.Client
	jwtService jwt.JWT
	clock      timezone.Clock
	cfg        *config.Config
	otel       otel.Otel
}

func New(client upstream.Client, jwt jwt.JWT, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		client:     client,
		jwtService: jwt,
		clock:      clock,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	var body dto.UpstreamLoginResponse

	err = s.client.Do(ctx, http.MethodPost, pathLogin, nil, req, &body)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("login rejected by upstream")

		if upstream.StatusCode(err) == http.StatusUnauthorized || upstream.StatusCode(err) == http.StatusForbidden {
			return res, failure.BadRequestFromString("invalid email or password") //nolint:wrapcheck
		}

		return res, upstream.ToFailure(err, "login failed") //nolint:wrapcheck
	}

	token := body.AuthenticationResponse.Token
	if token == constant.Empty {
		return res, failure.FetchFailed("login response carried no token", nil) //nolint:wrapcheck
	}

	session, err := s.Authenticate(token)
	if err != nil {
		log.Error().Err(err).Msg("upstream issued an unreadable token")

		return res, failure.FetchFailed("login response carried an unreadable token", err) //nolint:wrapcheck
	}

	res.FromSession(session, body.AuthenticationResponse.Role)

	return res, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.client.Do(ctx, http.MethodPost, pathRegister, nil, req.ToUpstream(), nil)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register")

		return upstream.ToFailure(err, "registration failed") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Profile(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	profile, err := s.profile(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(profile)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	current, err := s.profile(ctx)
	if err != nil {
		return res, err
	}

	var updated model.Profile

	err = s.client.Do(ctx, http.MethodPut, pathProfile, nil, req.ToUpstream(current), &updated)
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, upstream.ToFailure(err, "failed to update profile") //nolint:wrapcheck
	}

	if updated.Email == constant.Empty {
		updated = req.ToUpstream(current)
	}

	res.FromModel(updated)

	return res, nil
}

// Authenticate decodes a bearer token into a session valid at the current time.
func (s *serviceImpl) Authenticate(token string) (model.Session, error) {
	claims, err := s.jwtService.Decode(token)
	if err != nil {
		return model.Session{}, failure.Unauthorized("invalid token") //nolint:wrapcheck
	}

	session := model.NewSession(token, claims)
	if !session.IsValid(s.clock.Now()) {
		return session, failure.Unauthorized("token expired") //nolint:wrapcheck
	}

	return session, nil
}

func (s *serviceImpl) profile(ctx context.Context) (profile model.Profile, err error) {
	if _, ok := model.SessionFromContext(ctx); !ok {
		return profile, failure.Unauthorized("missing session") //nolint:wrapcheck
	}

	err = s.client.Do(ctx, http.MethodGet, pathProfile, nil, nil, &profile)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, upstream.ToFailure(err, "failed to fetch profile") //nolint:wrapcheck
	}

	return profile, nil
}
