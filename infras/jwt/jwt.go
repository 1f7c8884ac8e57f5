package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"

	"lodge/shared/constant"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrBearerFormat = errors.New("authorization header must start with 'Bearer '")
)

// Claims is the subset of the upstream token this service reads.
// sub, exp and iat come from the registered claims.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWT decodes tokens issued by the upstream. Signatures are checked there, not here.
type JWT interface {
	Decode(tokenString string) (*Claims, error)
}

type Service struct {
	parser *jwt.Parser
}

func New() JWT {
	return &Service{
		parser: jwt.NewParser(),
	}
}

func (s *Service) Decode(tokenString string) (*Claims, error) {
	token, _, err := s.parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaim
	}

	if claims.Subject == constant.Empty && claims.Username == constant.Empty {
		return nil, ErrInvalidClaim
	}

	if claims.ExpiresAt == nil {
		return nil, ErrInvalidClaim
	}

	claims.Role = NormalizeRole(claims.Role)

	return claims, nil
}

// NormalizeRole upper-cases a role and strips a Spring-style ROLE_ prefix.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))

	return strings.TrimPrefix(role, "ROLE_")
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, ErrMissingToken
	}

	prefix := constant.BearerPrefix
	if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return constant.Empty, ErrBearerFormat
	}

	token := strings.TrimSpace(authHeader[len(prefix):])
	if token == constant.Empty {
		return constant.Empty, ErrBearerFormat
	}

	return token, nil
}
