package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultIssuer = "telecom-data-plan"

// JWTStrategy issues HS256 tokens whose jti is the session id and sub the user id.
type JWTStrategy struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	issuer := opts.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
	)
	return &JWTStrategy{secret: []byte(secret), issuer: issuer, parser: parser}
}

// IssueToken signs a token bound to the session's id and lifetime.
func (s *JWTStrategy) IssueToken(session model.Session) (string, error) {
	if session.ID == "" {
		return "", fmt.Errorf("%w: empty session id", ErrInvalidToken)
	}
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   strconv.FormatInt(session.UserID, 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature and expiry and returns the embedded claims.
func (s *JWTStrategy) ParseToken(token string) (Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{SessionID: claims.ID, UserID: userID}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
