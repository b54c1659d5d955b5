package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// DefaultTTL is the fixed session validity window.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the identity payload carried by a session credential.
// Immutable once issued; carries no reference to mutable account state.
type Claims struct {
	AccountID uuid.UUID
	Email     string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Service signs and verifies session credentials. Verification is a pure
// function of the token and the clock; safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: DefaultTTL, now: time.Now}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue signs claims for the account with the fixed validity window,
// starting at the current instant. Deterministic for a given secret,
// identity and timestamp.
func (s *Service) Issue(accountID uuid.UUID, email string, isAdmin bool) (string, Claims, error) {
	issued := s.now().Truncate(time.Second)
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		IsAdmin:   isAdmin,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(s.ttl),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Verify checks integrity and expiry and returns the embedded claims.
// Fails with ErrMalformed, ErrSignatureInvalid or ErrExpired.
func (s *Service) Verify(raw string) (Claims, error) {
	var jc jwtClaims
	_, err := jwt.ParseWithClaims(raw, &jc, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrMalformed
		}
	}

	accountID, err := uuid.Parse(jc.Subject)
	if err != nil {
		return Claims{}, ErrMalformed
	}

	c := Claims{
		AccountID: accountID,
		Email:     jc.Email,
		IsAdmin:   jc.IsAdmin,
	}
	if jc.IssuedAt != nil {
		c.IssuedAt = jc.IssuedAt.Time
	}
	if jc.ExpiresAt != nil {
		c.ExpiresAt = jc.ExpiresAt.Time
	}
	return c, nil
}
