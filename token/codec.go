// Package token signs and verifies the compact JWTs that carry a session
// subject. The codec is stateless: a pure function of the shared secret, the
// payload and the clock.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kind tags the outcome of a verification so callers can branch on an
// explicit value instead of matching error types. An expired token is
// structurally valid and may still be recoverable upstream; a malformed one
// never is.
type Kind int

const (
	KindValid Kind = iota
	KindExpired
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "valid"
	case KindExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// Verification is the result of verifying a raw token. Subject and ExpiresAt
// are populated for KindValid and KindExpired; a malformed token carries
// neither.
type Verification struct {
	Kind      Kind
	Subject   int64
	ExpiresAt time.Time
}

// Codec issues and verifies HS256 tokens with a single process-wide secret.
type Codec struct {
	secret  []byte
	nowFunc func() time.Time
}

// CodecOption modifies a Codec.
type CodecOption func(*Codec)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a Codec signing with secret.
func NewCodec(secret string, options ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("[NewCodec] signing secret is required")
	}
	c := &Codec{
		secret:  []byte(secret),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject that expires after ttl.
func (c *Codec) Issue(subject int64, ttl time.Duration) (string, error) {
	now := c.nowFunc()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subject, 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Issue] SignedString")
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw. It never returns an error:
// every outcome maps onto a Kind so the rotation state machine can branch on
// the tag.
func (c *Codec) Verify(raw string) Verification {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
	)

	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})

	switch {
	case err == nil:
		subject, convErr := strconv.ParseInt(claims.Subject, 10, 64)
		if convErr != nil {
			return Verification{Kind: KindMalformed}
		}
		// The default parser accepts a token with no exp claim.
		expiresAt := time.Time{}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		return Verification{Kind: KindValid, Subject: subject, ExpiresAt: expiresAt}

	case errors.Is(err, jwt.ErrTokenExpired):
		subject, convErr := strconv.ParseInt(claims.Subject, 10, 64)
		if convErr != nil {
			return Verification{Kind: KindMalformed}
		}
		expiresAt := time.Time{}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		return Verification{Kind: KindExpired, Subject: subject, ExpiresAt: expiresAt}

	default:
		return Verification{Kind: KindMalformed}
	}
}

// DecodeUnverified extracts the subject from raw without checking signature
// or expiry. Used where the session record, not the token, is the authority:
// logging out an expired session and the last-resort session lookup during
// rotation.
func (c *Codec) DecodeUnverified(raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return 0, errors.Wrap(err, "[Codec.DecodeUnverified] ParseUnverified")
	}
	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "[Codec.DecodeUnverified] subject claim")
	}
	return subject, nil
}
