package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tareahub/go-tarea-server/token"
)

const testSecret = "test-signing-secret"

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := token.NewCodec("")
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := token.NewCodec(testSecret)
	require.NoError(t, err)

	raw, err := codec.Issue(42, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	v := codec.Verify(raw)
	require.Equal(t, token.KindValid, v.Kind)
	require.Equal(t, int64(42), v.Subject)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), v.ExpiresAt, 5*time.Second)
}

func TestCodec_Verify_Expired(t *testing.T) {
	now := time.Now()
	issueClock := func() time.Time { return now.Add(-time.Hour) }

	issuer, err := token.NewCodec(testSecret, token.WithNowFunc(issueClock))
	require.NoError(t, err)

	raw, err := issuer.Issue(7, 15*time.Minute)
	require.NoError(t, err)

	verifier, err := token.NewCodec(testSecret)
	require.NoError(t, err)

	v := verifier.Verify(raw)
	require.Equal(t, token.KindExpired, v.Kind)
	// The subject survives expiry so the rotation path can still recover it.
	require.Equal(t, int64(7), v.Subject)
}

func TestCodec_Verify_NoExpiryClaim(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "13",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	codec, err := token.NewCodec(testSecret)
	require.NoError(t, err)

	v := codec.Verify(raw)
	require.Equal(t, token.KindValid, v.Kind)
	require.Equal(t, int64(13), v.Subject)
	require.True(t, v.ExpiresAt.IsZero())
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec, err := token.NewCodec(testSecret)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		require.Equal(t, token.KindMalformed, codec.Verify("not-a-token").Kind)
	})

	t.Run("empty", func(t *testing.T) {
		require.Equal(t, token.KindMalformed, codec.Verify("").Kind)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := token.NewCodec("a-different-secret")
		require.NoError(t, err)
		raw, err := other.Issue(1, time.Minute)
		require.NoError(t, err)

		require.Equal(t, token.KindMalformed, codec.Verify(raw).Kind)
	})
}

func TestCodec_DecodeUnverified(t *testing.T) {
	now := time.Now()
	issuer, err := token.NewCodec(testSecret, token.WithNowFunc(func() time.Time { return now.Add(-48 * time.Hour) }))
	require.NoError(t, err)

	raw, err := issuer.Issue(99, time.Minute)
	require.NoError(t, err)

	codec, err := token.NewCodec(testSecret)
	require.NoError(t, err)

	// Expired long ago, but the payload still decodes.
	subject, err := codec.DecodeUnverified(raw)
	require.NoError(t, err)
	require.Equal(t, int64(99), subject)

	_, err = codec.DecodeUnverified("garbage")
	require.Error(t, err)
}
