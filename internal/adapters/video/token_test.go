package video

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIssuer_RequiresCredentials(t *testing.T) {
	_, err := NewTokenIssuer(Config{APIKey: "key"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewTokenIssuer(Config{APISecret: "secret"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(Config{APIKey: "key", APISecret: "secret", TTL: time.Minute})
	require.NoError(t, err)

	tok, err := issuer.AccessToken(context.Background(), "ABCD1234", "player-1")
	require.NoError(t, err)

	town, player, err := issuer.verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", string(town))
	assert.Equal(t, "player-1", string(player))
}

func TestTokenIssuer_RejectsForeignAndExpiredTokens(t *testing.T) {
	issuer, err := NewTokenIssuer(Config{APIKey: "key", APISecret: "secret", TTL: time.Minute})
	require.NoError(t, err)
	other, err := NewTokenIssuer(Config{APIKey: "key", APISecret: "other-secret"})
	require.NoError(t, err)

	foreign, err := other.AccessToken(context.Background(), "T", "p")
	require.NoError(t, err)
	_, _, err = issuer.verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := issuer.AccessToken(context.Background(), "T", "p")
	require.NoError(t, err)
	_, _, err = issuer.verify(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_CanceledContext(t *testing.T) {
	issuer, err := NewTokenIssuer(Config{APIKey: "key", APISecret: "secret"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = issuer.AccessToken(ctx, "T", "p")
	assert.ErrorIs(t, err, context.Canceled)
}
