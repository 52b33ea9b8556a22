package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "CUSTOMER")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "CUSTOMER", claims.Role)
}

func TestService_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := New("other", time.Hour).GenerateToken(7, "CUSTOMER")
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := New("secret", -time.Minute).GenerateToken(7, "CUSTOMER")
	require.NoError(t, err)
	_, err = New("secret", time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
