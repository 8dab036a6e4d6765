package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestActionToken_RoundTrip(t *testing.T) {
	token, err := MintActionToken(testSecret, "user-42", TokenTypeEmail, time.Hour)
	require.NoError(t, err)

	userID, tokenType, err := ParseActionToken(testSecret, token, TokenTypeEmail)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, TokenTypeEmail, tokenType)
}

func TestActionToken_AnyTypeAccepted(t *testing.T) {
	token, err := MintActionToken(testSecret, "user-42", TokenTypeRecovery, time.Hour)
	require.NoError(t, err)

	// wantType vide: le type est retourné pour que l'appelant décide
	_, tokenType, err := ParseActionToken(testSecret, token, "")
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRecovery, tokenType)
}

func TestActionToken_WrongType(t *testing.T) {
	token, err := MintActionToken(testSecret, "user-42", TokenTypeEmail, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseActionToken(testSecret, token, TokenTypeRecovery)
	assert.Error(t, err)
}

func TestActionToken_WrongSecret(t *testing.T) {
	token, err := MintActionToken(testSecret, "user-42", TokenTypeEmail, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseActionToken("other-secret", token, TokenTypeEmail)
	assert.Error(t, err)
}

func TestActionToken_Expired(t *testing.T) {
	token, err := MintActionToken(testSecret, "user-42", TokenTypeRecovery, -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseActionToken(testSecret, token, TokenTypeRecovery)
	assert.Error(t, err)
}

func TestActionToken_Garbage(t *testing.T) {
	_, _, err := ParseActionToken(testSecret, "not-a-token", "")
	assert.Error(t, err)
}
