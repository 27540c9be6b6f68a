package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndGetClaims(token, "test-secret")
	require.NoError(t, err)

	parsed, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret")
	require.NoError(t, err)

	_, err = ValidateAndGetClaims(token, "other-secret")
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken(uuid.New(), "")
	assert.Error(t, err)
}

func TestUserIDFromClaimsRejectsMissingID(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret")
	require.NoError(t, err)

	claims, err := ValidateAndGetClaims(token, "test-secret")
	require.NoError(t, err)
	delete(claims, "id")

	_, err = UserIDFromClaims(claims)
	assert.Error(t, err)
}
