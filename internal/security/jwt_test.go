package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:          42,
		Username:    "alice",
		Email:       "alice@example.com",
		Role:        models.RoleUser,
		Permissions: []models.Permission{models.PermissionRead, models.PermissionWrite},
		FirstName:   "Alice",
		LastName:    "Liddell",
	}
}

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := m.IssueAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, []models.Permission{models.PermissionRead, models.PermissionWrite}, claims.Permissions)
	assert.Equal(t, "Alice Liddell", claims.DisplayName())
	assert.False(t, claims.IsAdmin())
}

func TestTokenManager_RefreshCarriesOnlyUserID(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := m.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Permissions)
}

func TestTokenManager_WrongTypeRejected(t *testing.T) {
	for _, refreshSecret := range []string{"refresh-secret", ""} {
		m := NewTokenManager("access-secret", refreshSecret, time.Minute, time.Hour)

		access, err := m.IssueAccessToken(testUser())
		require.NoError(t, err)
		_, err = m.ParseRefreshToken(access)
		assert.ErrorIs(t, err, ErrInvalidTokenType)

		refresh, err := m.IssueRefreshToken(42)
		require.NoError(t, err)
		_, err = m.ParseAccessToken(refresh)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.IssueAccessToken(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ForgedSignature(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewTokenManager("someone-else", "someone-else", time.Minute, time.Hour)

	token, err := other.IssueAccessToken(testUser())
	require.NoError(t, err)
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// a refresh-typed token signed with the access secret must not verify
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 42,
		Type:   TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("access-secret"))
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	m := NewTokenManager("access-secret", "", time.Minute, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Type: TokenTypeAccess})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_IsAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: models.RoleAdmin}).IsAdmin())
	assert.True(t, (&Claims{Role: models.RoleUser, Permissions: []models.Permission{models.PermissionAdmin}}).IsAdmin())
	assert.False(t, (&Claims{Role: models.RoleUser}).IsAdmin())
	assert.Equal(t, "bob", (&Claims{Username: "bob"}).DisplayName())
}
