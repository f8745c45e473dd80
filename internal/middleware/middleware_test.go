package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/logger"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/security"
	"github.com/inc-tasks/task-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testTokens() *security.TokenManager {
	return security.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func authRouter(tokens *security.TokenManager) *gin.Engine {
	verifier := services.NewAuthService(nil, tokens, nil)

	router := setupTestGin()
	router.GET("/private", RequireAuth(verifier), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username, "userId": userID})
	})
	router.GET("/optional", OptionalAuth(verifier), func(c *gin.Context) {
		_, ok := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	router.GET("/admin", RequireAuth(verifier), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := testTokens()
	router := authRouter(tokens)
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleUser}

	access, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := tokens.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	w := doRequest(router, "/private", "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"userId":7`)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization token required"},
		{"wrong scheme", "Basic " + access, "Authorization token required"},
		{"empty bearer", "Bearer ", "Authorization token required"},
		{"refresh token", "Bearer " + refresh, "Invalid token type. Access token required."},
		{"garbage", "Bearer abc.def.ghi", "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/private", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := testTokens()
	router := authRouter(tokens)

	access, err := tokens.IssueAccessToken(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	assert.Contains(t, doRequest(router, "/optional", "").Body.String(), `"authenticated":false`)
	assert.Contains(t, doRequest(router, "/optional", "Bearer nonsense").Body.String(), `"authenticated":false`)
	assert.Contains(t, doRequest(router, "/optional", "Bearer "+access).Body.String(), `"authenticated":true`)
}

func TestRequireAdmin(t *testing.T) {
	tokens := testTokens()
	router := authRouter(tokens)

	plain, err := tokens.IssueAccessToken(&models.User{ID: 1, Role: models.RoleUser, Permissions: []models.Permission{models.PermissionRead}})
	require.NoError(t, err)
	byRole, err := tokens.IssueAccessToken(&models.User{ID: 2, Role: models.RoleAdmin})
	require.NoError(t, err)
	byPermission, err := tokens.IssueAccessToken(&models.User{ID: 3, Role: models.RoleUser, Permissions: []models.Permission{models.PermissionAdmin}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(router, "/admin", "Bearer "+plain).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(router, "/admin", "Bearer "+byRole).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(router, "/admin", "Bearer "+byPermission).Code)
}

func TestRequestID(t *testing.T) {
	router := setupTestGin()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(constants.HeaderRequestID, "client-supplied")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Header().Get(constants.HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	router := setupTestGin()
	router.Use(RequestID(), Recovery(logger.Discard()))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apierrors.MsgInternal, decodeError(t, w).Message)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	router := setupTestGin()
	router.Use(RequestID(), RequestLogger(log))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "/missing", record["path"])
	assert.EqualValues(t, 404, record["status"])
	assert.Equal(t, w.Header().Get(constants.HeaderRequestID), record["request_id"])
}
