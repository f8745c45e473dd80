package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/inc-tasks/task-api/internal/dto"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ok      bool
		message string
	}{
		{"valid", `{"username":"alice","password":"secret1","email":"alice@example.com"}`, true, ""},
		{"email omitted", `{"username":"alice"}`, true, ""},
		{"bad email", `{"email":"alice"}`, false, "Please provide a valid email address"},
		{"malformed", `{"username":`, false, "Invalid request body"},
		{"wrong type", `{"username":42}`, false, "Invalid request body"},
		{"empty body", ``, false, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, "/api/users", []byte(tt.body))

			var req dto.CreateUserRequest
			ok := bindJSON(c, &req)

			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, tt.message, decodeError(t, w).Message)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := parseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestTargetUserID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/admin/users/7?id=9", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	id, ok := targetUserID(c)
	assert.True(t, ok)
	assert.EqualValues(t, 7, id, "path id wins over query id")

	c, _ = newTestContext(http.MethodGet, "/api/admin/users?id=9", nil)
	id, ok = targetUserID(c)
	assert.True(t, ok)
	assert.EqualValues(t, 9, id)

	c, w := newTestContext(http.MethodGet, "/api/admin/users", nil)
	_, ok = targetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, "User ID is required", decodeError(t, w).Message)

	c, w = newTestContext(http.MethodGet, "/api/admin/users?id=x", nil)
	_, ok = targetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, "Invalid user ID", decodeError(t, w).Message)
}

func TestActorFromContext(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/", nil)
	_, ok := actorFromContext(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyIdentity, &security.Claims{
		UserID:      5,
		Username:    "alice",
		Permissions: []models.Permission{models.PermissionAdmin},
	})
	actor, ok := actorFromContext(c)
	require.True(t, ok)
	assert.EqualValues(t, 5, actor.ID)
	assert.Equal(t, "alice", actor.Name)
	assert.True(t, actor.Admin)
}

func TestVerifyToken_WithoutIdentity(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/api/auth/verify-token", nil)
	NewAuthHandler(nil, nil).VerifyToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization token required", decodeError(t, w).Message)
}
