package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/models"
	"jobboard/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]models.Actor

func (s stubTokens) Parse(token string) (models.Actor, error) {
	actor, ok := s[token]
	if !ok {
		return models.Actor{}, errors.New("bad token")
	}
	return actor, nil
}

var tokens = stubTokens{
	"seeker":   {UserID: 1, Role: models.RoleJobseeker},
	"employer": {UserID: 2, Role: models.RoleEmployer},
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogger(logger.Nop{}), ErrorHandler())
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "userId": actor.UserID})
	})
	r.GET("/", handlers...)
	return r
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(tokens, models.RoleEmployer))

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "forged", http.StatusUnauthorized},
		{"wrong role", "seeker", http.StatusForbidden},
		{"allowed role", "employer", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, do(r, tc.token).Code)
		})
	}
}

func TestAuthMiddlewareAnyRole(t *testing.T) {
	r := newRouter(AuthMiddleware(tokens))

	w := do(r, "seeker")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK     bool `json:"ok"`
		UserID uint `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, uint(1), body.UserID)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	r := newRouter(OptionalAuth(tokens))

	for _, token := range []string{"", "forged"} {
		w := do(r, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":false,"userId":0}`, w.Body.String())
	}
	assert.JSONEq(t, `{"ok":true,"userId":2}`, do(r, "employer").Body.String())
}

func TestRoleMiddlewareRequiresActor(t *testing.T) {
	r := newRouter(RoleMiddleware(models.RoleJobseeker))
	assert.Equal(t, http.StatusUnauthorized, do(r, "seeker").Code)

	r = newRouter(OptionalAuth(tokens), RoleMiddleware(models.RoleJobseeker))
	assert.Equal(t, http.StatusOK, do(r, "seeker").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "employer").Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter()

	w := do(r, "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
}

func TestErrorHandlerWritesPendingError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
