package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/middleware"
	"jobboard/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestParamID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", ""} {
		c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := paramID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestViewerIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:51234"
	c, _ := testContext(req)
	assert.Equal(t, "10.0.0.9", viewerIdentity(c))

	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", viewerIdentity(c))

	req.Header.Del("X-Forwarded-For")
	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", viewerIdentity(c))
}

func TestActorOrAbort(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	_, ok := actorOrAbort(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type seekerToken struct{}

func (seekerToken) Parse(string) (models.Actor, error) {
	return models.Actor{UserID: 1, Role: models.RoleJobseeker}, nil
}

func TestApplyJobRequiresCoverLetterAndResume(t *testing.T) {
	ctrl := NewApplicationController(nil, nil)
	r := gin.New()
	r.POST("/jobs/:id/apply", middleware.AuthMiddleware(seekerToken{}, models.RoleJobseeker), ctrl.ApplyJob)

	send := func(fields map[string]string) (int, string) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/jobs/7/apply", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer seeker")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var res struct {
			Mess string `json:"mess"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return w.Code, res.Mess
	}

	code, mess := send(map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Thiếu thư giới thiệu", mess)

	code, mess = send(map[string]string{"coverLetter": "Hello"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Thiếu file CV", mess)
}
