package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct{ err error }

func (s stubAuth) SignIn(clientID, apiKey string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "signed-" + clientID, nil
}

func postToken(t *testing.T, auth stubAuth, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewIdentityServer(auth).RegisterPublic(engine.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityServer_Token(t *testing.T) {
	t.Run("Issues a token", func(t *testing.T) {
		w := postToken(t, stubAuth{}, `{"client_id":"batch-runner","api_key":"k"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"signed-batch-runner","token_type":"Bearer"}`, w.Body.String())
	})

	t.Run("Missing fields", func(t *testing.T) {
		w := postToken(t, stubAuth{}, `{"client_id":"batch-runner"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Wrong credentials", func(t *testing.T) {
		w := postToken(t, stubAuth{err: service.ErrInvalidCredentials}, `{"client_id":"x","api_key":"y"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Tokenizer failure", func(t *testing.T) {
		w := postToken(t, stubAuth{err: errors.New("boom")}, `{"client_id":"x","api_key":"y"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}
