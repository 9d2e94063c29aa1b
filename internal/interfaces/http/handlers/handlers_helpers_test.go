package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/interfaces/http/middleware"
	"crm-admin.backend/internal/interfaces/http/response"
)

type envelope struct {
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Data       json.RawMessage     `json:"data"`
	Error      *response.ErrorBody `json:"error"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withUser stands in for RequireRoles in handler tests
func withUser(user *entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserKey, user)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
