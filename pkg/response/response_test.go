package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestError_HidesStackByDefault(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	Error(c, http.StatusNotFound, "User not found", errors.New("lookup: not found"), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	body := decode(t, w)
	assert.Equal(t, "User not found", body["message"])
	assert.Equal(t, "rid-1", body["request_id"])
	assert.NotContains(t, body, "stack")
	assert.NotContains(t, body, "errors")
}

func TestError_ExposesStackWhenAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ExposeStackKey, true)

	Error(c, http.StatusBadRequest, "Invalid user data", errors.New("bind: bad"), map[string]string{"email": "is required"})

	body := decode(t, w)
	assert.Equal(t, "bind: bad", body["stack"])
	assert.Equal(t, map[string]any{"email": "is required"}, body["errors"])
}

func TestErrorStack_DefaultsTo500(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ExposeStackKey, true)

	ErrorStack(c, 0, "Internal Server Error", "goroutine 1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "goroutine 1", decode(t, w)["stack"])
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusCreated, gin.H{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", decode(t, w)["id"])
}
