package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/weiwangfds/arsongs/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// TestPathID 测试路径ID解析
func TestPathID(t *testing.T) {
	tests := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		c, w := newContext(http.MethodGet, "/", "")
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}
		id, ok := pathID(c, "id")
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, id, tt.raw)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"field":"id"`)
		}
	}
}

// TestQueryHelpers 测试可选查询参数解析
func TestQueryHelpers(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/?loop=1&current=5", "")
	id, ok := queryID(c, "current")
	assert.True(t, ok)
	assert.EqualValues(t, 5, id)
	assert.True(t, queryBool(c, "loop"))

	c, _ = newContext(http.MethodGet, "/?loop=maybe", "")
	id, ok = queryID(c, "current")
	assert.True(t, ok)
	assert.Zero(t, id)
	assert.False(t, queryBool(c, "loop"))

	c, w := newContext(http.MethodGet, "/?current=x", "")
	_, ok = queryID(c, "current")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestBindJSON 测试参数校验错误使用JSON字段名
func TestBindJSON(t *testing.T) {
	var req struct {
		SongIDs []uint `json:"song_ids" binding:"required,min=1"`
	}

	c, w := newContext(http.MethodPost, "/", `{"song_ids":[]}`)
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"song_ids"`)
	assert.Contains(t, w.Body.String(), "song_ids must be at least 1")

	c, w = newContext(http.MethodPost, "/", `{not json`)
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = newContext(http.MethodPost, "/", `{"song_ids":[3,1]}`)
	assert.True(t, bindJSON(c, &req))
	assert.Equal(t, []uint{3, 1}, req.SongIDs)
}

// TestBindError 测试非校验错误保留原始描述
func TestBindError(t *testing.T) {
	appErr := bindError(assert.AnError)
	assert.Equal(t, errors.ErrInvalidParams, appErr.Code)
	assert.Empty(t, appErr.Field)
	assert.Equal(t, assert.AnError.Error(), appErr.Details)
}
