package response

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

// TestParseOffsetPage 测试 limit/offset 解析
func TestParseOffsetPage(t *testing.T) {
	tests := []struct {
		query string
		want  OffsetPage
	}{
		{"", OffsetPage{Limit: 10, Offset: 0}},
		{"limit=5&offset=20", OffsetPage{Limit: 5, Offset: 20}},
		{"limit=500", OffsetPage{Limit: 25, Offset: 0}},
		{"limit=0&offset=-4", OffsetPage{Limit: 10, Offset: 0}},
		{"limit=abc&offset=x", OffsetPage{Limit: 10, Offset: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOffsetPage(queryContext(tt.query), 10, 25), tt.query)
	}
}

// TestParsePageNumber 测试页码解析
func TestParsePageNumber(t *testing.T) {
	p := ParsePageNumber(queryContext("page=3&page_size=50"), 24, 40)
	assert.Equal(t, PageNumber{Page: 3, PageSize: 40}, p)
	assert.Equal(t, 80, p.Offset())

	p = ParsePageNumber(queryContext("page=-1"), 24, 40)
	assert.Equal(t, PageNumber{Page: 1, PageSize: 24}, p)
	assert.Zero(t, p.Offset())

	for _, raw := range []string{"page=9223372036854775807", "page=99999999999999999999999", "page=1000001"} {
		p = ParsePageNumber(queryContext(raw+"&page_size=40"), 24, 40)
		assert.Equal(t, MaxPage, p.Page, raw)
		assert.Equal(t, (MaxPage-1)*40, p.Offset(), raw)
	}

	p = ParsePageNumber(queryContext("page=-99999999999999999999999"), 24, 40)
	assert.Equal(t, 1, p.Page)
}

// TestPageNumberOffset 测试偏移量计算不会溢出
func TestPageNumberOffset(t *testing.T) {
	assert.Equal(t, math.MaxInt, PageNumber{Page: math.MaxInt, PageSize: 40}.Offset())
	assert.Equal(t, math.MaxInt, PageNumber{Page: math.MaxInt/2 + 2, PageSize: 2}.Offset())
	assert.Zero(t, PageNumber{Page: 0, PageSize: 40}.Offset())
	assert.Equal(t, 40, PageNumber{Page: 2, PageSize: 40}.Offset())
}

// TestClampLimit 测试数量限制
func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, ClampLimit("", 5, 25))
	assert.Equal(t, 7, ClampLimit("7", 5, 25))
	assert.Equal(t, 25, ClampLimit("99", 5, 25))
	assert.Equal(t, 5, ClampLimit("-1", 5, 25))
}
