package response

import (
	stderrors "errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OffsetPage limit/offset 分页参数
type OffsetPage struct {
	Limit  int
	Offset int
}

// MaxPage 页码上限，更大的页码按上限处理（结果为空页）
const MaxPage = 1_000_000

// PageNumber 页码分页参数
type PageNumber struct {
	Page     int
	PageSize int
}

// Offset 返回页码对应的偏移量，溢出时取 math.MaxInt
func (p PageNumber) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// ParseOffsetPage 解析 limit/offset 查询参数
// 非法或缺失的 limit 使用默认值，超过上限时截断；非法的 offset 视为0
func ParseOffsetPage(c *gin.Context, defaultLimit, maxLimit int) OffsetPage {
	return OffsetPage{
		Limit:  clampInt(c.Query("limit"), defaultLimit, maxLimit),
		Offset: nonNegative(c.Query("offset")),
	}
}

// ParsePageNumber 解析 page/page_size 查询参数
// 超出 MaxPage（包括超出 int 范围）的页码按 MaxPage 处理
func ParsePageNumber(c *gin.Context, defaultSize, maxSize int) PageNumber {
	page, err := strconv.Atoi(c.Query("page"))
	switch {
	case err != nil && stderrors.Is(err, strconv.ErrRange) && page > 0:
		page = MaxPage
	case err != nil || page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	return PageNumber{
		Page:     page,
		PageSize: clampInt(c.Query("page_size"), defaultSize, maxSize),
	}
}

// ClampLimit 将数量参数限制在 [1, max] 内，非法值使用默认值
func ClampLimit(raw string, def, max int) int {
	return clampInt(raw, def, max)
}

func clampInt(raw string, def, max int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

func nonNegative(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
