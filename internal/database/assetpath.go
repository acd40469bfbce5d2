package database

import (
	"net/url"
	"strings"
)

// QuoteAssetPath 对资源路径做百分号编码，保留 '/' 分隔符
// 字母、数字和 "_.-~" 原样保留，其余字节按UTF-8编码为 %XX
func QuoteAssetPath(p string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

// UnquoteAssetPath 还原 QuoteAssetPath 编码后的路径，失败时原样返回
func UnquoteAssetPath(p string) string {
	decoded, err := url.PathUnescape(p)
	if err != nil {
		return p
	}
	return decoded
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~':
		return true
	}
	return false
}
