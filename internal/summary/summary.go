package summary

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

const (
	// 摘要长度上限（按 rune 计），与正文提取的最短可用长度
	MaxExcerptRunes = 320
	minExcerptRunes = 40
)

// Fetcher 是摘要器对 HTTP 层的最小依赖
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Extractor 尽力从文章页提取一段纯文本摘要。
// 任何失败（抓取失败、正文过短）都返回空串，绝不中断流水线。
type Extractor struct {
	client Fetcher
}

func New(client Fetcher) *Extractor {
	return &Extractor{client: client}
}

// Extract 抓取文章页并返回摘要，失败时返回空串和原因
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	body, err := e.client.Get(ctx, link)
	if err != nil {
		return "", fmt.Errorf("fetch article %s: %w", link, err)
	}
	return e.FromHTML(body, link)
}

// FromHTML 从已抓取的页面内容提取摘要，供调用方复用响应体
func (e *Extractor) FromHTML(body []byte, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse article url %s: %w", link, err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("extract article %s: %w", link, err)
	}

	text := CleanText(article.TextContent)
	if len([]rune(text)) < minExcerptRunes {
		return "", fmt.Errorf("extracted text too short for %s", link)
	}
	return Truncate(text, MaxExcerptRunes), nil
}

// CleanText 去掉首尾空白并把全角空格、不换行空格折叠成普通空格
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "　", " ")
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 按 rune 截断，超长时追加省略号
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
