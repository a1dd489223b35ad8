package collector

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// 文章页上常见的发布时间标注，按可信度排序
var publishedSelectors = []struct {
	selector string
	attr     string
}{
	{"meta[property='article:published_time']", "content"},
	{"meta[name='article:published_time']", "content"},
	{"meta[itemprop='datePublished']", "content"},
	{"meta[name='pubdate']", "content"},
	{"meta[property='og:updated_time']", "content"},
	{"time[datetime]", "datetime"},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDoc(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// publishedFromDoc 从 meta 标签或 time 元素里解析发布时间，找不到返回 nil
func publishedFromDoc(doc *goquery.Document) *time.Time {
	for _, ps := range publishedSelectors {
		val, ok := doc.Find(ps.selector).First().Attr(ps.attr)
		if !ok {
			continue
		}
		if t := parseAnyTime(val); t != nil {
			return t
		}
	}
	return nil
}

func titleFromDoc(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// parseAnyTime 逐个尝试常见时间格式；无时区信息的按 UTC 处理
func parseAnyTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
