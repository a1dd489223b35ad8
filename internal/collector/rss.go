package collector

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/summary"
)

// RSS 条目的描述字段最长保留多少个 rune
const maxFeedSummaryRunes = 400

// rssFetcher 通过 gofeed 解析 RSS/Atom 订阅源
type rssFetcher struct {
	src  config.Source
	opts Options
}

func (f *rssFetcher) Name() string {
	return f.src.Name
}

func (f *rssFetcher) Fetch(ctx context.Context) ([]NewsItem, error) {
	body, err := f.opts.Client.Get(ctx, f.src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", f.src.URL, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.src.URL, err)
	}

	w := newWindow(f.opts.WindowHours)
	items := make([]NewsItem, 0, len(feed.Items))

	for _, entry := range feed.Items {
		// 单条残缺只跳过该条，不影响同源的其它条目
		title := summary.CleanText(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		pub := entry.PublishedParsed
		if pub == nil {
			pub = entry.UpdatedParsed
		}
		if !w.keep(pub) {
			continue
		}

		sum := feedSummary(entry)
		if sum == "" && f.opts.ExtractBody && f.opts.Extractor != nil {
			extracted, err := f.opts.Extractor.Extract(ctx, link)
			if err == nil {
				sum = extracted
			}
		}

		items = append(items, NewsItem{
			Title:       title,
			Link:        link,
			Source:      f.src.Name,
			Tags:        f.src.Tags,
			Summary:     sum,
			PublishedAt: pub,
		})
	}

	if len(items) == 0 {
		log.Printf("fetch %s got 0 items in window", f.src.Name)
	}
	return items, nil
}

// feedSummary 优先取 description，其次 content:encoded，去标签后截断
func feedSummary(entry *gofeed.Item) string {
	raw := entry.Description
	if raw == "" {
		raw = entry.Content
	}
	if raw == "" {
		return ""
	}
	return summary.Truncate(summary.CleanText(stripTags(raw)), maxFeedSummaryRunes)
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return html.UnescapeString(tagRe.ReplaceAllString(s, " "))
}
