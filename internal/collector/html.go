package collector

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/summary"
)

// htmlFetcher 扫描列表页上的 a 标签，把命中 link_pattern 的链接当作文章。
// 每篇文章再抓一次详情页，用于解析发布时间和提取摘要。
type htmlFetcher struct {
	src     config.Source
	pattern *regexp.Regexp
	opts    Options
}

func (f *htmlFetcher) Name() string {
	return f.src.Name
}

type linkCandidate struct {
	link  string
	title string
}

func (f *htmlFetcher) Fetch(ctx context.Context) ([]NewsItem, error) {
	candidates, err := f.scanListPage()
	if err != nil {
		return nil, err
	}

	w := newWindow(f.opts.WindowHours)
	limit := f.opts.HTMLLimit
	if limit <= 0 {
		limit = 20
	}

	items := make([]NewsItem, 0, limit)
	for _, cand := range candidates {
		if len(items) >= limit || ctx.Err() != nil {
			break
		}

		body, err := f.opts.Client.Get(ctx, cand.link)
		if err != nil {
			log.Printf("%s: fetch article %s error: %v", f.src.Name, cand.link, err)
			continue
		}

		doc, err := parseDoc(body)
		if err != nil {
			log.Printf("%s: parse article %s error: %v", f.src.Name, cand.link, err)
			continue
		}

		pub := publishedFromDoc(doc)
		if !w.keep(pub) {
			continue
		}

		title := cand.title
		if title == "" {
			title = summary.CleanText(titleFromDoc(doc))
		}
		if title == "" {
			title = cand.link
		}

		sum := ""
		if f.opts.ExtractBody && f.opts.Extractor != nil {
			if extracted, err := f.opts.Extractor.FromHTML(body, cand.link); err == nil {
				sum = extracted
			}
		}

		items = append(items, NewsItem{
			Title:       title,
			Link:        cand.link,
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

// scanListPage 收集列表页上所有命中模式的链接，保持页面出现顺序并去重
func (f *htmlFetcher) scanListPage() ([]linkCandidate, error) {
	c := colly.NewCollector(colly.UserAgent(f.opts.UserAgent))
	if f.opts.Timeout > 0 {
		c.SetRequestTimeout(f.opts.Timeout)
	}

	seen := make(map[string]struct{})
	var candidates []linkCandidate

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if !strings.HasPrefix(abs, "http") {
			return
		}

		text := summary.CleanText(e.Text)
		if f.pattern != nil && !f.pattern.MatchString(abs) && !f.pattern.MatchString(text) {
			return
		}

		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		candidates = append(candidates, linkCandidate{link: abs, title: text})
	})

	if err := c.Visit(f.src.URL); err != nil {
		return nil, fmt.Errorf("visit list page %s: %w", f.src.URL, err)
	}
	return candidates, nil
}
