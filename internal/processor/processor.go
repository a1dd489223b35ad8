package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"

	"github.com/rlwrld/newsclip/internal/collector"
	"github.com/rlwrld/newsclip/internal/filter"
)

// Aggregator 把各来源的条目合并成最终发布列表：
// 关键词过滤 → 按链接去重 → 按时间倒序 → 截断。
// 纯内存归并，输入顺序一致则输出完全确定。
type Aggregator struct {
	rules    *filter.RuleSet
	maxItems int
}

func NewAggregator(rules *filter.RuleSet, maxItems int) *Aggregator {
	return &Aggregator{rules: rules, maxItems: maxItems}
}

// Aggregate 接收按来源注册顺序排列的条目列表。
// 重复链接保留第一次出现的那条，因此注册更早的来源胜出。
func (a *Aggregator) Aggregate(itemsBySource [][]collector.NewsItem) []collector.NewsItem {
	var out []collector.NewsItem
	seen := make(map[string]struct{})

	for _, items := range itemsBySource {
		for _, it := range items {
			if !a.rules.Matches(it.Title, it.Summary) {
				continue
			}
			key := hashLink(it.Link)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, it)
		}
	}

	// 稳定排序：有日期的按时间倒序，无日期的排在最后并保持输入顺序
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].PublishedAt, out[j].PublishedAt
		switch {
		case pi != nil && pj != nil:
			return pi.After(*pj)
		case pi != nil:
			return true
		default:
			return false
		}
	})

	if a.maxItems > 0 && len(out) > a.maxItems {
		out = out[:a.maxItems]
	}
	return out
}

func hashLink(link string) string {
	h := sha1.New()
	h.Write([]byte(link))
	return hex.EncodeToString(h.Sum(nil))
}
