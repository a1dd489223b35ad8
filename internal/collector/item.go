package collector

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/httpclient"
	"github.com/rlwrld/newsclip/internal/summary"
)

// NewsItem 是所有来源归一化后的条目结构，也是输出 JSON 的稳定契约。
// Summary 为空串、PublishedAt 为 nil 都表示"缺失"，序列化时整个字段省略。
type NewsItem struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Source      string     `json:"source_name"`
	Tags        []string   `json:"tags,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]NewsItem, error)
}

// Options 是构建抓取器所需的共享依赖与限制
type Options struct {
	Client    *httpclient.Client
	Extractor *summary.Extractor
	// ExtractBody 控制是否为缺摘要的条目抓取正文
	ExtractBody bool
	// WindowHours 为 0 时不过滤时间窗口
	WindowHours int
	// HTMLLimit 限制单个 HTML 来源最多产出多少条
	HTMLLimit int
	UserAgent string
	Timeout   time.Duration
}

// New 按来源类型构建抓取器。link_pattern 在这里编译，
// 语法错误与来源配置错误同级，应让整个运行在抓取前失败。
func New(src config.Source, opts Options) (Fetcher, error) {
	switch src.Type {
	case config.SourceTypeRSS:
		return &rssFetcher{src: src, opts: opts}, nil
	case config.SourceTypeHTML:
		var pattern *regexp.Regexp
		if src.LinkPattern != "" {
			re, err := regexp.Compile("(?i)" + src.LinkPattern)
			if err != nil {
				return nil, fmt.Errorf("source %q: invalid link_pattern: %w", src.Name, err)
			}
			pattern = re
		}
		return &htmlFetcher{src: src, pattern: pattern, opts: opts}, nil
	default:
		return nil, fmt.Errorf("source %q: unknown type %q", src.Name, src.Type)
	}
}

// window 表示"最近 N 小时"的采集窗口
type window struct {
	hours int
	now   time.Time
}

func newWindow(hours int) window {
	return window{hours: hours, now: time.Now()}
}

// keep 判断条目是否进入结果集：窗口关闭或日期未知时保留，
// 已知日期只保留落在 [now-hours, now] 内的。
func (w window) keep(pub *time.Time) bool {
	if w.hours <= 0 || pub == nil {
		return true
	}
	start := w.now.Add(-time.Duration(w.hours) * time.Hour)
	return !pub.Before(start) && !pub.After(w.now)
}
