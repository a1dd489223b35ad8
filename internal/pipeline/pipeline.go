package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rlwrld/newsclip/internal/collector"
	"github.com/rlwrld/newsclip/internal/processor"
	"github.com/rlwrld/newsclip/internal/render"
)

// Pipeline 串起一轮完整的 抓取→过滤→聚合→渲染。
// 单个来源失败只会被记录并产出零条，渲染失败才会让整轮失败。
type Pipeline struct {
	fetchers    []collector.Fetcher
	agg         *processor.Aggregator
	renderer    *render.Renderer
	concurrency int
	perSource   time.Duration
	windowHours int
}

func New(fetchers []collector.Fetcher, agg *processor.Aggregator, renderer *render.Renderer,
	concurrency int, perSourceTimeout time.Duration, windowHours int) *Pipeline {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pipeline{
		fetchers:    fetchers,
		agg:         agg,
		renderer:    renderer,
		concurrency: concurrency,
		perSource:   perSourceTimeout,
		windowHours: windowHours,
	}
}

// Run 执行一轮采集并落盘产物
func (p *Pipeline) Run(ctx context.Context) error {
	log.Println("start clip run...")
	start := time.Now()

	// 结果按注册顺序存放，抓取并发不影响聚合的确定性
	results := make([][]collector.NewsItem, len(p.fetchers))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.concurrency)

	for i, f := range p.fetchers {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, fetcher collector.Fetcher) {
			defer wg.Done()
			defer func() { <-sem }()

			name := fetcher.Name()
			log.Printf("fetch from %s...", name)

			fctx := ctx
			if p.perSource > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, p.perSource)
				defer cancel()
			}

			items, err := fetcher.Fetch(fctx)
			if err != nil {
				log.Printf("fetch %s error: %v", name, err)
				return
			}
			results[idx] = items
			log.Printf("%s done, fetched=%d items", name, len(items))
		}(i, f)
	}
	wg.Wait()

	candidates := 0
	for _, items := range results {
		candidates += len(items)
	}

	final := p.agg.Aggregate(results)

	stats := render.Stats{
		Sources:     len(p.fetchers),
		Candidates:  candidates,
		Final:       len(final),
		WindowHours: p.windowHours,
		GeneratedAt: time.Now(),
	}
	if err := p.renderer.Render(final, stats); err != nil {
		return err
	}

	log.Printf("clip run done: sources=%d candidates=%d final=%d elapsed=%s",
		stats.Sources, stats.Candidates, stats.Final, time.Since(start).Round(time.Millisecond))
	return nil
}
