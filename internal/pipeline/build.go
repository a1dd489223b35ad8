package pipeline

import (
	"fmt"

	"github.com/rlwrld/newsclip/internal/collector"
	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/filter"
	"github.com/rlwrld/newsclip/internal/httpclient"
	"github.com/rlwrld/newsclip/internal/processor"
	"github.com/rlwrld/newsclip/internal/render"
	"github.com/rlwrld/newsclip/internal/summary"
)

// Build 从配置组装整条流水线。来源或规则的问题在这里暴露，
// 保证配置错误发生在任何网络请求之前。
func Build(cfg *config.Config) (*Pipeline, error) {
	sources, err := config.LoadSources(cfg.FeedsFile)
	if err != nil {
		return nil, err
	}
	rules, err := filter.Load(cfg.KeywordsFile)
	if err != nil {
		return nil, err
	}

	client := httpclient.New(cfg.FetchTimeout, cfg.UserAgent)
	opts := collector.Options{
		Client:      client,
		Extractor:   summary.New(client),
		ExtractBody: cfg.ExtractBody,
		WindowHours: cfg.WindowHours,
		HTMLLimit:   cfg.HTMLSourceLimit,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.FetchTimeout,
	}

	fetchers := make([]collector.Fetcher, 0, len(sources))
	for _, src := range sources {
		f, err := collector.New(src, opts)
		if err != nil {
			return nil, fmt.Errorf("build fetcher: %w", err)
		}
		fetchers = append(fetchers, f)
	}

	// 每个来源的总预算 = 列表页 + 若干篇文章详情
	perSource := cfg.FetchTimeout * 3

	return New(
		fetchers,
		processor.NewAggregator(rules, cfg.MaxItems),
		render.New(cfg.OutputDir),
		cfg.FetchConcurrency,
		perSource,
		cfg.WindowHours,
	), nil
}
