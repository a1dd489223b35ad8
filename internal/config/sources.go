package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 数据源类型：RSS 订阅或需要扫描链接的 HTML 列表页
const (
	SourceTypeRSS  = "rss"
	SourceTypeHTML = "html"
)

// Source 描述一个配置化的新闻来源，运行期间只读
type Source struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
	// LinkPattern 仅对 html 类型生效，用于筛选列表页上的文章链接
	LinkPattern string   `yaml:"link_pattern"`
	Tags        []string `yaml:"tags"`
}

type sourceFile struct {
	Feeds []Source `yaml:"feeds"`
}

// LoadSources 读取 feeds.yml 并校验每个条目。
// 任何缺字段或未知类型都视为配置错误，调用方应在抓取前终止。
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", path, err)
	}

	var f sourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}

	for i, s := range f.Feeds {
		if s.Name == "" {
			return nil, fmt.Errorf("source #%d: missing name", i+1)
		}
		if s.URL == "" {
			return nil, fmt.Errorf("source %q: missing url", s.Name)
		}
		switch s.Type {
		case SourceTypeRSS, SourceTypeHTML:
		case "":
			return nil, fmt.Errorf("source %q: missing type", s.Name)
		default:
			return nil, fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
	}

	return f.Feeds, nil
}
