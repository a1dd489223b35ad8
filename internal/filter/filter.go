package filter

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RuleSet 持有编译好的关键词规则。
// 包含规则为空时放行全部条目；排除规则命中即丢弃。
type RuleSet struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

type keywordFile struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Load 读取 keywords.yml 并编译规则，正则语法错误视为配置错误
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file %s: %w", path, err)
	}

	var f keywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keywords file %s: %w", path, err)
	}

	return Compile(f.Include, f.Exclude)
}

// Compile 按大小写不敏感方式编译 include/exclude 模式
func Compile(include, exclude []string) (*RuleSet, error) {
	rs := &RuleSet{}

	for _, p := range include {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		rs.include = append(rs.include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		rs.exclude = append(rs.exclude, re)
	}

	return rs, nil
}

// Matches 对标题与摘要拼接后的文本做子串匹配。
// 规则：至少命中一个 include（如配置了的话），且没有命中任何 exclude。
func (rs *RuleSet) Matches(title, summary string) bool {
	text := title
	if summary != "" {
		text += " " + summary
	}

	if len(rs.include) > 0 {
		hit := false
		for _, re := range rs.include {
			if re.MatchString(text) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, re := range rs.exclude {
		if re.MatchString(text) {
			return false
		}
	}
	return true
}
