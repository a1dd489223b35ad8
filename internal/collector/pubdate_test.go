package collector

import (
	"testing"
	"time"
)

func TestPublishedFromDocMetaTags(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string // RFC3339, UTC
	}{
		{
			name: "article:published_time",
			html: `<head><meta property="article:published_time" content="2026-08-28T10:30:00+08:00"/></head>`,
			want: "2026-08-28T02:30:00Z",
		},
		{
			name: "datePublished itemprop",
			html: `<head><meta itemprop="datePublished" content="2026-08-28"/></head>`,
			want: "2026-08-28T00:00:00Z",
		},
		{
			name: "pubdate meta",
			html: `<head><meta name="pubdate" content="2026/08/28 09:00:00"/></head>`,
			want: "2026-08-28T09:00:00Z",
		},
		{
			name: "time element",
			html: `<body><time datetime="2026-08-28T12:00:00Z">今天</time></body>`,
			want: "2026-08-28T12:00:00Z",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := parseDoc([]byte("<html>" + tc.html + "</html>"))
			if err != nil {
				t.Fatalf("parseDoc error: %v", err)
			}
			got := publishedFromDoc(doc)
			if got == nil {
				t.Fatalf("expected a parsed time")
			}
			if got.Format(time.RFC3339) != tc.want {
				t.Fatalf("published = %s, want %s", got.Format(time.RFC3339), tc.want)
			}
		})
	}
}

func TestPublishedFromDocPriority(t *testing.T) {
	// published_time 应优先于 og:updated_time
	html := `<html><head>
<meta property="og:updated_time" content="2026-08-29T00:00:00Z"/>
<meta property="article:published_time" content="2026-08-28T00:00:00Z"/>
</head></html>`
	doc, _ := parseDoc([]byte(html))
	got := publishedFromDoc(doc)
	if got == nil || got.Day() != 28 {
		t.Fatalf("expected article:published_time to win, got %v", got)
	}
}

func TestPublishedFromDocAbsent(t *testing.T) {
	doc, _ := parseDoc([]byte(`<html><body><p>没有任何日期</p></body></html>`))
	if got := publishedFromDoc(doc); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	doc, _ = parseDoc([]byte(`<html><head><meta name="pubdate" content="不是日期"/></head></html>`))
	if got := publishedFromDoc(doc); got != nil {
		t.Fatalf("expected nil for unparseable value, got %v", got)
	}
}

func TestWindowKeep(t *testing.T) {
	now := time.Now()
	w := window{hours: 24, now: now}

	recent := now.Add(-2 * time.Hour)
	stale := now.Add(-30 * time.Hour)
	future := now.Add(2 * time.Hour)

	if !w.keep(&recent) {
		t.Fatalf("recent item should be kept")
	}
	if w.keep(&stale) {
		t.Fatalf("stale item should be dropped")
	}
	if w.keep(&future) {
		t.Fatalf("future-dated item should be dropped")
	}
	if !w.keep(nil) {
		t.Fatalf("undated item should be kept")
	}

	off := window{hours: 0, now: now}
	if !off.keep(&stale) {
		t.Fatalf("window disabled should keep everything")
	}
}

func TestParseAnyTimeLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-08-28T10:00:00Z",
		"2026-08-28 10:00:00",
		"2026-08-28",
		"Fri, 28 Aug 2026 10:00:00 +0800",
	} {
		if parseAnyTime(s) == nil {
			t.Fatalf("parseAnyTime(%q) = nil", s)
		}
	}
	if parseAnyTime("") != nil || parseAnyTime("昨天") != nil {
		t.Fatalf("expected nil for non-dates")
	}
}
