package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rlwrld/newsclip/internal/collector"
)

const (
	jsonFileName = "data.json"
	htmlFileName = "index.html"
)

// Stats 汇总一轮运行的数字，展示在页面头部
type Stats struct {
	Sources     int
	Candidates  int
	Final       int
	WindowHours int
	GeneratedAt time.Time
}

// Renderer 把聚合结果落盘为 data.json 和 index.html。
// 两个文件都先写临时文件再重命名，避免发布半成品。
type Renderer struct {
	outputDir string
}

func New(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// Render 写出全部产物。空列表也会生成合法的"暂无结果"页面。
func (r *Renderer) Render(items []collector.NewsItem, stats Stats) error {
	if items == nil {
		items = []collector.NewsItem{}
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", r.outputDir, err)
	}

	jsonBytes, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	htmlBytes, err := r.buildPage(items, stats)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	if err := atomicWrite(filepath.Join(r.outputDir, jsonFileName), jsonBytes); err != nil {
		return fmt.Errorf("write %s: %w", jsonFileName, err)
	}
	if err := atomicWrite(filepath.Join(r.outputDir, htmlFileName), htmlBytes); err != nil {
		return fmt.Errorf("write %s: %w", htmlFileName, err)
	}
	return nil
}

type itemView struct {
	Title     string
	Link      string
	Source    string
	Tags      string
	Summary   string
	TimeLabel string
}

type dateGroup struct {
	Label string
	Items []itemView
}

type pageData struct {
	Stats  Stats
	Groups []dateGroup
	Empty  bool
	// Data 是 encoding/json 输出的条目数组，json.Marshal 默认会把
	// < > & 转义成 < 等，因此可以安全内嵌进 <script>
	Data template.JS
}

func displayLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

func (r *Renderer) buildPage(items []collector.NewsItem, stats Stats) ([]byte, error) {
	loc := displayLocation()

	var groups []dateGroup
	byLabel := make(map[string]int)
	for _, it := range items {
		label := "日期未知"
		timeLabel := ""
		if it.PublishedAt != nil {
			local := it.PublishedAt.In(loc)
			label = local.Format("2006-01-02")
			timeLabel = local.Format("15:04")
		}

		idx, ok := byLabel[label]
		if !ok {
			idx = len(groups)
			byLabel[label] = idx
			groups = append(groups, dateGroup{Label: label})
		}
		groups[idx].Items = append(groups[idx].Items, itemView{
			Title:     it.Title,
			Link:      it.Link,
			Source:    it.Source,
			Tags:      strings.Join(it.Tags, ", "),
			Summary:   it.Summary,
			TimeLabel: timeLabel,
		})
	}

	embedded, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	data := pageData{
		Stats:  stats,
		Groups: groups,
		Empty:  len(items) == 0,
		Data:   template.JS(embedded),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// atomicWrite 先写同目录下的临时文件再重命名，保证读者看不到半截文件
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html><meta charset="utf-8">
<title>新闻剪报 — 最近 {{.Stats.WindowHours}} 小时</title>
<style>
body{font-family:system-ui,apple-system,sans-serif;margin:24px;max-width:900px}
.grid{display:grid;gap:12px}
.item{padding:12px;border:1px solid #eee;border-radius:12px}
.tags{opacity:.7;font-size:12px}
.meta{opacity:.8;font-size:13px;margin-bottom:12px}
.summary{padding:12px;margin:12px 0;border:2px solid #ddd;border-radius:12px;background:#fafafa}
.date{margin:18px 0 6px;font-size:15px;opacity:.85}
h1{margin-bottom:4px}
</style>
<h1>新闻剪报</h1>
<div class=meta>生成时间: {{.Stats.GeneratedAt.Format "2006-01-02 15:04"}}</div>

<div class=summary>
<b>本轮统计</b><br>
- 来源数: {{.Stats.Sources}} 个<br>
- 候选条目: {{.Stats.Candidates}} 条<br>
- 关键词过滤后: {{.Stats.Final}} 条<br>
</div>

{{if .Empty}}
<p>暂无符合条件的新闻。</p>
{{else}}
<input id=q placeholder="搜索/筛选..." oninput="f(this.value)" style="padding:10px;border:1px solid #ddd;border-radius:10px;width:100%;max-width:520px">
<div id=static>
{{range .Groups}}
<h2 class=date>{{.Label}}</h2>
<div class=grid>
{{range .Items}}
<div class=item>
<div class=tags>{{.Source}}{{if .Tags}} · {{.Tags}}{{end}}{{if .TimeLabel}} · {{.TimeLabel}}{{end}}</div>
<h3><a href="{{.Link}}" target=_blank rel=noopener>{{.Title}}</a></h3>
{{if .Summary}}<div>{{.Summary}}</div>{{end}}
</div>
{{end}}
</div>
{{end}}
</div>
<div class=grid id=list hidden></div>
<script>
let data={{.Data}};
let el=document.getElementById('list'),st=document.getElementById('static');
function esc(s){return (s||'').replace(/[&<>"']/g,c=>({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]))}
function r(x){el.innerHTML=x.map(i=>` + "`" + `<div class=item>
<div class=tags>${esc(i.source_name)}</div>
<h3><a href="${encodeURI(i.link)}" target=_blank rel=noopener>${esc(i.title)}</a></h3>
<div>${esc(i.summary||'')}</div>
</div>` + "`" + `).join('');}
function f(q){q=q.toLowerCase();if(!q){st.hidden=false;el.hidden=true;return}
st.hidden=true;el.hidden=false;
r(data.filter(i=>((i.title||'')+(i.summary||'')+(i.source_name||'')).toLowerCase().includes(q)))}
</script>
{{end}}
`))
