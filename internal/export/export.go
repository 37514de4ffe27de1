// ABOUTME: Static HTML export of a snippet collection
// ABOUTME: Renders snippet descriptions as markdown via goldmark

package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/zenshell/zenshell/internal/document"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
article { border: 1px solid #e5e5e5; border-radius: 12px; padding: 1rem 1.25rem; margin-bottom: 1rem; }
pre { background: #2d2d2d; color: #7ee787; padding: 0.75rem 1rem; border-radius: 8px; overflow-x: auto; }
pre.wrap { white-space: pre-wrap; word-break: break-all; }
.tag { display: inline-block; background: #f0f0f0; border-radius: 6px; padding: 0.1rem 0.5rem; font-size: 0.75rem; margin-right: 0.25rem; }
.source { font-size: 0.75rem; color: #888; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Entries}}<article>
<h2>{{.Title}}</h2>
{{if .Description}}<div>{{.Description}}</div>{{end}}
<pre{{if .WrapCode}} class="wrap"{{end}}><code>{{.Command}}</code></pre>
{{range .Tags}}<span class="tag">{{.}}</span>{{end}}
{{if .SourceName}}<p class="source">Source: <a href="{{.SourceURL}}">{{.SourceName}}</a></p>{{end}}
</article>
{{end}}</body>
</html>
`))

type entry struct {
	Title       string
	Description template.HTML
	Command     string
	WrapCode    bool
	Tags        []string
	SourceName  string
	SourceURL   string
}

type page struct {
	Title   string
	Entries []entry
}

// Render produces a standalone HTML page for the given snippets. The
// description field is treated as markdown; everything else is escaped.
func Render(title string, scripts []document.Snippet) ([]byte, error) {
	p := page{Title: title}
	for _, s := range scripts {
		e := entry{
			Title:    s.Title,
			Command:  s.Command,
			WrapCode: s.WrapCode,
			Tags:     s.Tags,
		}
		if s.Description != "" {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(s.Description), &buf); err != nil {
				return nil, fmt.Errorf("rendering description for %q: %w", s.Title, err)
			}
			e.Description = template.HTML(buf.String())
		}
		if s.Source != nil {
			e.SourceName = s.Source.Name
			e.SourceURL = s.Source.URL
		}
		p.Entries = append(p.Entries, e)
	}

	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, p); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}
