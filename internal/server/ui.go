package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

var uiFuncs = template.FuncMap{
	"css":   func() template.CSS { return template.CSS(uiPageChromeCSS) },
	"lower": strings.ToLower,
}

// pageTemplates holds every page parsed over the shared layout.
var pageTemplates = parsePages(map[string]string{
	"report_index": reportIndexHTML,
	"report_page":  reportPageHTML,
	"stacktrace":   stacktraceHTML,
	"grid_nodes":   gridNodesHTML,
	"grid_restart": gridRestartHTML,
	"grid_upgrade": gridUpgradeHTML,
	"grid_sauce":   gridSauceHTML,
})

// fragments render without the layout.
var fragments = map[string]bool{"stacktrace": true}

func parsePages(pages map[string]string) map[string]*template.Template {
	base := template.Must(template.New("layout").Funcs(uiFuncs).Parse(layoutHTML))
	out := make(map[string]*template.Template, len(pages))
	for name, body := range pages {
		out[name] = template.Must(template.Must(base.Clone()).Parse(body))
	}
	return out
}

func renderHTML(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := pageTemplates[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	root := "layout"
	if fragments[name] {
		root = "content"
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, root, data); err != nil {
		slog.Error("render page", "page", name, "error", err)
		http.Error(w, "render page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func sharedJSHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write([]byte(uiSharedJS))
}

const layoutHTML = `{{define "layout"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{block "title" .}}reportgrid{{end}}</title>
  {{block "head" .}}{{end}}
  <style>{{css}}</style>
  <script src="/ui/shared.js" defer></script>
</head>
<body>
<main>
  <nav>
    <a class="nav-btn" href="/">Reports</a>
    <a class="nav-btn" href="/grid/nodes">Nodes</a>
    <a class="nav-btn" href="/grid/restart">Restart</a>
    <a class="nav-btn" href="/grid/upgrade">Auto upgrade</a>
    <a class="nav-btn" href="/grid/sauce">Sauce</a>
  </nav>
  {{template "content" .}}
</main>
</body>
</html>{{end}}`
