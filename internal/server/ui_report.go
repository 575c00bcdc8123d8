package server

const reportIndexHTML = `{{define "title"}}Reports | reportgrid{{end}}
{{define "content"}}
<div class="card">
  <h1>Runtime reports</h1>
  {{if .LastRescan}}<p class="muted">Last scan {{.LastRescan}}</p>{{end}}
  {{if .Reports}}
  <table>
    <thead><tr><th>Report</th><th>Imported</th><th>Passed</th><th>Failed</th><th>Skipped</th><th>Running</th></tr></thead>
    <tbody>
    {{range .Reports}}
      <tr>
        <td><a href="/reports/{{.ID}}">{{.Name}}</a>{{if .Description}}<div class="muted">{{.Description}}</div>{{end}}</td>
        <td class="muted">{{.ImportedUTC.Format "2006-01-02 15:04:05"}}</td>
        <td class="passed">{{.Counts.Passed}}</td>
        <td class="failed">{{.Counts.Failed}}</td>
        <td class="skipped">{{.Counts.Skipped}}</td>
        <td class="running">{{.Counts.Running}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
  {{else}}
  <p class="muted">No reports imported yet.</p>
  {{end}}
</div>
{{end}}`

const reportPageHTML = `{{define "title"}}{{.Name}} | reportgrid{{end}}
{{define "head"}}{{if gt .RefreshSeconds 0}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}" />{{end}}{{end}}
{{define "content"}}
<div class="card">
  <h1>{{.Name}}</h1>
  {{if .Description}}<p class="muted">{{.Description}}</p>{{end}}
  <div class="muted">{{.Counts.Total}} tests</div>
  <div class="summary-bar">
    {{range .Bars}}{{if .Count}}<a class="{{.Class}}" style="width: {{.Percent}}%" href="{{.URL}}" title="{{.Label}}: {{.Count}}">{{.Label}} {{.Count}}</a>{{end}}{{end}}
  </div>
  {{if .Config}}
  <table>
    <tbody>
    {{range .Config}}<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
  {{end}}
</div>
<div class="layout">
  <div class="card tree">
    <a id="all" href="{{.AllURL}}"{{if .AllActive}} class="active"{{end}}>All</a>
    {{template "groups" .Groups}}
  </div>
  <div>
    {{template "table" .Tests}}
    {{template "table" .Configs}}
  </div>
</div>
{{end}}

{{define "groups"}}{{if .}}<ul>{{range .}}
  <li><a id="{{.DOMID}}" href="{{.URL}}"{{if .Active}} class="active"{{end}}>{{.Key}}</a> <span class="muted">({{.Count}})</span>{{template "groups" .Children}}</li>
{{end}}</ul>{{end}}{{end}}

{{define "table"}}
<div class="card" id="table-{{.Name}}">
  <h2>{{.Title}}</h2>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="get">
    {{range .Hidden}}<input type="hidden" name="{{.Name}}" value="{{.Value}}" />{{end}}
    <input type="search" name="{{.FilterKey}}" value="{{.Filter}}" placeholder="Filter" />
    <select name="{{.SizeKey}}" data-autosubmit>
      {{$size := .Page.PageSize}}{{range .PageSizes}}<option value="{{.}}"{{if eq . $size}} selected{{end}}>{{.}}</option>{{end}}
    </select>
    <button type="submit">Apply</button>
  </form>
  <table>
    <thead><tr><th></th>{{range .Columns}}<th><a href="{{.URL}}"{{if .Active}} class="active"{{end}}>{{.Label}}{{if .Active}} ({{.Dir}}){{end}}</a></th>{{end}}<th>Stacktrace</th></tr></thead>
    <tbody>
    {{range .Rows}}
      <tr>
        <td><input type="checkbox" class="row-check" data-uuid="{{.UUID}}" /></td>
        <td class="{{lower .Record.Status}}">{{.Record.Status}}</td>
        {{if eq $.Name "tests"}}
        <td>{{.Record.Suite}}</td>
        <td>{{.Record.Test}}{{if .LocalConfig}}<div class="muted">{{range .LocalConfig}}{{.Key}}={{.Value}} {{end}}</div>{{end}}</td>
        {{else}}
        <td>{{.Record.Type}}</td>
        {{end}}
        <td>{{.Record.PackageInfo}}</td>
        <td>{{.Record.ClassName}}</td>
        <td>{{.Record.MethodName}}</td>
        {{if eq $.Name "tests"}}<td>{{.Record.Parameters}}</td>{{end}}
        <td>{{.Record.StartTime}}</td>
        <td>{{.Record.EndTime}}</td>
        <td>{{if .Record.Stacktrace}}<a href="{{.StacktraceURL}}">view</a>{{end}}</td>
      </tr>
    {{else}}
      <tr><td colspan="11" class="muted">No data to display</td></tr>
    {{end}}
    </tbody>
  </table>
  <div class="pager">
    {{if .Page.PageCount}}
    <a href="{{.FirstURL}}">First</a>
    <a href="{{.PrevURL}}">Prev</a>
    {{range .Strip}}<a href="{{.URL}}"{{if .Current}} class="current"{{end}}>{{.N}}</a>{{end}}
    <a href="{{.NextURL}}">Next</a>
    <a href="{{.LastURL}}">Last</a>
    {{end}}
    <span class="muted">{{if .Page.Count}}{{.Page.StartIndex}}-{{.Page.EndIndex}} of {{.Page.Total}}{{else}}0 of 0{{end}}</span>
  </div>
</div>
{{end}}`

const stacktraceHTML = `{{define "content"}}<div class="stacktrace-view">
  <h3>{{.Title}}</h3>
  <div class="stacktrace">{{.Body}}</div>
</div>{{end}}`
