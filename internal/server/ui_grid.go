package server

const gridNodesHTML = `{{define "title"}}Nodes | reportgrid{{end}}
{{define "content"}}
<div class="card">
  <h1>Grid nodes</h1>
  {{if .HubVersion}}<p class="muted">Hub version {{.HubVersion}}</p>{{end}}
</div>
{{range .Nodes}}
<div class="card node">
  <div class="{{.HeaderClass}}">
    {{.Node.Configuration.RemoteHost}}
    <span class="muted">{{.VersionInfo}}</span>
    {{if .Outdated}}<span class="outdated">outdated</span>{{end}}
  </div>
  <div class="layout">
    <table><tbody>
      {{range .Left}}{{if not .Hidden}}<tr><th>{{.Label}}</th><td>{{.Value}}{{if .Unit}} {{.Unit}}{{end}}</td></tr>{{end}}{{end}}
    </tbody></table>
    <table><tbody>
      {{range .Right}}{{if not .Hidden}}<tr><th>{{.Label}}</th><td>{{.Value}}{{if .Unit}} {{.Unit}}{{end}}</td></tr>{{end}}{{end}}
    </tbody></table>
  </div>
  <div>
    {{range .Slots}}<span class="slot{{if .Busy}} busy{{end}}" title="{{.Tooltip}}">{{if .HasIcon}}<img src="/grid/icons/{{.Icon}}" alt="{{.BrowserType}}" />{{else}}{{.BrowserType}}{{end}} {{.Version}}</span>{{end}}
  </div>
  {{if .Node.LogsLocation}}<p class="muted">Logs: {{.Node.LogsLocation}}</p>{{end}}
</div>
{{else}}
<div class="card"><p class="muted">No nodes registered.</p></div>
{{end}}
{{end}}`

const gridRestartHTML = `{{define "title"}}Restart nodes | reportgrid{{end}}
{{define "content"}}
<div class="card">
  <h1>Force restart</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
  <form method="post" action="/grid/restart">
    <input type="hidden" name="form_id" value="restart_nodes" />
    <table>
      <thead><tr><th></th><th>Node</th><th>Status</th><th>Shutting down</th></tr></thead>
      <tbody>
      {{range .Nodes}}
        <tr>
          <td><input type="checkbox" name="nodes" value="{{.ID}}" /></td>
          <td>{{.ID}}</td>
          <td>{{.Status}}</td>
          <td>{{.IsShuttingDown}}</td>
        </tr>
      {{else}}
        <tr><td colspan="4" class="muted">No nodes registered.</td></tr>
      {{end}}
      </tbody>
    </table>
    <button type="submit">Restart selected</button>
  </form>
</div>
{{end}}`

const gridUpgradeHTML = `{{define "title"}}Auto upgrade | reportgrid{{end}}
{{define "content"}}
<div class="card">
  <h1>Auto upgrade</h1>
  {{range .Errors}}<p class="error">{{.}}</p>{{end}}
  {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
  <form method="post" action="/grid/upgrade">
    <textarea name="downloadJSON">{{.DownloadJSON}}</textarea>
    <button type="submit">Save download list</button>
  </form>
</div>
{{if .Artifacts}}
<div class="card">
  <table>
    <thead><tr><th>Artifact</th><th>Roles</th><th>Platforms</th></tr></thead>
    <tbody>
    {{range .Artifacts}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{range $i, $r := .Roles}}{{if $i}}, {{end}}{{$r}}{{end}}</td>
        <td>{{range $p, $d := .Platforms}}<div>{{$p}}: <a href="{{$d.URL}}">{{$d.URL}}</a></div>{{end}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
</div>
{{end}}
{{end}}`

const gridSauceHTML = `{{define "title"}}Sauce | reportgrid{{end}}
{{define "content"}}
<div class="card">
  <h1>Sauce Labs</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
  {{if .UserURL}}<p class="muted">Account {{.UserURL}}</p>{{end}}
  <form method="post" action="/grid/sauce">
    <p><label>User name <input name="username" value="{{.UserName}}" /></label></p>
    <p><label>Access key <input name="accessKey" type="password" /></label></p>
    <p><label>Sauce URL <input name="sauceURL" value="{{.SauceURL}}" /></label></p>
    <button type="submit">Save</button>
  </form>
</div>
{{end}}`
