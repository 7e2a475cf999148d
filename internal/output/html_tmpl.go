// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --accent: #0d6efd; --error: #dc3545; --missing: #b58105;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --accent: #5b9aff; --error: #f55; --missing: #ffc107;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; display: flex; min-height: 100vh; }
aside { width: 260px; flex-shrink: 0; background: var(--card-bg); border-right: 1px solid var(--border); padding: 1.5rem 1rem; }
aside h2 { font-size: 1rem; margin-bottom: .75rem; }
aside label { display: block; padding: .375rem .5rem; border-radius: 4px; cursor: pointer; font-size: .875rem; }
aside label:hover { background: var(--hover); }
aside input { margin-right: .5rem; }
main { flex: 1; padding: 1.5rem 2rem; max-width: 1400px; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.75rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.pane h2 { font-size: 1.375rem; margin-bottom: 1rem; }
.columns { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
@media (max-width: 900px) { .columns { grid-template-columns: 1fr; } body { flex-direction: column; } aside { width: 100%; } }
.box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; overflow: auto; }
.box h3 { font-size: .9375rem; margin-bottom: .5rem; }
.box img { width: 100%; height: auto; background: #fff; border-radius: 4px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .375rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
th.num, td.num { text-align: right; font-variant-numeric: tabular-nums; }
td.missing { color: var(--missing); }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
.exports { margin-top: .75rem; font-size: .8125rem; color: var(--muted); }
.exports a { color: var(--accent); margin-right: .5rem; }
.insight { margin-top: 1rem; font-size: .875rem; white-space: pre-wrap; }
.insight button { padding: .25rem .75rem; border: 1px solid var(--border); border-radius: 4px; background: var(--bg); color: var(--fg); cursor: pointer; }
.error { border: 1px solid var(--error); color: var(--error); border-radius: 8px; padding: 1rem; }
.hidden { display: none; }
footer { margin-top: 2rem; color: var(--muted); font-size: .75rem; }
</style>
</head>
<body>
<aside>
  <h2>{{.MenuHeader}}</h2>
  <form id="menu" method="get" action="/">
  {{range .Menu}}
    <label><input type="radio" name="analysis" value="{{.Name}}"{{if .Selected}} checked{{end}}>{{.Label}}</label>
  {{end}}
  {{if .Live}}<noscript><button type="submit">Show</button></noscript>{{end}}
  </form>
</aside>
<main>
<header>
  <h1>{{.Title}}</h1>
  <p>{{.Subtitle}}</p>
  {{with .Summary}}<p>{{.Source}} &middot; {{.Rows}} products</p>{{end}}
</header>

{{if .Error}}
<section class="error" id="error">{{.Error}}</section>
{{else}}
{{range .Panes}}
<section class="pane{{if not .Active}} hidden{{end}}" id="pane-{{.Name}}" data-pane="{{.Name}}">
  <h2>{{.Heading}}</h2>
  <div class="columns">
    <div class="box">
      <h3>{{.TableTitle}}</h3>
      <table>
        <thead><tr>{{range .Columns}}<th{{if .Numeric}} class="num"{{end}}>{{.Name}}</th>{{end}}</tr></thead>
        <tbody>
        {{range .Rows}}<tr>{{range .}}<td class="{{if .Numeric}}num{{end}}{{if .Missing}} missing{{end}}">{{.Text}}</td>{{end}}</tr>
        {{end}}
        </tbody>
      </table>
      {{if .Exports}}<div class="exports">Download:{{$name := .Name}}{{range .Exports}} <a href="/export/{{$name}}?format={{.}}">{{.}}</a>{{end}}</div>{{end}}
    </div>
    <div class="box">
      <h3>{{.ChartTitle}}</h3>
      <img src="{{.ChartSrc}}" alt="{{.ChartAlt}}">
    </div>
  </div>
  {{if $.Insight}}<div class="insight" data-insight="{{.Name}}"><button type="button">Summarize</button><p></p></div>{{end}}
</section>
{{end}}
{{end}}

<footer>{{if .GeneratedAt}}Generated {{.GeneratedAt}}{{end}}</footer>
</main>

<script>
(function(){
  var live = {{.Live}};
  var radios = document.querySelectorAll("#menu input[name=analysis]");
  for (var i = 0; i < radios.length; i++) {
    radios[i].addEventListener("change", function(){
      if (live) { document.getElementById("menu").submit(); return; }
      var panes = document.querySelectorAll("section.pane");
      for (var j = 0; j < panes.length; j++) {
        panes[j].classList.toggle("hidden", panes[j].dataset.pane !== this.value);
      }
    });
  }
  var boxes = document.querySelectorAll("div.insight");
  for (var k = 0; k < boxes.length; k++) {
    (function(box){
      box.querySelector("button").addEventListener("click", function(){
        var out = box.querySelector("p");
        out.textContent = "…";
        fetch("/api/analyses/" + encodeURIComponent(box.dataset.insight) + "/insight")
          .then(function(r){ return r.json(); })
          .then(function(d){ out.textContent = d.insight || (d.error && d.error.message) || ""; })
          .catch(function(e){ out.textContent = String(e); });
      });
    })(boxes[k]);
  }
})();
</script>
</body>
</html>`
