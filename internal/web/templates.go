package web

const tmplDashboard = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px}
nav form{display:flex;gap:8px;align-items:center;margin-left:auto;flex-wrap:wrap}
nav label{font-size:11px;color:#8b949e}
nav select,nav input{background:#0d1117;color:#c9d1d9;border:1px solid #30363d;border-radius:4px;padding:2px 6px;font-size:12px}
nav button{background:#1f6feb;color:#fff;border:none;border-radius:4px;padding:3px 10px;font-size:12px;cursor:pointer}
nav button.ghost{background:#21262d;border:1px solid #30363d;color:#c9d1d9}
main{padding:16px;max-width:1400px;margin:0 auto}
h2{font-size:12px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:16px 0 8px}
.banner{border-radius:6px;padding:10px 14px;margin-bottom:14px;font-size:13px}
.banner.warn{background:#3d2300;border:1px solid #9e6a03;color:#f0b72f}
.banner.err{background:#3d1418;border:1px solid #da3633;color:#ff7b72}
.banner.ok{background:#0f2b18;border:1px solid #238636;color:#56d364}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:130px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
.grid{display:grid;grid-template-columns:1fr 1fr;gap:16px}
@media(max-width:900px){.grid{grid-template-columns:1fr}}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117}
.section-body{padding:8px 12px}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
tr:hover td{background:#1c2128}
.ok{color:#56d364}.err{color:#f87171}.crit{color:#d2a8ff}.dim{color:#8b949e}
canvas{display:block;width:100%}
.empty{padding:24px;text-align:center;color:#8b949e}
</style>
</head>
<body>
<nav>
  <span class="brand">{{.Title}}</span>
  <form method="GET" action="/">
    <label>days <input type="number" name="days" min="1" max="{{.MaxDays}}" value="{{.Days}}" style="width:56px"></label>
    <label>task <input type="text" name="task" value="{{.Task}}" style="width:120px" placeholder="all"></label>
    <label>level <select name="level">
      <option value="">all</option>
      <option value="INFO" {{if eq .Level "INFO"}}selected{{end}}>INFO</option>
      <option value="ERROR" {{if eq .Level "ERROR"}}selected{{end}}>ERROR</option>
      <option value="CRITICAL" {{if eq .Level "CRITICAL"}}selected{{end}}>CRITICAL</option>
    </select></label>
    <label>source <select name="source">
      <option value="">all</option>
      <option value="local" {{if eq .Source "local"}}selected{{end}}>local</option>
      <option value="github" {{if eq .Source "github"}}selected{{end}}>github</option>
    </select></label>
    <button type="submit">Apply</button>
    <button type="button" class="ghost" onclick="refreshData()">Refresh</button>
  </form>
</nav>
<main>
{{if .FetchError}}<div class="banner err">Failed to fetch log records. Showing an empty view; try refreshing.</div>{{end}}
{{if .Truncated}}<div class="banner warn">The window holds more rows than the fetch cap; oldest rows are not shown.</div>{{end}}
<div id="alert-banner"></div>

<div class="cards">
  <div class="card"><div class="val" id="m-total">0</div><div class="lbl">Total Runs</div></div>
  <div class="card"><div class="val ok" id="m-success">0</div><div class="lbl">Success</div></div>
  <div class="card"><div class="val err" id="m-failure">0</div><div class="lbl">Failed</div></div>
  <div class="card"><div class="val" id="m-rate">0%</div><div class="lbl">Success Rate</div></div>
  <div class="card"><div class="val" id="m-scripts">0</div><div class="lbl">Scripts</div></div>
</div>

{{if .NoData}}<div class="banner warn">No data in range. Ensure scripts have been executed within the selected window.</div>{{end}}

<div class="grid">
  <div class="section"><div class="section-hdr">Daily Execution Trend</div>
    <div class="section-body"><canvas id="trend" height="180"></canvas></div></div>
  <div class="section"><div class="section-hdr">Result Distribution</div>
    <div class="section-body"><canvas id="levels" height="180"></canvas></div></div>
</div>

<div class="section"><div class="section-hdr">Latest Run Per Task</div>
  <table id="latest"><thead><tr><th>Task</th><th>Status</th><th>Message</th><th>Source</th><th>Last Run</th></tr></thead><tbody></tbody></table></div>

<div class="section"><div class="section-hdr">Script Execution Statistics</div>
  <table id="scripts"><thead><tr><th>Script</th><th>Total</th><th>Success</th><th>Failed</th><th>Success Rate</th></tr></thead><tbody></tbody></table></div>

<div class="grid">
  <div class="section"><div class="section-hdr">Recent Errors</div>
    <table id="errors"><thead><tr><th>Task</th><th>Time</th><th>Message</th></tr></thead><tbody></tbody></table></div>
  <div class="section"><div class="section-hdr">Errors By Script</div>
    <table id="ranking"><thead><tr><th>Script</th><th>Errors</th></tr></thead><tbody></tbody></table></div>
</div>

<div class="grid">
  <div class="section"><div class="section-hdr">Run Source Breakdown</div>
    <table id="sources"><thead><tr><th>Source</th><th>Total</th><th>Success</th><th>Failed</th></tr></thead><tbody></tbody></table></div>
  <div class="section"><div class="section-hdr">Execution Duration Per Script (seconds)</div>
    <table id="durations"><thead><tr><th>Script</th><th>Runs</th><th>Min</th><th>Median</th><th>Mean</th><th>Max</th></tr></thead><tbody></tbody></table></div>
</div>

<p class="dim" id="footer"></p>
</main>
<script>
const DATA = {{.JSONData}};
const COLORS = {INFO: "{{.SuccessColor}}", ERROR: "{{.ErrorColor}}", CRITICAL: "{{.CriticalColor}}"};

function refreshData() {
  fetch("/v1/dashboard/refresh?days=" + DATA.days, {method: "POST"}).then(() => location.reload());
}

function esc(s) {
  const d = document.createElement("div");
  d.textContent = s == null ? "" : String(s);
  return d.innerHTML;
}

function fmtTime(iso) {
  if (!iso) return "—";
  return new Date(iso).toLocaleString();
}

function median(samples) {
  const s = samples.slice().sort((a, b) => a - b);
  const m = Math.floor(s.length / 2);
  return s.length % 2 ? s[m] : (s[m - 1] + s[m]) / 2;
}

function fillCards() {
  const o = DATA.overview;
  document.getElementById("m-total").textContent = o.total;
  document.getElementById("m-success").textContent = o.success;
  document.getElementById("m-failure").textContent = o.failure;
  document.getElementById("m-rate").textContent = (o.success_rate * 100).toFixed(1) + "%";
  document.getElementById("m-scripts").textContent = o.distinct_scripts;
}

function fillAlert() {
  const el = document.getElementById("alert-banner");
  if (DATA.fetch_error) return;
  if (DATA.alert.count > 0) {
    el.innerHTML = '<div class="banner err">' + DATA.alert.count +
      ' task run(s) failed. Failed scripts: ' + DATA.alert.scripts.map(esc).join(", ") + '</div>';
  } else if (DATA.overview.total > 0) {
    el.innerHTML = '<div class="banner ok">All tasks are running successfully.</div>';
  }
}

function levelClass(level) {
  if (level === "INFO") return "ok";
  if (level === "CRITICAL") return "crit";
  return "err";
}

function fillTable(id, rows, cols) {
  const tbody = document.querySelector("#" + id + " tbody");
  if (!rows || rows.length === 0) {
    tbody.innerHTML = '<tr><td colspan="' + cols.length + '" class="empty">no data</td></tr>';
    return;
  }
  tbody.innerHTML = rows.map(r => "<tr>" + cols.map(c => "<td>" + c(r) + "</td>").join("") + "</tr>").join("");
}

function fillTables() {
  fillTable("latest", DATA.latest_runs, [
    r => esc(r.task_name),
    r => '<span class="' + levelClass(r.level) + '">' + esc(r.level) + '</span>',
    r => r.level === "INFO" ? '<span class="dim">—</span>' : esc(r.message),
    r => esc(r.run_source),
    r => fmtTime(r.timestamp),
  ]);
  fillTable("scripts", DATA.script_stats, [
    r => esc(r.task_name), r => r.total, r => r.success, r => r.failure,
    r => (r.success_rate * 100).toFixed(1) + "%",
  ]);
  fillTable("errors", DATA.recent_errors, [
    r => esc(r.task_name), r => fmtTime(r.timestamp), r => esc(r.message),
  ]);
  fillTable("ranking", DATA.error_ranking, [r => esc(r.task_name), r => r.count]);
  fillTable("sources", DATA.sources, [
    r => esc(r.run_source), r => r.total, r => r.success, r => r.failure,
  ]);
  fillTable("durations", DATA.duration_stats, [
    r => esc(r.task_name), r => r.count,
    r => Math.min.apply(null, r.samples).toFixed(2),
    r => median(r.samples).toFixed(2),
    r => r.mean.toFixed(2), r => r.max.toFixed(2),
  ]);
}

function drawTrend() {
  const canvas = document.getElementById("trend");
  const ctx = canvas.getContext("2d");
  canvas.width = canvas.clientWidth;
  const days = DATA.daily_trend || [];
  if (days.length === 0) return;
  const w = canvas.width, h = canvas.height, pad = 24;
  const maxN = Math.max(...days.map(d => d.total), 1);
  const bw = (w - pad * 2) / days.length;
  days.forEach((d, i) => {
    const x = pad + i * bw;
    const sh = (d.success / maxN) * (h - pad * 2);
    const fh = (d.failure / maxN) * (h - pad * 2);
    ctx.fillStyle = COLORS.INFO;
    ctx.fillRect(x + 2, h - pad - sh, Math.max(bw - 4, 2), sh);
    ctx.fillStyle = COLORS.ERROR;
    ctx.fillRect(x + 2, h - pad - sh - fh, Math.max(bw - 4, 2), fh);
    if (days.length <= 31) {
      ctx.fillStyle = "#8b949e";
      ctx.font = "9px monospace";
      ctx.save();
      ctx.translate(x + bw / 2, h - 4);
      ctx.textAlign = "center";
      ctx.fillText(d.date.slice(5), 0, 0);
      ctx.restore();
    }
  });
}

function drawLevels() {
  const canvas = document.getElementById("levels");
  const ctx = canvas.getContext("2d");
  canvas.width = canvas.clientWidth;
  const o = DATA.overview;
  const other = o.total - o.success - o.failure;
  const slices = [
    {label: "INFO", n: o.success, color: COLORS.INFO},
    {label: "ERROR/CRITICAL", n: o.failure, color: COLORS.ERROR},
    {label: "other", n: other, color: "#8b949e"},
  ].filter(s => s.n > 0);
  if (slices.length === 0) return;
  const cx = canvas.width / 2 - 60, cy = canvas.height / 2, r = Math.min(cx, cy) - 8;
  let angle = -Math.PI / 2;
  slices.forEach(s => {
    const span = (s.n / o.total) * Math.PI * 2;
    ctx.beginPath();
    ctx.moveTo(cx, cy);
    ctx.arc(cx, cy, r, angle, angle + span);
    ctx.closePath();
    ctx.fillStyle = s.color;
    ctx.fill();
    angle += span;
  });
  let ly = 20;
  slices.forEach(s => {
    ctx.fillStyle = s.color;
    ctx.fillRect(cx + r + 16, ly - 8, 10, 10);
    ctx.fillStyle = "#c9d1d9";
    ctx.font = "11px monospace";
    ctx.fillText(s.label + " (" + s.n + ")", cx + r + 32, ly);
    ly += 18;
  });
}

function fillFooter() {
  let txt = "window: " + DATA.days + "d · rows in window: " + DATA.total_in_window +
    " · fetched: " + fmtTime(DATA.fetched_at);
  document.getElementById("footer").textContent = txt;
}

fillCards();
fillAlert();
fillTables();
drawTrend();
drawLevels();
fillFooter();
</script>
</body>
</html>
`
