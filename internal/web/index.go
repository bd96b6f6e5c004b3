package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>wonfolio</title>
<style>
  body { font-family: monospace; background: #111; color: #ddd; margin: 2rem; }
  h1 { color: #73F59F; }
  table { border-collapse: collapse; margin-bottom: 1.5rem; }
  th, td { border: 1px solid #444; padding: 4px 10px; text-align: right; }
  th { color: #7D56F4; }
  td:first-child, th:first-child { text-align: left; }
  .unresolved { color: #888; }
  .total { font-size: 1.2rem; color: #73F59F; }
</style>
</head>
<body>
<h1>wonfolio</h1>
<div id="status">waiting for first report...</div>
<div id="content"></div>
<script>
const krw = v => "₩" + Math.round(Number(v)).toLocaleString("en-US");

function renderReport(r) {
  document.getElementById("status").textContent =
    "run " + r.id + " at " + new Date(r.created_at).toLocaleString();

  let html = "<table><tr><th>Asset</th><th>Quantity</th><th>Price</th><th>Value</th><th>Source</th></tr>";
  for (const rec of r.records) {
    const price = rec.price_krw !== null ? krw(rec.price_krw) : "-";
    const value = rec.value_krw !== null ? krw(rec.value_krw) : "-";
    const cls = rec.value_krw === null ? " class=\"unresolved\"" : "";
    html += "<tr" + cls + "><td>" + rec.asset + "</td><td>" + rec.quantity +
      "</td><td>" + price + "</td><td>" + value + "</td><td>" + rec.source + "</td></tr>";
  }
  html += "</table>";

  html += "<table><tr><th>Asset</th><th>Quantity</th><th>Value</th></tr>";
  for (const a of r.by_asset) {
    html += "<tr><td>" + a.asset + "</td><td>" + a.quantity + "</td><td>" + krw(a.value_krw) + "</td></tr>";
  }
  html += "</table>";

  html += "<table><tr><th>Source</th><th>Value</th></tr>";
  for (const s of r.by_source) {
    html += "<tr><td>" + s.source + "</td><td>" + krw(s.value_krw) + "</td></tr>";
  }
  html += "</table>";

  html += "<div class=\"total\">Total: " + krw(r.total_krw) + "</div>";
  document.getElementById("content").innerHTML = html;
}

fetch("/report").then(r => r.ok ? r.json() : null).then(r => { if (r) renderReport(r); });
const es = new EventSource("/report/stream");
es.onmessage = e => renderReport(JSON.parse(e.data));
</script>
</body>
</html>`
