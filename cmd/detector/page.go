// cmd/detector/page.go
package main

// indexHTML is the single-page UI. Light card styling follows the
// original dashboard look; all actions go through the JSON API.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Fake News Detector</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
  header { background: #ffffff; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
  h1 { margin: 0; font-size: 22px; }
  .tagline { color: #6b7280; font-size: 14px; }
  .layout { display: flex; gap: 16px; padding: 16px 24px; align-items: flex-start; }
  .main { flex: 3; }
  .side { flex: 1; min-width: 280px; }
  .card { background: #ffffff; border-radius: 8px; padding: 14px; box-shadow: 0 2px 8px rgba(0,0,0,0.06); margin-bottom: 12px; }
  .source { font-size: 12px; color: #6b7280; }
  .verdict-real { color: #047857; font-weight: 600; }
  .verdict-fake { color: #b91c1c; font-weight: 600; }
  .verdict-unknown { color: #92400e; font-weight: 600; }
  .warning { color: #92400e; }
  label { display: block; font-size: 13px; margin-top: 10px; }
  input[type=range] { width: 100%; }
  textarea { width: 100%; min-height: 160px; box-sizing: border-box; }
  input[type=text] { width: 100%; box-sizing: border-box; }
  button { margin-top: 10px; padding: 8px 14px; border: 0; border-radius: 6px; background: #2563eb; color: white; cursor: pointer; }
  button:disabled { background: #9ca3af; }
</style>
</head>
<body>
<header>
  <h1>&#128240; Fake News Detector</h1>
  <div class="tagline">Empower Yourself with Real Knowledge and Not Misinformation!</div>
</header>
<div class="layout">
  <div class="main">
    <div class="card">
      <strong>Auto fetch recent headlines</strong>
      <label>Confidence threshold for REAL: <span id="thresholdValue">{{printf "%.2f" .DefaultThreshold}}</span>
        <input type="range" id="threshold" min="0.50" max="0.99" step="0.01" value="{{.DefaultThreshold}}">
      </label>
      <label>Max headlines per source: <span id="maxPerSourceValue">{{.MaxPerSource}}</span>
        <input type="range" id="maxPerSource" min="1" max="10" step="1" value="{{.MaxPerSource}}">
      </label>
      <label><input type="checkbox" id="useFactCheck" {{if .FactCheckEnabled}}checked{{end}}> Use fact-check lookup</label>
      <button id="fetchBtn">Fetch latest headlines</button>
      {{if not .ModelAvailable}}<p class="warning">Local model not available; only fact-check results will be shown.</p>{{end}}
    </div>
    <div id="headlines"></div>
  </div>
  <div class="side">
    <div class="card">
      <strong>Check a specific article</strong>
      <label><input type="radio" name="mode" value="text" checked> Paste text</label>
      <label><input type="radio" name="mode" value="url"> Enter URL</label>
      <div id="textInput"><textarea id="articleText" placeholder="Paste article text or headline"></textarea></div>
      <div id="urlInput" style="display:none"><input type="text" id="articleURL" placeholder="https://..."></div>
      <button id="analyzeBtn">Analyze article</button>
      <div id="analysis"></div>
    </div>
  </div>
</div>
<script>
const $ = (id) => document.getElementById(id);

$('threshold').oninput = () => $('thresholdValue').textContent = Number($('threshold').value).toFixed(2);
$('maxPerSource').oninput = () => $('maxPerSourceValue').textContent = $('maxPerSource').value;

document.querySelectorAll('input[name=mode]').forEach(el => el.onchange = () => {
  const url = document.querySelector('input[name=mode]:checked').value === 'url';
  $('textInput').style.display = url ? 'none' : 'block';
  $('urlInput').style.display = url ? 'block' : 'none';
});

function verdictHTML(res) {
  if (!res) return '';
  const cls = res.label === 'REAL' ? 'verdict-real' : 'verdict-fake';
  return '<div class="' + cls + '">' + res.label + ' &mdash; confidence ' + res.confidence.toFixed(2) + '</div>';
}

function factCheckHTML(checks) {
  return (checks || []).map(fc => {
    const cls = fc.verdict === 'negative' ? 'verdict-fake' : (fc.verdict === 'positive' ? 'verdict-real' : 'verdict-unknown');
    let html = '<div class="' + cls + '">' + (fc.rating || 'Unknown') + ' &mdash; ' + (fc.publisher || 'Unknown');
    if (fc.published) html += ' &mdash; ' + fc.published;
    html += '</div>';
    if (fc.url) html += '<div class="source"><a href="' + fc.url + '">' + fc.url + '</a></div>';
    return html;
  }).join('');
}

$('fetchBtn').onclick = async () => {
  $('fetchBtn').disabled = true;
  $('headlines').innerHTML = '<div class="card">Fetching headlines&hellip;</div>';
  try {
    const resp = await fetch('/api/headlines', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({
        max_per_source: Number($('maxPerSource').value),
        threshold: Number($('threshold').value),
        use_factcheck: $('useFactCheck').checked,
      }),
    });
    const data = await resp.json();
    let html = '';
    (data.errors || []).forEach(e => html += '<div class="card warning">Feed failed for ' + e.source + ': ' + e.message + '</div>');
    (data.cards || []).forEach(card => {
      html += '<div class="card"><strong>' + card.title + '</strong> <span class="source">' + card.source + '</span>';
      if (card.link) html += '<div class="source"><a href="' + card.link + '">' + card.link + '</a></div>';
      html += '<p>' + card.text.slice(0, 800) + '</p>';
      if (card.fact_checks) html += '<strong>Fact-check results:</strong>' + factCheckHTML(card.fact_checks);
      html += verdictHTML(card.classification);
      if (card.warning) html += '<div class="warning">' + card.warning + '</div>';
      html += '</div>';
    });
    $('headlines').innerHTML = html || '<div class="card">No headlines fetched. Check internet connection.</div>';
  } catch (err) {
    $('headlines').innerHTML = '<div class="card warning">Fetch failed: ' + err + '</div>';
  } finally {
    $('fetchBtn').disabled = false;
  }
};

$('analyzeBtn').onclick = async () => {
  $('analyzeBtn').disabled = true;
  $('analysis').innerHTML = 'Analyzing&hellip;';
  try {
    const mode = document.querySelector('input[name=mode]:checked').value;
    const resp = await fetch('/api/analyze', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({
        mode: mode,
        text: $('articleText').value,
        url: $('articleURL').value,
        threshold: Number($('threshold').value),
        use_factcheck: $('useFactCheck').checked,
      }),
    });
    const data = await resp.json();
    if (data.error) { $('analysis').innerHTML = '<div class="warning">' + data.error + '</div>'; return; }
    let html = '';
    if (data.warning) html += '<div class="warning">' + data.warning + '</div>';
    if (data.fact_checks) html += '<strong>Fact-check results:</strong>' + factCheckHTML(data.fact_checks);
    html += verdictHTML(data.classification);
    if (data.classification) {
      html += '<div class="source">Raw probabilities: ' + JSON.stringify(data.classification.probabilities) + '</div>';
    }
    $('analysis').innerHTML = html;
  } catch (err) {
    $('analysis').innerHTML = '<div class="warning">Analysis failed: ' + err + '</div>';
  } finally {
    $('analyzeBtn').disabled = false;
  }
};

// Live updates pushed by background refreshes
(function connectWS() {
  const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  const ws = new WebSocket(proto + '//' + location.host + '/api/ws');
  ws.onmessage = (msg) => {
    const event = JSON.parse(msg.data);
    if (event.type === 'refresh') $('fetchBtn').click();
  };
  ws.onclose = () => setTimeout(connectWS, 5000);
})();
</script>
</body>
</html>
`
