package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>voxlate</title>
<style>
body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; min-height: 10rem; }
#error { color: #b00020; }
#result { white-space: pre-wrap; border: 1px solid #ccc; padding: .5rem; min-height: 3rem; }
</style>
</head>
<body>
<h1>voxlate</h1>
<p>Translate English text or a document (PDF, TXT, CSV, XLS, XLSX) and listen to the result.</p>
<form id="form">
  <p><textarea name="text" placeholder="Enter English text"></textarea></p>
  <p><input type="file" name="file" accept=".pdf,.txt,.csv,.xls,.xlsx"></p>
  <p><select name="language" id="language"></select>
     <button type="submit" id="submit">Translate &amp; Speak</button></p>
</form>
<p id="status"></p>
<p id="error"></p>
<div id="result"></div>
<p><audio id="player" controls></audio></p>
<p><a href="/download/translation.txt">Download translation</a> |
   <a href="/download/audio.mp3">Download audio</a></p>
<script>
fetch('/api/languages').then(r => r.json()).then(langs => {
  const sel = document.getElementById('language');
  for (const l of langs) {
    const o = document.createElement('option');
    o.value = l.name; o.textContent = l.name;
    if (l.code === 'es') o.selected = true;
    sel.appendChild(o);
  }
});
document.getElementById('form').addEventListener('submit', async ev => {
  ev.preventDefault();
  const btn = document.getElementById('submit');
  const status = document.getElementById('status');
  const error = document.getElementById('error');
  const result = document.getElementById('result');
  btn.disabled = true; error.textContent = ''; result.textContent = '';
  status.textContent = 'Translating...';
  try {
    const r = await fetch('/api/translate', {method: 'POST', body: new FormData(ev.target)});
    const body = await r.json();
    if (!r.ok) { error.textContent = body.error; status.textContent = ''; return; }
    result.textContent = body.translation;
    document.getElementById('player').src = '/download/audio.mp3?run=' + body.run_id;
    status.textContent = 'Done (' + body.chunks + ' chunk(s))';
  } finally {
    btn.disabled = false;
  }
});
</script>
</body>
</html>
`
