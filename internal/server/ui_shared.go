package server

// uiSharedJS keeps report checkboxes in sync with /get and /set. Set calls
// are fire-and-forget; the last response wins.
const uiSharedJS = `function reportCheckboxes() {
  return Array.from(document.querySelectorAll('input.row-check[data-uuid]'));
}

function loadCheckedState() {
  const boxes = reportCheckboxes();
  if (!boxes.length) return;
  const params = new URLSearchParams();
  boxes.forEach(b => params.append('uuid', b.dataset.uuid));
  fetch('/get?' + params.toString(), { cache: 'no-store' })
    .then(res => res.ok ? res.json() : [])
    .then(items => {
      const checked = new Set((items || []).map(i => i.uuid));
      boxes.forEach(b => { b.checked = checked.has(b.dataset.uuid); });
    })
    .catch(() => {});
}

function sendCheckedState(box) {
  const params = new URLSearchParams({ uuid: box.dataset.uuid, value: String(box.checked) });
  fetch('/set?' + params.toString(), { cache: 'no-store' })
    .then(res => res.json())
    .then(body => {
      if (!body || body.result !== 'OK') {
        alert('Unable to save checkbox state: ' + (body && body.result ? body.result : 'no response'));
      }
    })
    .catch(err => alert('Unable to save checkbox state: ' + err));
}

document.addEventListener('DOMContentLoaded', () => {
  reportCheckboxes().forEach(b => b.addEventListener('change', () => sendCheckedState(b)));
  loadCheckedState();
  document.querySelectorAll('select[data-autosubmit]').forEach(sel => {
    sel.addEventListener('change', () => sel.form && sel.form.submit());
  });
});
`
