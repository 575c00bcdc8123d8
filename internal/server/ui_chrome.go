package server

const uiPageChromeCSS = `
    :root {
      --bg: #f2f7f4;
      --bg2: #d9efe2;
      --card: #ffffff;
      --ink: #1f2a24;
      --muted: #5f6f67;
      --ok: #1f8a4c;
      --bad: #b23a48;
      --skip: #c98a1b;
      --run: #3a6fb2;
      --accent: #157f66;
      --line: #c4ddd0;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Avenir Next", "Segoe UI", sans-serif;
      color: var(--ink);
      background: radial-gradient(circle at 20% 0%, var(--bg2), var(--bg));
    }
    main { max-width: 1200px; margin: 24px auto; padding: 0 16px; }
    nav { display: flex; gap: 8px; margin-bottom: 16px; }
    .card {
      background: var(--card);
      border: 1px solid var(--line);
      border-radius: 12px;
      padding: 16px;
      margin-bottom: 16px;
      box-shadow: 0 8px 24px rgba(21,127,102,.08);
    }
    .muted { color: var(--muted); font-size: 13px; }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    button,
    a.nav-btn {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 8px 10px;
      font-size: 14px;
      line-height: 1.1;
      background: #ffffff;
      color: var(--accent);
      cursor: pointer;
    }
    button:hover:not(:disabled),
    a.nav-btn:hover {
      background: #f4fbf7;
      text-decoration: none;
    }
    a.nav-btn { display: inline-flex; align-items: center; font-weight: 600; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { border-bottom: 1px solid var(--line); padding: 6px 8px; text-align: left; vertical-align: top; }
    th a.active { font-weight: 700; }
    .passed { color: var(--ok); }
    .failed { color: var(--bad); }
    .skipped { color: var(--skip); }
    .running { color: var(--run); }
    .summary-bar { display: flex; height: 22px; border-radius: 6px; overflow: hidden; margin: 8px 0; }
    .summary-bar a { display: block; color: #fff; font-size: 12px; padding: 3px 6px; white-space: nowrap; overflow: hidden; }
    .summary-bar a.passed { background: var(--ok); }
    .summary-bar a.failed { background: var(--bad); }
    .summary-bar a.skipped { background: var(--skip); }
    .summary-bar a.running { background: var(--run); }
    .layout { display: grid; grid-template-columns: 260px 1fr; gap: 16px; }
    .tree ul { list-style: none; padding-left: 14px; margin: 2px 0; }
    .tree a.active { font-weight: 700; }
    .pager { display: flex; gap: 4px; align-items: center; margin-top: 8px; flex-wrap: wrap; }
    .pager a.current { font-weight: 700; text-decoration: underline; }
    .error { color: var(--bad); }
    .message { color: var(--ok); }
    .stacktrace { font-family: ui-monospace, Menlo, monospace; font-size: 12px; }
    .node .header { font-weight: 600; padding: 6px 8px; border-radius: 8px; background: var(--bg2); }
    .node .header.offline { background: #eee; color: var(--muted); }
    .node .header.shuttingdown { background: #fbe9eb; }
    .node .outdated { color: var(--bad); font-size: 12px; }
    .slot { display: inline-block; margin: 2px; padding: 2px 4px; border: 1px solid var(--line); border-radius: 4px; }
    .slot.busy { background: #fbe9eb; }
    .slot img { width: 20px; height: 20px; vertical-align: middle; }
    textarea { width: 100%; min-height: 240px; font-family: ui-monospace, Menlo, monospace; }
`
