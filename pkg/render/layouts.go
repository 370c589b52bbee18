package render

// 十种 675x1200 的竖版模板，数据字段完全一致，只是排版不同

// 0: Minimal Dark
const minimalDarkStyle = `background:#000;color:#fff;font-family:monospace;padding:40px;display:flex;flex-direction:column;`

const minimalDarkBody = `
<div style="position:absolute;top:32px;left:32px;width:8px;height:80px;background:linear-gradient(#ec4899,#a855f7);"></div>
<div style="position:absolute;top:32px;right:32px;font-size:24px;letter-spacing:.3em;">{{.Year}}</div>
<div style="flex:1;display:flex;flex-direction:column;justify-content:center;">
  <h1 style="font-size:48px;letter-spacing:.3em;margin:0 0 12px;">DAILY</h1>
  <h1 style="font-size:48px;letter-spacing:.3em;margin:0 0 12px;">SYNC</h1>
  <h1 style="font-size:48px;letter-spacing:.3em;margin:0 0 64px;">WRAPPED</h1>
  <div><p class="stat-tokens" style="font-size:72px;font-weight:700;margin:0;">{{.Tokens}}</p><p style="font-size:24px;opacity:.6;letter-spacing:.3em;">TOKENS</p></div>
  <div><p class="stat-messages" style="font-size:48px;font-weight:700;margin:0;">{{.Messages}}</p><p style="font-size:20px;opacity:.6;letter-spacing:.3em;">MESSAGES</p></div>
  <div><p class="stat-cost" style="font-size:36px;font-weight:700;margin:0;">{{.Cost}}</p><p style="font-size:20px;opacity:.6;letter-spacing:.3em;">SPENT</p></div>
  <div><p class="stat-model" style="font-size:24px;font-weight:700;margin:0;">{{.TopModel}}</p><p style="font-size:20px;opacity:.6;letter-spacing:.3em;">TOP MODEL</p></div>
</div>
<div style="display:flex;justify-content:space-between;font-size:20px;">
  <p class="stat-date" style="letter-spacing:.3em;">{{.DateUnderscored}}</p><p style="opacity:.6;">OPENSYNC</p>
</div>`

// 1: Gradient Noise
const gradientNoiseStyle = `background:linear-gradient(135deg,#db2777,#7e22ce 50%,#0f172a);color:#fff;font-family:sans-serif;`

const gradientNoiseBody = `
<div style="position:absolute;inset:0;opacity:.3;background:radial-gradient(circle at 20% 30%,rgba(255,255,255,.15) 1px,transparent 2px) 0 0/6px 6px;"></div>
<div style="position:relative;height:100%;display:flex;flex-direction:column;align-items:center;justify-content:center;padding:40px;">
  <h2 style="font-size:30px;font-weight:300;opacity:.8;margin:0 0 16px;">Daily Sync</h2>
  <h1 style="font-size:72px;font-weight:700;margin:0 0 48px;">Wrapped</h1>
  <p class="stat-tokens" style="font-size:96px;font-weight:700;margin:0;">{{.Tokens}}</p>
  <p style="font-size:24px;opacity:.7;">Total Tokens</p>
  <div style="display:flex;gap:48px;text-align:center;margin-top:32px;">
    <div><p class="stat-messages" style="font-size:48px;font-weight:600;margin:0;">{{.Messages}}</p><p style="font-size:20px;opacity:.7;">Messages</p></div>
    <div><p class="stat-cost" style="font-size:48px;font-weight:600;margin:0;">{{.Cost}}</p><p style="font-size:20px;opacity:.7;">Cost</p></div>
  </div>
  <p class="stat-model" style="font-size:24px;opacity:.8;margin-top:32px;">{{.TopModel}}</p>
  <div style="position:absolute;bottom:40px;font-size:20px;opacity:.6;"><span class="stat-date">{{.Date}}</span> | OpenSync</div>
</div>`

// 2: Geometric Beige
const geometricBeigeStyle = `background:#f5f0e8;color:#2d2d2d;padding:32px;display:flex;flex-direction:column;font-family:serif;`

const geometricBeigeBody = `
<div style="position:absolute;left:24px;top:96px;display:flex;flex-direction:column;gap:8px;">
  <div style="display:flex;gap:8px;"><i style="width:40px;height:40px;background:#f97316;"></i></div>
  <div style="display:flex;gap:8px;"><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i></div>
  <div style="display:flex;gap:8px;"><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i></div>
  <div style="display:flex;gap:8px;"><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i><i style="width:40px;height:40px;background:#f97316;"></i></div>
</div>
<div style="flex:1;display:flex;flex-direction:column;justify-content:center;margin-top:192px;padding:0 16px;font-size:24px;">
  <h1 style="font-size:48px;font-style:italic;margin:0 0 40px;">Your Daily<br>Sync Wrapped</h1>
  <div style="display:flex;justify-content:space-between;border-bottom:2px solid #ccc;"><span>Tokens</span><b class="stat-tokens">{{.Tokens}}</b></div>
  <div style="display:flex;justify-content:space-between;border-bottom:2px solid #ccc;"><span>Messages</span><b class="stat-messages">{{.MessageCount}}</b></div>
  <div style="display:flex;justify-content:space-between;border-bottom:2px solid #ccc;"><span>Cost</span><b class="stat-cost">{{.Cost}}</b></div>
  <div style="display:flex;justify-content:space-between;"><span>Top Model</span><b class="stat-model" style="color:#ea580c;">{{.TopModel}}</b></div>
</div>
<div style="display:flex;justify-content:space-between;font-size:18px;margin-top:32px;">
  <span class="stat-date" style="opacity:.6;">{{.Date}}</span>
  <span style="display:flex;gap:8px;"><i style="width:20px;height:20px;background:#f97316;"></i><i style="width:20px;height:20px;background:#f97316;"></i><i style="width:20px;height:20px;background:#f97316;"></i><i style="width:20px;height:20px;background:#f97316;"></i></span>
</div>`

// 3: Tech Cards
const techCardsStyle = `background:#000;padding:40px;display:flex;flex-direction:column;align-items:center;justify-content:center;font-family:sans-serif;`

const techCardsBody = `
<div style="position:absolute;top:40px;color:#fff;font-size:20px;letter-spacing:.3em;">DAILY SYNC WRAPPED</div>
<div class="stat-date" style="position:absolute;top:72px;color:#fff;opacity:.6;font-size:18px;">{{.Date}}</div>
<div style="display:flex;flex-direction:column;gap:24px;margin-top:32px;">
  <div style="width:224px;height:128px;background:#fff;border-radius:24px;text-align:center;"><div class="stat-tokens" style="font-size:48px;font-weight:700;">{{.Tokens}}</div><div style="color:#6b7280;">TOKENS</div></div>
  <div style="width:224px;height:128px;background:#fff;border-radius:24px;text-align:center;"><div class="stat-messages" style="font-size:48px;font-weight:700;">{{.MessageCount}}</div><div style="color:#6b7280;">MESSAGES</div></div>
  <div style="width:224px;height:128px;background:#fff;border-radius:24px;text-align:center;"><div class="stat-cost" style="font-size:36px;font-weight:700;">{{.Cost}}</div><div style="color:#6b7280;">COST</div></div>
  <div style="width:224px;height:128px;background:#fff;border-radius:24px;text-align:center;"><div class="stat-model" style="font-size:24px;font-weight:700;">{{.TopModel}}</div><div style="color:#6b7280;">TOP MODEL</div></div>
</div>
<div style="position:absolute;bottom:40px;color:#fff;font-size:24px;font-family:monospace;letter-spacing:.3em;">OPENSYNC</div>`

// 4: Bold Typography
const boldTypographyStyle = `background:#0a1628;color:#fff;padding:40px;display:flex;flex-direction:column;font-family:serif;`

const boldTypographyBody = `
<div style="position:absolute;top:32px;right:32px;width:48px;height:48px;border:12px solid #3b82f6;transform:rotate(45deg);box-sizing:border-box;"></div>
<div style="flex:1;display:flex;flex-direction:column;justify-content:center;">
  <h1 style="font-size:60px;margin:0 0 48px;">Daily Sync<br><span style="color:#60a5fa;">Wrapped</span></h1>
  <div><span class="stat-tokens" style="color:#60a5fa;font-size:60px;font-weight:300;">{{.Tokens}}</span><p style="color:#9ca3af;font-size:24px;">Tokens</p></div>
  <div><span class="stat-messages" style="color:#60a5fa;font-size:48px;font-weight:300;">{{.MessageCount}}</span><p style="color:#9ca3af;font-size:24px;">Messages</p></div>
  <div><span class="stat-cost" style="color:#60a5fa;font-size:48px;font-weight:300;">{{.Cost}}</span><p style="color:#9ca3af;font-size:24px;">Cost</p></div>
  <div><span class="stat-model" style="color:#60a5fa;font-size:30px;font-weight:300;">{{.TopModel}}</span><p style="color:#9ca3af;font-size:20px;">Top Model</p></div>
</div>
<div style="font-size:20px;color:#6b7280;"><span class="stat-date">{{.Date}}</span> | OpenSync</div>`

// 5: Vinyl Record
const vinylRecordStyle = `background:#1a1a1a;padding:32px;display:flex;flex-direction:column;align-items:center;justify-content:center;font-family:sans-serif;`

const vinylRecordBody = `
<div style="position:absolute;top:24px;left:24px;color:#f5f0e8;font-size:18px;"><span style="opacity:.6;">BY</span><br><b>OPENSYNC</b></div>
<div style="position:absolute;top:24px;right:24px;color:#f5f0e8;font-size:20px;font-weight:700;letter-spacing:.1em;">WRAPPED</div>
<div style="width:288px;height:288px;border-radius:50%;background:#f5f0e8;position:relative;display:flex;align-items:center;justify-content:center;margin-bottom:40px;color:#1a1a1a;">
  <div class="stat-date" style="position:absolute;top:24px;font-size:18px;letter-spacing:.1em;">{{.DateUpper}}</div>
  <div style="text-align:center;"><div class="stat-tokens" style="font-size:48px;font-weight:900;font-family:serif;">{{.Tokens}}</div><div style="font-size:18px;letter-spacing:.1em;">TOKENS</div></div>
  <div style="position:absolute;bottom:24px;font-size:16px;letter-spacing:.1em;"><span class="stat-messages">{{.MessageCount}}</span> MSG | <span class="stat-cost">{{.Cost}}</span></div>
</div>
<div style="color:#f5f0e8;text-align:center;">
  <h1 style="font-size:48px;margin:0 0 8px;">DAILY</h1><h1 style="font-size:48px;margin:0 0 8px;">SYNC</h1><h1 style="font-size:48px;margin:0;">WRAPPED</h1>
  <p class="stat-model" style="font-size:20px;opacity:.6;margin-top:24px;">{{.TopModel}}</p>
</div>
<div style="position:absolute;bottom:24px;right:24px;width:40px;height:40px;border-radius:50%;border:2px solid #f5f0e8;box-sizing:border-box;"></div>`

// 6: Orange Gradient
const orangeGradientStyle = `background:linear-gradient(135deg,#fb923c,#f97316 50%,#ef4444);padding:40px;display:flex;flex-direction:column;font-family:sans-serif;`

const orangeGradientBody = `
<div style="position:absolute;right:-96px;top:25%;width:256px;height:256px;background:rgba(255,255,255,.1);border-radius:50%;filter:blur(64px);"></div>
<div style="position:relative;flex:1;display:flex;flex-direction:column;">
  <h1 style="color:#fff;font-size:48px;font-weight:700;margin:0 0 32px;">Your daily<br>sync wrapped.</h1>
  <div style="background:rgba(255,255,255,.2);border-radius:24px;padding:32px;font-size:24px;color:#fff;">
    <div style="display:flex;justify-content:space-between;"><span>Total Tokens</span><b class="stat-tokens" style="font-size:36px;">{{.Tokens}}</b></div>
    <div style="display:flex;justify-content:space-between;"><span>Messages</span><b class="stat-messages" style="font-size:36px;">{{.MessageCount}}</b></div>
    <div style="display:flex;justify-content:space-between;"><span>Cost</span><b class="stat-cost" style="font-size:36px;">{{.Cost}}</b></div>
  </div>
  <div style="margin-top:32px;background:rgba(255,255,255,.9);border-radius:9999px;padding:16px 32px;display:flex;justify-content:space-between;">
    <span class="stat-model" style="color:#1f2937;font-size:20px;">{{.TopModel}}</span><span style="color:#9ca3af;font-size:24px;">+</span>
  </div>
</div>
<div style="position:relative;padding-top:32px;color:rgba(255,255,255,.7);font-size:20px;"><span class="stat-date">{{.Date}}</span> | OpenSync</div>`

// 7: Dark Minimal
const darkMinimalStyle = `background:#000;color:#fff;font-family:monospace;padding:40px;display:flex;flex-direction:column;`

const darkMinimalBody = `
<div style="font-size:20px;letter-spacing:.5em;opacity:.4;">OPENSYNC</div>
<div style="flex:1;display:flex;flex-direction:column;justify-content:center;">
  <div class="stat-tokens" style="font-size:96px;font-weight:700;letter-spacing:-.05em;">{{.Tokens}}</div>
  <div style="font-size:24px;letter-spacing:.3em;opacity:.6;">TOKENS SYNCED</div>
  <div class="stat-date" style="font-size:20px;letter-spacing:.3em;opacity:.4;margin-bottom:64px;">{{.Date}}</div>
  <div><span style="opacity:.4;font-size:20px;">MSG </span><span class="stat-messages" style="font-size:36px;font-weight:700;">{{.MessageCount}}</span></div>
  <div><span style="opacity:.4;font-size:20px;">COST </span><span class="stat-cost" style="font-size:36px;font-weight:700;">{{.Cost}}</span></div>
  <div><span style="opacity:.4;font-size:20px;">MODEL </span><span class="stat-model" style="font-size:24px;font-weight:700;display:block;">{{.TopModelShort}}</span></div>
</div>`

// 8: Blue Landscape
const blueLandscapeStyle = `background:linear-gradient(#f5f0e8 0 48%,#1e3a5f 48% 100%);font-family:sans-serif;`

const blueLandscapeBody = `
<svg style="position:absolute;inset:0;width:100%;height:100%;" viewBox="0 0 100 100" preserveAspectRatio="none"><path d="M0 45 Q25 55, 50 45 Q75 35, 100 50 L100 100 L0 100 Z" fill="#1e3a5f"/></svg>
<div style="position:relative;height:100%;display:flex;flex-direction:column;padding:40px;box-sizing:border-box;">
  <div style="color:#1e3a5f;">
    <h2 style="font-size:24px;font-weight:300;letter-spacing:.3em;margin:0 0 16px;">DAILY SYNC</h2>
    <h1 style="font-size:60px;font-weight:700;margin:0;">Wrapped</h1>
    <p class="stat-date" style="font-size:20px;margin-top:16px;">{{.Date}}</p>
  </div>
  <div style="flex:1;display:flex;flex-direction:column;justify-content:flex-end;color:#fff;padding-bottom:32px;">
    <div class="stat-tokens" style="font-size:96px;font-weight:700;">{{.Tokens}}</div>
    <div style="font-size:24px;opacity:.7;margin-bottom:32px;">tokens</div>
    <div style="font-size:24px;"><span class="stat-messages">{{.MessageCount}}</span> messages</div>
    <div style="font-size:24px;"><span class="stat-cost">{{.Cost}}</span> cost</div>
    <div class="stat-model" style="font-size:24px;">{{.TopModel}}</div>
  </div>
  <div style="color:#fff;font-size:18px;opacity:.6;">OpenSync</div>
</div>`

// 9: Color Shapes
const colorShapesStyle = `background:#0f0f0f;padding:40px;display:flex;flex-direction:column;font-family:sans-serif;`

const colorShapesBody = `
<div style="position:absolute;top:80px;left:32px;width:0;height:0;border-left:25px solid transparent;border-right:25px solid transparent;border-bottom:43px solid #fde047;"></div>
<div style="position:absolute;top:160px;right:32px;width:48px;height:48px;background:#f472b6;border-radius:2px;"></div>
<div style="position:absolute;bottom:256px;left:48px;width:56px;height:56px;background:#3b82f6;transform:rotate(45deg);"></div>
<div style="position:absolute;bottom:128px;right:40px;width:48px;height:48px;border-radius:50%;background:linear-gradient(135deg,#f472b6,#f87171);"></div>
<div style="color:#fff;font-size:24px;font-weight:700;letter-spacing:.05em;">opensync</div>
<div style="flex:1;display:flex;flex-direction:column;justify-content:center;color:#fff;">
  <h1 style="font-size:60px;font-family:serif;margin:0 0 8px;">Daily Sync</h1>
  <h2 style="font-size:60px;font-family:serif;font-style:italic;color:#60a5fa;margin:0 0 32px;">wrapped.</h2>
  <p style="color:#9ca3af;font-size:20px;margin-bottom:40px;">Your coding activity for <span class="stat-date">{{.Date}}</span></p>
  <div><div class="stat-tokens" style="font-size:48px;font-weight:700;">{{.Tokens}}</div><div style="font-size:20px;color:#6b7280;">Total Tokens</div></div>
  <div><div class="stat-messages" style="font-size:48px;font-weight:700;">{{.MessageCount}}</div><div style="font-size:20px;color:#6b7280;">Messages</div></div>
  <div><div class="stat-cost" style="font-size:36px;font-weight:700;">{{.Cost}}</div><div style="font-size:20px;color:#6b7280;">Cost</div></div>
  <div><div class="stat-model" style="font-size:30px;font-weight:700;">{{.TopModel}}</div><div style="font-size:20px;color:#6b7280;">Top Model</div></div>
</div>
<div class="stat-providers" style="color:#4b5563;font-size:18px;">{{.Providers}}</div>`
