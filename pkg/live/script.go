package live

// clientScript connects to the hub, applies messages to #microfun-root and
// forwards delegated DOM events for elements carrying data-on.
const clientScript = `(function () {
  var root = document.getElementById("microfun-root");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var seq = 0, ws;

  function byHID(hid) {
    return hid ? root.querySelector('[data-hid="' + hid + '"]') : null;
  }
  function parse(html) {
    var t = document.createElement("template");
    t.innerHTML = html;
    return t.content.firstChild;
  }
  function apply(p) {
    var el = byHID(p.hid);
    switch (p.op) {
    case "SetText": if (el) el.textContent = p.value; break;
    case "SetAttr": if (el) el.setAttribute(p.key, p.value); if (el && p.key === "value") el.value = p.value; break;
    case "RemoveAttr": if (el) el.removeAttribute(p.key); break;
    case "SetEvents": if (el) el.setAttribute("data-on", p.value); break;
    case "RemoveNode": if (el) el.remove(); break;
    case "InsertNode":
      var parent = byHID(p.parent) || root;
      parent.insertBefore(parse(p.html), parent.childNodes[p.index || 0] || null);
      break;
    case "ReplaceNode":
      if (el) el.replaceWith(parse(p.html)); else root.innerHTML = p.html;
      break;
    }
  }
  function connect() {
    ws = new WebSocket(proto + location.host + "/ws" + (seq ? "?seq=" + seq : ""));
    ws.onmessage = function (e) {
      var m = JSON.parse(e.data);
      if (m.type === "html") root.innerHTML = m.html;
      else if (m.type === "patches") m.patches.forEach(apply);
      else if (m.type === "error") console.warn("microfun:", m.error);
      if (m.seq) seq = m.seq;
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
  ["click", "dblclick", "input", "change", "keydown", "submit"].forEach(function (name) {
    document.addEventListener(name, function (e) {
      var el = e.target.closest("[data-on]");
      if (!el || el.getAttribute("data-on").split(" ").indexOf(name) < 0) return;
      if (name === "submit") e.preventDefault();
      var value = name === "keydown" ? e.key : (e.target.value || "");
      ws.send(JSON.stringify({hid: el.getAttribute("data-hid"), event: name, value: value}));
    });
  });
})();`
