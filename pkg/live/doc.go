// Package live serves a mounted app to browsers over a WebSocket.
//
// A Hub is a flow.Target. Each draw is diffed against the previous tree
// and the resulting patches are broadcast as JSON to every connected
// client. Clients send events back as {"hid", "event", "value"}; the Hub
// looks up the handler bound on that element and runs it on the app's
// flow.Loop, so handlers never race with renders.
//
//	loop := flow.NewLoop(flow.LoopConfig{})
//	hub := live.NewHub(loop, live.HubConfig{})
//	app := flow.Mount(hub, initial, view, channels, flow.WithLoop(loop))
//	srv := live.NewServer(hub, live.ServerConfig{Addr: ":8080"})
//
// Wire messages from server to client:
//
//	{"type":"html","seq":3,"html":"<div data-hid=\"h1\">...</div>"}
//	{"type":"patches","seq":4,"patches":[{"op":"SetText","hid":"h2","value":"5"}]}
//	{"type":"error","error":"E010: ..."}
package live
