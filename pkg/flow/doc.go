// Package flow binds an immutable application model to a render target with
// one-way data flow.
//
// A Signal gives access to the current model and turns pure update
// functions into dispatchers:
//
//	inc := func(m Model) Model { m.Count++; return m }
//	vdom.Button(vdom.OnClick(s.Do(inc)), "+")
//
// Arguments are bound with Bind, or supplied by the caller with Handler:
//
//	add := func(m Model, n int) Model { m.Count += n; return m }
//	flow.Bind(s, add, 10)               // func()
//	flow.Handler(s, setName)            // func(string)
//
// # Nested Models
//
// Map focuses a signal on part of the model through a Lens. The child's
// actions see only the part; the result is written back into a fresh copy of
// the parent, level by level, up to the root:
//
//	form := flow.Map(s, flow.Field(
//	    func(m Model) Form { return m.Form },
//	    func(m *Model, f Form) { m.Form = f },
//	))
//	name := flow.Map(form, nameLens)
//
// MapKey does the same for map models, cloning one level.
//
// # Tasks
//
// Task bridges asynchronous work back into model updates. A Command either
// calls its completion callback or returns a Thenable (usually a *Future):
//
//	load := flow.Task(s, fetchUser, gotUser, failed, nil)
//
// Completions are posted to the signal's loop, so the model is only ever
// changed on one goroutine.
//
// # Rendering
//
// Every committed model is handed to a Renderer, which draws at most once
// per frame of its frame.Clock and always draws the most recent model.
// Mount wires the model cell, the root signal, the renderer and the
// application's channels together:
//
//	app := flow.Mount(target, Model{}, view, []flow.Channel[Model]{ticker},
//	    flow.WithLoop(loop), flow.WithClock(frame.NewInterval(16*time.Millisecond)))
//
// # Threading
//
// The model is owned by a single goroutine. Without a Loop that is whichever
// goroutine calls the dispatchers, and Mount's default clock draws on that
// goroutine too; with WithLoop, task completions and frame flushes are
// posted to the loop and everything that touches the model should run there
// too (Loop.Post, Loop.Call).
package flow
