package demo

import (
	"context"
	"time"

	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/snapshot"
	"github.com/elishacook/microfun/pkg/vdom"
)

// App holds the demo's dependencies.
type App struct {
	ctx   context.Context
	store snapshot.Store
}

// New creates the demo. store may be nil, which hides the reload button.
func New(ctx context.Context, store snapshot.Store) *App {
	return &App{ctx: ctx, store: store}
}

// Channels returns the clock channel. A tick of zero or less returns none.
func (a *App) Channels(tick time.Duration) []flow.Channel[Model] {
	if tick <= 0 {
		return nil
	}
	return []flow.Channel[Model]{Clock(a.ctx, tick)}
}

// Clock returns a channel that dispatches Tick every period until ctx is
// done.
func Clock(ctx context.Context, period time.Duration) flow.Channel[Model] {
	return func(s flow.Signal[Model]) {
		ticker := time.NewTicker(period)
		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					s.Post(flow.Bind(s, Tick, now.Truncate(time.Second)))
				}
			}
		}()
	}
}

// View renders the whole demo.
func (a *App) View(m Model, s flow.Signal[Model]) *vdom.Node {
	return vdom.Div(vdom.Class("app"),
		vdom.Header(
			vdom.H1("microfun"),
			vdom.If(!m.Now.IsZero(), vdom.Span(vdom.Class("clock"), m.Now.Format("15:04:05"))),
		),
		vdom.Section(vdom.Class("counter"), CounterView(m.Count, flow.Map(s, countField))),
		vdom.Section(vdom.Class("todos"), a.todosView(m, s)),
		a.footerView(m, s),
	)
}

// CounterView renders a counter bound to an int signal.
func CounterView(n int, s flow.Signal[int]) *vdom.Node {
	return vdom.Div(vdom.Class("counter"),
		vdom.Button(vdom.OnClick(s.Do(decrement)), "-"),
		vdom.Strong(vdom.Textf("%d", n)),
		vdom.Button(vdom.OnClick(s.Do(increment)), "+"),
		vdom.Button(vdom.OnClick(flow.Bind(s, addTo, 10)), "+10"),
	)
}

func (a *App) todosView(m Model, s flow.Signal[Model]) *vdom.Node {
	todos := flow.Map(s, todosField)
	return vdom.Div(
		vdom.Form(vdom.OnSubmit(s.Do(AddTodo)),
			vdom.Input(
				vdom.Type("text"),
				vdom.Name("title"),
				vdom.Value(m.Draft),
				vdom.Placeholder("What needs doing?"),
				vdom.OnInput(flow.Handler(s, SetDraft)),
			),
			vdom.Button(vdom.Type("submit"), "Add"),
		),
		vdom.Ul(vdom.Range(m.Order, func(_ int, id string) *vdom.Node {
			return TodoView(id, m.Todos[id], flow.MapKey(todos, id), flow.Bind(s, RemoveTodo, id))
		})),
	)
}

// TodoView renders one item. Toggling goes through the item's own signal;
// removal needs the parent list, so it arrives as a bound dispatcher.
func TodoView(id string, t Todo, s flow.Signal[Todo], remove flow.Dispatcher) *vdom.Node {
	return vdom.Li(vdom.Key(id), vdom.ClassIf(t.Done, "done"),
		vdom.Label(
			vdom.Input(vdom.Type("checkbox"), vdom.Checked(t.Done), vdom.OnChange(s.Do(toggle))),
			vdom.Span(t.Title),
		),
		vdom.Button(vdom.Class("remove"), vdom.OnClick(remove), "x"),
	)
}

func (a *App) footerView(m Model, s flow.Signal[Model]) *vdom.Node {
	var reload *vdom.Node
	if a.store != nil {
		load := flow.Task(s, snapshot.Load[Model](a.ctx, a.store), Restored, RestoreFailed, nil)
		reload = vdom.Button(vdom.OnClick(load), "Reload snapshot")
	}
	return vdom.Footer(
		vdom.P(vdom.Textf("%d of %d remaining", m.Remaining(), len(m.Order))),
		vdom.If(m.Remaining() < len(m.Order), vdom.Button(vdom.OnClick(s.Do(ClearDone)), "Clear done")),
		reload,
		vdom.If(m.Status != "", vdom.P(vdom.Class("status"), m.Status)),
	)
}

// Styles is the demo's stylesheet.
const Styles = `body{font-family:system-ui,sans-serif;max-width:32rem;margin:2rem auto}
.counter strong{display:inline-block;min-width:3rem;text-align:center}
li.done span{text-decoration:line-through;color:#888}
.clock{float:right;color:#666}
.status{color:#a50}`
