// Package demo is the example application served by the microfun command:
// a counter, a todo list, a wall clock fed by a channel and a task that
// reloads the last snapshot.
package demo

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/elishacook/microfun/pkg/flow"
)

// Model is the demo's root model.
type Model struct {
	Count  int             `json:"count"`
	Todos  map[string]Todo `json:"todos"`
	Order  []string        `json:"order"`
	Draft  string          `json:"draft"`
	NextID int             `json:"nextId"`
	Now    time.Time       `json:"now"`
	Status string          `json:"status,omitempty"`
}

// Todo is one list item.
type Todo struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Initial returns the starting model.
func Initial() Model {
	return Model{Todos: map[string]Todo{}, NextID: 1}
}

// Remaining returns the number of unfinished todos.
func (m Model) Remaining() int {
	n := 0
	for _, id := range m.Order {
		if !m.Todos[id].Done {
			n++
		}
	}
	return n
}

var (
	countField = flow.Field(
		func(m Model) int { return m.Count },
		func(m *Model, n int) { m.Count = n },
	)
	todosField = flow.Field(
		func(m Model) map[string]Todo { return m.Todos },
		func(m *Model, t map[string]Todo) { m.Todos = t },
	)
)

func increment(n int) int { return n + 1 }
func decrement(n int) int { return n - 1 }
func addTo(n, by int) int { return n + by }

// SetDraft stores the todo input's value.
func SetDraft(m Model, value string) Model {
	m.Draft = value
	return m
}

// AddTodo appends the draft as a new todo. Blank drafts are ignored.
func AddTodo(m Model) Model {
	title := strings.TrimSpace(m.Draft)
	if title == "" {
		return m
	}
	id := "t" + strconv.Itoa(m.NextID)
	todos := maps.Clone(m.Todos)
	if todos == nil {
		todos = map[string]Todo{}
	}
	todos[id] = Todo{Title: title}

	m.Todos = todos
	m.Order = append(m.Order[:len(m.Order):len(m.Order)], id)
	m.NextID++
	m.Draft = ""
	return m
}

// RemoveTodo deletes the todo with id.
func RemoveTodo(m Model, id string) Model {
	if _, ok := m.Todos[id]; !ok {
		return m
	}
	todos := maps.Clone(m.Todos)
	delete(todos, id)
	order := make([]string, 0, len(m.Order))
	for _, o := range m.Order {
		if o != id {
			order = append(order, o)
		}
	}
	m.Todos, m.Order = todos, order
	return m
}

// ClearDone removes every finished todo.
func ClearDone(m Model) Model {
	for _, id := range m.Order {
		if m.Todos[id].Done {
			m = RemoveTodo(m, id)
		}
	}
	return m
}

func toggle(t Todo) Todo {
	t.Done = !t.Done
	return t
}

// Tick records the wall clock.
func Tick(m Model, now time.Time) Model {
	m.Now = now
	return m
}

// Restored replaces the model with a loaded snapshot.
func Restored(_ Model, loaded Model) Model {
	if loaded.Todos == nil {
		loaded.Todos = map[string]Todo{}
	}
	loaded.Status = "Restored snapshot."
	return loaded
}

// RestoreFailed reports a failed load.
func RestoreFailed(m Model, err error) Model {
	m.Status = "Restore failed: " + err.Error()
	return m
}
