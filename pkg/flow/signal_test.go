package flow

import (
	"testing"
)

func TestDo(t *testing.T) {
	c := &cell[int]{v: 1}
	s := c.signal()

	inc := s.Do(func(m int) int { return m + 1 })
	if c.v != 1 {
		t.Fatal("Do must not dispatch until the dispatcher is invoked")
	}

	inc()
	inc()
	if c.v != 3 {
		t.Errorf("model = %d, want 3", c.v)
	}
	if s.Get() != 3 {
		t.Errorf("Get() = %d, want 3", s.Get())
	}
}

func TestDoCallsSetOncePerInvocation(t *testing.T) {
	model, sets := 0, 0
	s := New(func() int { return model }, func(m int) { sets++; model = m })

	d := s.Do(func(m int) int { return m })
	d()
	d()
	if sets != 2 {
		t.Errorf("set called %d times, want 2", sets)
	}
}

func TestBindAndHandler(t *testing.T) {
	type model struct {
		Total int
		Last  string
	}
	c := &cell[model]{}
	s := c.signal()

	add := func(m model, n int) model { m.Total += n; return m }
	Bind(s, add, 10)()
	Bind(s, add, 5)()
	if c.v.Total != 15 {
		t.Errorf("Total = %d, want 15", c.v.Total)
	}

	setLast := Handler(s, func(m model, v string) model { m.Last = v; return m })
	setLast("typed")
	if c.v.Last != "typed" {
		t.Errorf("Last = %q, want typed", c.v.Last)
	}

	tag := BindHandler(s, func(m model, prefix string, v string) model {
		m.Last = prefix + v
		return m
	}, "#")
	tag("x")
	if c.v.Last != "#x" {
		t.Errorf("Last = %q, want #x", c.v.Last)
	}
}

func TestActionPanicPropagates(t *testing.T) {
	c := &cell[int]{v: 1}
	s := c.signal()

	defer func() {
		if recover() == nil {
			t.Error("panic should propagate from the dispatcher")
		}
		if c.v != 1 {
			t.Errorf("model = %d, want 1 after panic", c.v)
		}
	}()
	s.Do(func(int) int { panic("boom") })()
}

func TestPostWithoutLoopRunsInline(t *testing.T) {
	ran := false
	(&cell[int]{}).signal().Post(func() { ran = true })
	if !ran {
		t.Error("Post without a loop should run inline")
	}
}
