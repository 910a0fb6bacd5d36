package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	City string
	Zip  string
}

type person struct {
	Name    string
	Age     int
	Address address
}

var (
	addressLens = Field(
		func(p person) address { return p.Address },
		func(p *person, a address) { p.Address = a },
	)
	cityLens = Field(
		func(a address) string { return a.City },
		func(a *address, c string) { a.City = c },
	)
)

func TestMapFieldUpdatesOnlyTarget(t *testing.T) {
	original := person{Name: "Ada", Age: 36, Address: address{City: "London", Zip: "N1"}}
	c := &cell[person]{v: original}
	root := c.signal()

	age := Map(root, Field(
		func(p person) int { return p.Age },
		func(p *person, n int) { p.Age = n },
	))
	if age.Get() != 36 {
		t.Fatalf("Get() = %d, want 36", age.Get())
	}
	age.Do(func(n int) int { return n + 1 })()

	want := original
	want.Age = 37
	if diff := cmp.Diff(want, c.v); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestMapChained(t *testing.T) {
	c := &cell[person]{v: person{Name: "Ada", Address: address{City: "London", Zip: "N1"}}}
	root := c.signal()

	city := Map(Map(root, addressLens), cityLens)
	city.Do(func(string) string { return "Paris" })()

	want := person{Name: "Ada", Address: address{City: "Paris", Zip: "N1"}}
	if diff := cmp.Diff(want, c.v); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestMapDispatchesThroughParent(t *testing.T) {
	sets := 0
	model := person{}
	root := New(func() person { return model }, func(p person) { sets++; model = p })

	Map(Map(root, addressLens), cityLens).Dispatch(func(string) string { return "Rome" })
	if sets != 1 {
		t.Errorf("root set called %d times, want 1", sets)
	}
}

func TestMapKey(t *testing.T) {
	original := map[string]int{"a": 1, "b": 2}
	c := &cell[map[string]int]{v: original}
	root := c.signal()

	MapKey(root, "a").Do(func(n int) int { return n + 10 })()

	if diff := cmp.Diff(map[string]int{"a": 11, "b": 2}, c.v); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
	if original["a"] != 1 {
		t.Error("the previous map must not be mutated")
	}
}

func TestMapKeyAbsentKeyIsZero(t *testing.T) {
	c := &cell[map[string]int]{}
	missing := MapKey(c.signal(), "x")

	if missing.Get() != 0 {
		t.Errorf("Get() = %d, want 0", missing.Get())
	}
	missing.Do(func(n int) int { return n + 1 })()
	if c.v["x"] != 1 {
		t.Errorf("model = %v, want x=1", c.v)
	}
}

func TestMapKeyNested(t *testing.T) {
	c := &cell[map[string]map[string]int]{v: map[string]map[string]int{
		"a": {"b": 1, "c": 2},
		"d": {"e": 3},
	}}
	inner := MapKey(MapKey(c.signal(), "a"), "b")
	inner.Do(func(n int) int { return n * 5 })()

	want := map[string]map[string]int{
		"a": {"b": 5, "c": 2},
		"d": {"e": 3},
	}
	if diff := cmp.Diff(want, c.v); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}
