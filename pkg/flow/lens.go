package flow

import "maps"

// Lens focuses on a part C of a model P. Set must return a new P and leave
// its argument untouched.
type Lens[P, C any] struct {
	Get func(P) C
	Set func(P, C) P
}

// Map returns a signal focused on the part of parent selected by lens.
// Child actions receive lens.Get(parent); their result is written back with
// lens.Set through the parent's own dispatch, so mapped signals nest to any
// depth and each level rebuilds only its own value.
func Map[P, C any](parent Signal[P], lens Lens[P, C]) Signal[C] {
	return Signal[C]{
		get: func() C {
			return lens.Get(parent.get())
		},
		set: func(child C) {
			parent.Do(func(p P) P {
				return lens.Set(p, child)
			})()
		},
		post: parent.post,
		obs:  parent.obs,
	}
}

// Field builds a lens over a struct model. Set copies the parent value and
// calls put on the copy, so sibling fields are shared, not modified.
func Field[P, C any](get func(P) C, put func(*P, C)) Lens[P, C] {
	return Lens[P, C]{
		Get: get,
		Set: func(p P, c C) P {
			next := p
			put(&next, c)
			return next
		},
	}
}

// Key builds a lens over one entry of a map model. Get yields the zero value
// for an absent key. Set clones the map and replaces only key.
func Key[K comparable, V any](key K) Lens[map[K]V, V] {
	return Lens[map[K]V, V]{
		Get: func(m map[K]V) V {
			return m[key]
		},
		Set: func(m map[K]V, v V) map[K]V {
			next := maps.Clone(m)
			if next == nil {
				next = make(map[K]V, 1)
			}
			next[key] = v
			return next
		},
	}
}

// MapKey returns a signal focused on parent[key].
func MapKey[K comparable, V any](parent Signal[map[K]V], key K) Signal[V] {
	return Map(parent, Key[K, V](key))
}
