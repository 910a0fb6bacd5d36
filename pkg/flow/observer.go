package flow

import "time"

// Observer receives lifecycle notifications from a mounted app. All methods
// are called on the goroutine that owns the model and must not block.
type Observer interface {
	// Dispatched is called before a new root model is stored.
	Dispatched()
	// Committed is called with every new root model.
	Committed(model any)
	// Coalesced is called when a render request replaces a pending one.
	Coalesced()
	// Flushed is called after every draw, successful or not.
	Flushed(d time.Duration, err error)
	// TaskSettled is called after a task's outcome has been dispatched.
	TaskSettled(err error)
}

// NopObserver ignores every notification. Embed it to implement only some
// of the Observer methods.
type NopObserver struct{}

func (NopObserver) Dispatched()                  {}
func (NopObserver) Committed(any)                {}
func (NopObserver) Coalesced()                   {}
func (NopObserver) Flushed(time.Duration, error) {}
func (NopObserver) TaskSettled(error)            {}

// Observers fans notifications out in order.
type Observers []Observer

func (o Observers) Dispatched() {
	for _, obs := range o {
		obs.Dispatched()
	}
}

func (o Observers) Committed(model any) {
	for _, obs := range o {
		obs.Committed(model)
	}
}

func (o Observers) Coalesced() {
	for _, obs := range o {
		obs.Coalesced()
	}
}

func (o Observers) Flushed(d time.Duration, err error) {
	for _, obs := range o {
		obs.Flushed(d, err)
	}
}

func (o Observers) TaskSettled(err error) {
	for _, obs := range o {
		obs.TaskSettled(err)
	}
}
