package vdom

import (
	"fmt"
	"reflect"

	"github.com/elishacook/microfun/internal/errors"
)

// On binds handler to the named event ("click", "input").
func On(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return On("dblclick", handler) }

// OnInput handles input events. Handlers of type func(string) receive the
// element's current value.
func OnInput(handler any) EventHandler { return On("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return On("submit", handler) }

// OnKeyDown handles keydown events. Handlers of type func(string) receive
// the key name.
func OnKeyDown(handler any) EventHandler { return On("keydown", handler) }

// CallHandler invokes an event handler collected from a tree. Handlers
// with no parameters are called as is; handlers with one string-kinded
// parameter receive value. Named function types such as flow.Dispatcher
// are accepted.
func CallHandler(handler any, value string) error {
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func || fn.IsNil() || fn.Type().IsVariadic() || fn.Type().NumOut() != 0 {
		return unsupportedHandler(handler)
	}
	switch t := fn.Type(); {
	case t.NumIn() == 0:
		fn.Call(nil)
	case t.NumIn() == 1 && t.In(0).Kind() == reflect.String:
		fn.Call([]reflect.Value{reflect.ValueOf(value).Convert(t.In(0))})
	default:
		return unsupportedHandler(handler)
	}
	return nil
}

func unsupportedHandler(handler any) error {
	return errors.New("E012").WithDetail(fmt.Sprintf("Got %T.", handler))
}
