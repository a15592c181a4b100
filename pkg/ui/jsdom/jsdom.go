//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser through syscall/js.
package jsdom

import (
	"syscall/js"

	"contact-intake/pkg/ui/dom"
)

func truthy(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

type element struct{ v js.Value }

func wrap(v js.Value) dom.Element {
	if !truthy(v) {
		return nil
	}
	return element{v: v}
}

func wrapAll(list js.Value) []dom.Element {
	if !truthy(list) {
		return nil
	}
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, element{v: list.Index(i)})
	}
	return out
}

func unwrap(el dom.Element) js.Value {
	if e, ok := el.(element); ok {
		return e.v
	}
	return js.Null()
}

// listen attaches fn and returns a function detaching it.
func listen(target js.Value, eventType string, fn func(dom.Event), opts ...any) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(event{v: ev})
		return nil
	})
	target.Call("addEventListener", append([]any{eventType, cb}, opts...)...)
	return func() {
		target.Call("removeEventListener", eventType, cb)
		cb.Release()
	}
}

func (e element) QuerySelector(selector string) dom.Element {
	return wrap(e.v.Call("querySelector", selector))
}

func (e element) QuerySelectorAll(selector string) []dom.Element {
	return wrapAll(e.v.Call("querySelectorAll", selector))
}

func (e element) ID() string { return e.v.Get("id").String() }

func (e element) SetID(id string) { e.v.Set("id", id) }

func (e element) Attribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }

func (e element) RemoveAttribute(name string) { e.v.Call("removeAttribute", name) }

func (e element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e element) AddClass(names ...string) {
	e.v.Get("classList").Call("add", toAny(names)...)
}

func (e element) RemoveClass(names ...string) {
	e.v.Get("classList").Call("remove", toAny(names)...)
}

func (e element) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e element) TextContent() string {
	v := e.v.Get("textContent")
	if !truthy(v) {
		return ""
	}
	return v.String()
}

func (e element) SetTextContent(text string) { e.v.Set("textContent", text) }

func (e element) AppendChild(child dom.Element) { e.v.Call("appendChild", unwrap(child)) }

func (e element) Contains(other dom.Element) bool {
	o := unwrap(other)
	if !truthy(o) {
		return false
	}
	return e.v.Call("contains", o).Bool()
}

func (e element) BoundingClientRect() dom.Rect {
	r := e.v.Call("getBoundingClientRect")
	return dom.Rect{
		Top:    r.Get("top").Float(),
		Bottom: r.Get("bottom").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e element) ScrollHeight() float64 { return e.v.Get("scrollHeight").Float() }

func (e element) OffsetHeight() float64 { return e.v.Get("offsetHeight").Float() }

func (e element) AddEventListener(eventType string, fn func(dom.Event)) func() {
	return listen(e.v, eventType, fn)
}

func (e element) Focus() { e.v.Call("focus") }

func (e element) SetDisabled(disabled bool) { e.v.Set("disabled", disabled) }

func (e element) Value() string { return e.v.Get("value").String() }

func (e element) SetValue(value string) { e.v.Set("value", value) }

func (e element) FormValue(name string) string {
	v := js.Global().Get("FormData").New(e.v).Call("get", name)
	if !truthy(v) || v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e element) Reset() { e.v.Call("reset") }

type event struct{ v js.Value }

func (ev event) str(name string) string {
	if !truthy(ev.v) {
		return ""
	}
	v := ev.v.Get(name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (ev event) Key() string { return ev.str("key") }

func (ev event) PropertyName() string { return ev.str("propertyName") }

func (ev event) Target() dom.Element {
	if !truthy(ev.v) {
		return nil
	}
	return wrap(ev.v.Get("target"))
}

func (ev event) PreventDefault() {
	if truthy(ev.v) {
		ev.v.Call("preventDefault")
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
