// Package domtest is an in-memory dom implementation for controller tests.
// It does not parse CSS: query results are registered per selector with
// Element.Register and Document.Register.
package domtest

import (
	"slices"
	"strings"

	"contact-intake/pkg/ui/dom"
)

type listener struct {
	id int
	fn func(dom.Event)
}

type listeners struct {
	next int
	m    map[string][]listener
}

func (l *listeners) add(eventType string, fn func(dom.Event)) func() {
	if l.m == nil {
		l.m = make(map[string][]listener)
	}
	l.next++
	id := l.next
	l.m[eventType] = append(l.m[eventType], listener{id: id, fn: fn})
	return func() {
		l.m[eventType] = slices.DeleteFunc(l.m[eventType], func(x listener) bool { return x.id == id })
	}
}

func (l *listeners) dispatch(eventType string, ev dom.Event) {
	for _, x := range slices.Clone(l.m[eventType]) {
		x.fn(ev)
	}
}

func (l *listeners) count(eventType string) int {
	return len(l.m[eventType])
}

// Element is a fake element.
type Element struct {
	Tag      string
	Rect     dom.Rect
	Scroll   float64
	Offset   float64
	Disabled bool
	Focused  bool
	Resets   int
	// Fields backs FormValue.
	Fields map[string]string

	id       string
	attrs    map[string]string
	classes  []string
	style    map[string]string
	text     string
	value    string
	parent   *Element
	children []*Element
	queries  map[string][]*Element
	ls       listeners
}

// NewElement returns a detached element.
func NewElement(tag string, classes ...string) *Element {
	return &Element{
		Tag:     tag,
		attrs:   make(map[string]string),
		style:   make(map[string]string),
		queries: make(map[string][]*Element),
		Fields:  make(map[string]string),
		classes: slices.Clone(classes),
	}
}

// Register makes QuerySelector and QuerySelectorAll return els for selector.
// Registered elements become children unless they already have a parent.
func (e *Element) Register(selector string, els ...*Element) *Element {
	e.queries[selector] = append(e.queries[selector], els...)
	for _, el := range els {
		if el.parent == nil {
			e.AppendChild(el)
		}
	}
	return e
}

func (e *Element) QuerySelector(selector string) dom.Element {
	if els := e.queries[selector]; len(els) > 0 {
		return els[0]
	}
	return nil
}

func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	return toDOM(e.queries[selector])
}

func (e *Element) ID() string { return e.id }

func (e *Element) SetID(id string) { e.id = id }

func (e *Element) Attribute(name string) (string, bool) {
	if name == "id" {
		return e.id, e.id != ""
	}
	v, ok := e.attrs[name]
	return v, ok
}

// Attr returns the attribute value, "" when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.Attribute(name)
	return v
}

func (e *Element) SetAttribute(name, value string) {
	if name == "id" {
		e.id = value
		return
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	if name == "id" {
		e.id = ""
		return
	}
	delete(e.attrs, name)
}

func (e *Element) HasClass(name string) bool { return slices.Contains(e.classes, name) }

func (e *Element) AddClass(names ...string) {
	for _, n := range names {
		if !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
}

func (e *Element) RemoveClass(names ...string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return slices.Contains(names, c) })
}

func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// ClassName returns the class attribute.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

func (e *Element) Style(property string) string { return e.style[property] }

func (e *Element) SetStyle(property, value string) { e.style[property] = value }

func (e *Element) TextContent() string { return e.text }

func (e *Element) SetTextContent(text string) {
	e.text = text
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *Element) AppendChild(child dom.Element) {
	c := child.(*Element)
	if c.parent != nil {
		c.parent.children = slices.DeleteFunc(c.parent.children, func(x *Element) bool { return x == c })
	}
	c.parent = e
	e.children = append(e.children, c)
}

// Children returns the appended children.
func (e *Element) Children() []*Element { return e.children }

func (e *Element) Contains(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	for n := o; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

func (e *Element) BoundingClientRect() dom.Rect { return e.Rect }

func (e *Element) ScrollHeight() float64 { return e.Scroll }

func (e *Element) OffsetHeight() float64 { return e.Offset }

func (e *Element) AddEventListener(eventType string, fn func(dom.Event)) func() {
	return e.ls.add(eventType, fn)
}

// Listeners reports how many listeners are attached for eventType.
func (e *Element) Listeners(eventType string) int { return e.ls.count(eventType) }

// Dispatch fires ev at e, then at each ancestor, setting its target to e.
func (e *Element) Dispatch(eventType string, ev *Event) *Event {
	if ev == nil {
		ev = &Event{}
	}
	if ev.TargetEl == nil {
		ev.TargetEl = e
	}
	for n := e; n != nil; n = n.parent {
		n.ls.dispatch(eventType, ev)
	}
	return ev
}

// Click dispatches a click event.
func (e *Element) Click() *Event { return e.Dispatch("click", nil) }

func (e *Element) Focus() { e.Focused = true }

func (e *Element) SetDisabled(disabled bool) { e.Disabled = disabled }

func (e *Element) Value() string { return e.value }

func (e *Element) SetValue(value string) { e.value = value }

func (e *Element) FormValue(name string) string { return e.Fields[name] }

func (e *Element) Reset() {
	e.Resets++
	clear(e.Fields)
}

// Event is a fake event.
type Event struct {
	KeyName   string
	TargetEl  *Element
	Property  string
	Prevented bool
}

func (ev *Event) Key() string { return ev.KeyName }

func (ev *Event) Target() dom.Element {
	if ev.TargetEl == nil {
		return nil
	}
	return ev.TargetEl
}

func (ev *Event) PropertyName() string { return ev.Property }

func (ev *Event) PreventDefault() { ev.Prevented = true }

func toDOM(els []*Element) []dom.Element {
	out := make([]dom.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}
