package domtest

import (
	"contact-intake/pkg/ui/dom"
)

// Document is a fake document. Its body is the root of every registered
// element.
type Document struct {
	body    *Element
	created []*Element
	ls      listeners
}

func NewDocument() *Document {
	return &Document{body: NewElement("body")}
}

// Register makes the document's queries return els for selector.
func (d *Document) Register(selector string, els ...*Element) *Document {
	d.body.Register(selector, els...)
	return d
}

func (d *Document) QuerySelector(selector string) dom.Element {
	return d.body.QuerySelector(selector)
}

func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	return d.body.QuerySelectorAll(selector)
}

// GetElementByID searches the tree below body, then created elements.
func (d *Document) GetElementByID(id string) dom.Element {
	if el := find(d.body, id); el != nil {
		return el
	}
	for _, el := range d.created {
		if el.id == id {
			return el
		}
	}
	return nil
}

func find(e *Element, id string) *Element {
	if e.id == id {
		return e
	}
	for _, c := range e.children {
		if found := find(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) CreateElement(tag string) dom.Element {
	el := NewElement(tag)
	d.created = append(d.created, el)
	return el
}

func (d *Document) Body() dom.Element { return d.body }

// BodyElement returns the body as a fake element.
func (d *Document) BodyElement() *Element { return d.body }

func (d *Document) AddEventListener(eventType string, fn func(dom.Event)) func() {
	return d.ls.add(eventType, fn)
}

// Dispatch fires ev at the document.
func (d *Document) Dispatch(eventType string, ev *Event) *Event {
	if ev == nil {
		ev = &Event{}
	}
	d.ls.dispatch(eventType, ev)
	return ev
}
