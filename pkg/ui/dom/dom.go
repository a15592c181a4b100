// Package dom is the slice of the browser DOM the page controllers use.
// Controllers only talk to these interfaces; jsdom binds them to the real
// browser and domtest provides an in-memory fake.
//
// Elements from the browser binding are not comparable with ==. Track
// elements by index when identity matters.
package dom

// Rect is the part of a DOMRect the controllers read.
type Rect struct {
	Top    float64
	Bottom float64
	Height float64
}

// Element is a DOM element.
type Element interface {
	// QuerySelector returns nil when nothing matches.
	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element

	ID() string
	SetID(id string)
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	ToggleClass(name string, on bool)

	SetStyle(property, value string)

	TextContent() string
	SetTextContent(text string)
	AppendChild(child Element)
	Contains(other Element) bool

	BoundingClientRect() Rect
	ScrollHeight() float64
	OffsetHeight() float64

	// AddEventListener returns a function removing the listener.
	AddEventListener(eventType string, fn func(Event)) func()

	Focus()
	SetDisabled(disabled bool)
	Value() string
	SetValue(value string)

	// FormValue reads a named field of a form element, "" when absent.
	FormValue(name string) string
	// Reset resets a form element.
	Reset()
}

// Event is a DOM event.
type Event interface {
	Key() string
	Target() Element
	PropertyName() string
	PreventDefault()
}

// Document is the page document.
type Document interface {
	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element
	GetElementByID(id string) Element
	CreateElement(tag string) Element
	Body() Element
	AddEventListener(eventType string, fn func(Event)) func()
}

// MediaQuery is a MediaQueryList.
type MediaQuery interface {
	Matches() bool
	OnChange(fn func(matches bool)) func()
}

// Entry is one IntersectionObserver record.
type Entry struct {
	Target         Element
	IsIntersecting bool
}

// Observer is an IntersectionObserver.
type Observer interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// ObserverOptions configures a new Observer.
type ObserverOptions struct {
	Thresholds []float64
	RootMargin string
}

// Window is the browser window.
type Window interface {
	ScrollY() float64
	InnerHeight() float64
	Pathname() string
	// Origin is the page origin, such as https://example.com.
	Origin() string
	MatchMedia(query string) MediaQuery
	RequestAnimationFrame(fn func(timestamp float64))
	ScrollTo(top float64, smooth bool)
	AddEventListener(eventType string, fn func(Event)) func()

	// NewIntersectionObserver returns false when the browser has no
	// IntersectionObserver.
	NewIntersectionObserver(callback func(entries []Entry, obs Observer), opts ObserverOptions) (Observer, bool)
}

// ReducedMotionQuery matches users who asked for less animation.
const ReducedMotionQuery = "(prefers-reduced-motion: reduce)"

// Env is what every controller is started with.
type Env struct {
	Document     Document
	Window       Window
	ReduceMotion bool
}

// NewEnv reads the reduced-motion preference once.
func NewEnv(doc Document, win Window) Env {
	return Env{
		Document:     doc,
		Window:       win,
		ReduceMotion: win.MatchMedia(ReducedMotionQuery).Matches(),
	}
}
