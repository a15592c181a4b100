package domtest

import (
	"slices"

	"contact-intake/pkg/ui/dom"
)

// Window is a fake window. Animation frames queue until Flush.
type Window struct {
	Y      float64
	Height float64
	Path   string
	Orig   string
	// NoObserver makes NewIntersectionObserver report no support.
	NoObserver bool

	Observers []*Observer
	Scrolls   []ScrollCall

	media  map[string]*MediaQuery
	frames []func(float64)
	ls     listeners
}

// ScrollCall records one ScrollTo.
type ScrollCall struct {
	Top    float64
	Smooth bool
}

func NewWindow() *Window {
	return &Window{Height: 800, Path: "/", Orig: "http://localhost", media: make(map[string]*MediaQuery)}
}

func (w *Window) ScrollY() float64 { return w.Y }

func (w *Window) InnerHeight() float64 { return w.Height }

func (w *Window) Pathname() string { return w.Path }

func (w *Window) Origin() string { return w.Orig }

// Media returns the fake list for query, creating it unmatched.
func (w *Window) Media(query string) *MediaQuery {
	mq, ok := w.media[query]
	if !ok {
		mq = &MediaQuery{}
		w.media[query] = mq
	}
	return mq
}

func (w *Window) MatchMedia(query string) dom.MediaQuery { return w.Media(query) }

func (w *Window) RequestAnimationFrame(fn func(float64)) {
	w.frames = append(w.frames, fn)
}

// PendingFrames reports how many frames are queued.
func (w *Window) PendingFrames() int { return len(w.frames) }

// Flush runs the queued frames at timestamp. Frames requested while
// flushing wait for the next Flush.
func (w *Window) Flush(timestamp float64) {
	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn(timestamp)
	}
}

func (w *Window) ScrollTo(top float64, smooth bool) {
	w.Scrolls = append(w.Scrolls, ScrollCall{Top: top, Smooth: smooth})
}

func (w *Window) AddEventListener(eventType string, fn func(dom.Event)) func() {
	return w.ls.add(eventType, fn)
}

// Dispatch fires ev at the window.
func (w *Window) Dispatch(eventType string, ev *Event) {
	if ev == nil {
		ev = &Event{}
	}
	w.ls.dispatch(eventType, ev)
}

// ScrollToY moves the page and fires a scroll event.
func (w *Window) ScrollToY(y float64) {
	w.Y = y
	w.Dispatch("scroll", nil)
}

func (w *Window) NewIntersectionObserver(callback func([]dom.Entry, dom.Observer), opts dom.ObserverOptions) (dom.Observer, bool) {
	if w.NoObserver {
		return nil, false
	}
	o := &Observer{Options: opts, callback: callback}
	w.Observers = append(w.Observers, o)
	return o, true
}

// MediaQuery is a fake media query list.
type MediaQuery struct {
	Match bool
	ls    listeners
}

func (m *MediaQuery) Matches() bool { return m.Match }

func (m *MediaQuery) OnChange(fn func(bool)) func() {
	return m.ls.add("change", func(dom.Event) { fn(m.Match) })
}

// Set changes the match state and notifies listeners.
func (m *MediaQuery) Set(match bool) {
	m.Match = match
	m.ls.dispatch("change", &Event{})
}

// Observer is a fake IntersectionObserver.
type Observer struct {
	Options      dom.ObserverOptions
	Disconnected bool

	observed []*Element
	callback func([]dom.Entry, dom.Observer)
}

func (o *Observer) Observe(el dom.Element) {
	e := el.(*Element)
	if !slices.Contains(o.observed, e) {
		o.observed = append(o.observed, e)
	}
}

func (o *Observer) Unobserve(el dom.Element) {
	e := el.(*Element)
	o.observed = slices.DeleteFunc(o.observed, func(x *Element) bool { return x == e })
}

func (o *Observer) Disconnect() {
	o.Disconnected = true
	o.observed = nil
}

// Observed returns the elements being watched.
func (o *Observer) Observed() []*Element { return o.observed }

// IsObserving reports whether el is watched.
func (o *Observer) IsObserving(el *Element) bool { return slices.Contains(o.observed, el) }

// Intersect delivers one entry per element with the given state.
func (o *Observer) Intersect(intersecting bool, els ...*Element) {
	entries := make([]dom.Entry, len(els))
	for i, el := range els {
		entries[i] = dom.Entry{Target: el, IsIntersecting: intersecting}
	}
	o.callback(entries, o)
}
