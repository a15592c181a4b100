//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"contact-intake/pkg/ui/dom"
)

type document struct{ v js.Value }

// Document returns the page document.
func Document() dom.Document {
	return document{v: js.Global().Get("document")}
}

func (d document) QuerySelector(selector string) dom.Element {
	return wrap(d.v.Call("querySelector", selector))
}

func (d document) QuerySelectorAll(selector string) []dom.Element {
	return wrapAll(d.v.Call("querySelectorAll", selector))
}

func (d document) GetElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d document) CreateElement(tag string) dom.Element {
	return wrap(d.v.Call("createElement", tag))
}

func (d document) Body() dom.Element { return wrap(d.v.Get("body")) }

func (d document) AddEventListener(eventType string, fn func(dom.Event)) func() {
	return listen(d.v, eventType, fn)
}

type window struct{ v js.Value }

// Window returns the browser window.
func Window() dom.Window {
	return window{v: js.Global()}
}

func (w window) ScrollY() float64 {
	v := w.v.Get("scrollY")
	if !truthy(v) {
		return 0
	}
	return v.Float()
}

func (w window) InnerHeight() float64 {
	if h := w.v.Get("innerHeight"); truthy(h) && h.Float() > 0 {
		return h.Float()
	}
	return w.v.Get("document").Get("documentElement").Get("clientHeight").Float()
}

func (w window) Pathname() string { return w.v.Get("location").Get("pathname").String() }

func (w window) Origin() string { return w.v.Get("location").Get("origin").String() }

func (w window) MatchMedia(query string) dom.MediaQuery {
	return mediaQuery{v: w.v.Call("matchMedia", query)}
}

func (w window) RequestAnimationFrame(fn func(float64)) {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		cb.Release()
		ts := 0.0
		if len(args) > 0 {
			ts = args[0].Float()
		}
		fn(ts)
		return nil
	})
	w.v.Call("requestAnimationFrame", cb)
}

func (w window) ScrollTo(top float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	w.v.Call("scrollTo", map[string]any{"top": top, "behavior": behavior})
}

func (w window) AddEventListener(eventType string, fn func(dom.Event)) func() {
	if eventType == "scroll" {
		return listen(w.v, eventType, fn, map[string]any{"passive": true})
	}
	return listen(w.v, eventType, fn)
}

func (w window) NewIntersectionObserver(callback func([]dom.Entry, dom.Observer), opts dom.ObserverOptions) (dom.Observer, bool) {
	ctor := w.v.Get("IntersectionObserver")
	if !truthy(ctor) {
		return nil, false
	}

	o := &observer{}
	o.cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		list := args[0]
		entries := make([]dom.Entry, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			e := list.Index(i)
			entries = append(entries, dom.Entry{
				Target:         wrap(e.Get("target")),
				IsIntersecting: e.Get("isIntersecting").Bool(),
			})
		}
		callback(entries, o)
		return nil
	})

	init := map[string]any{}
	if len(opts.Thresholds) > 0 {
		th := make([]any, len(opts.Thresholds))
		for i, t := range opts.Thresholds {
			th[i] = t
		}
		init["threshold"] = th
	}
	if opts.RootMargin != "" {
		init["rootMargin"] = opts.RootMargin
	}
	o.v = ctor.New(o.cb, init)
	return o, true
}

type observer struct {
	v  js.Value
	cb js.Func
}

func (o *observer) Observe(el dom.Element) { o.v.Call("observe", unwrap(el)) }

func (o *observer) Unobserve(el dom.Element) { o.v.Call("unobserve", unwrap(el)) }

func (o *observer) Disconnect() {
	o.v.Call("disconnect")
	o.cb.Release()
}

type mediaQuery struct{ v js.Value }

func (m mediaQuery) Matches() bool { return m.v.Get("matches").Bool() }

func (m mediaQuery) OnChange(fn func(bool)) func() {
	return listen(m.v, "change", func(dom.Event) {
		fn(m.Matches())
	})
}
