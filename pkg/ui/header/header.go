// Package header keeps the sticky site header in step with the scroll
// position.
package header

import "contact-intake/pkg/ui/dom"

const (
	Selector       = ".site-header"
	ScrolledClass  = "is-scrolled"
	HiddenClass    = "is-hidden"
	MenuOpenClass  = "menu-open"
	ScrolledAfter  = 12
	AlwaysShownTop = 24
	HideAfter      = 220
	DeltaThreshold = 8
)

// Controller tracks the header's hidden state between frames.
type Controller struct {
	win     dom.Window
	header  dom.Element
	lastY   float64
	hidden  bool
	ticking bool
}

// Init applies the initial state and listens for scrolling. It returns nil
// when the page has no header.
func Init(env dom.Env) *Controller {
	header := env.Document.QuerySelector(Selector)
	if header == nil {
		return nil
	}
	c := &Controller{win: env.Window, header: header, lastY: env.Window.ScrollY()}
	c.Update()
	env.Window.AddEventListener("scroll", func(dom.Event) { c.onScroll() })
	return c
}

// onScroll coalesces scroll events into one update per frame.
func (c *Controller) onScroll() {
	if c.ticking {
		return
	}
	c.ticking = true
	c.win.RequestAnimationFrame(func(float64) { c.Update() })
}

// Update recomputes both classes from the current scroll offset.
func (c *Controller) Update() {
	y := c.win.ScrollY()
	down := y > c.lastY+DeltaThreshold
	up := y < c.lastY-DeltaThreshold

	c.header.ToggleClass(ScrolledClass, y > ScrolledAfter)

	switch {
	case c.header.HasClass(MenuOpenClass), y <= AlwaysShownTop:
		c.hidden = false
	case y > HideAfter && down:
		c.hidden = true
	case up:
		c.hidden = false
	}

	c.header.ToggleClass(HiddenClass, c.hidden)
	c.lastY = y
	c.ticking = false
}

// Hidden reports whether the header is currently hidden.
func (c *Controller) Hidden() bool { return c.hidden }
