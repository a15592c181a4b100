package nav

import "contact-intake/pkg/ui/dom"

const (
	MobileBreakpoint = "(max-width: 768px)"
	MenuOpenClass    = "menu-open"
	BodyOpenClass    = "mobile-menu-open"
	DefaultLinksID   = "site-nav-links"
)

// Mobile is the hamburger menu.
type Mobile struct {
	doc    dom.Document
	header dom.Element
	nav    dom.Element
	toggle dom.Element
	mq     dom.MediaQuery
}

// InitMobile wires the menu toggle. It returns nil unless the header, nav
// container, toggle, link list and call to action are all present.
func InitMobile(env dom.Env) *Mobile {
	doc := env.Document
	header := doc.QuerySelector(".site-header")
	nav := doc.QuerySelector(".nav-container")
	toggle := doc.QuerySelector(".mobile-menu-toggle")
	links := doc.QuerySelector(".nav-links")
	cta := doc.QuerySelector(".nav-cta")
	if header == nil || nav == nil || toggle == nil || links == nil || cta == nil {
		return nil
	}

	m := &Mobile{
		doc:    doc,
		header: header,
		nav:    nav,
		toggle: toggle,
		mq:     env.Window.MatchMedia(MobileBreakpoint),
	}

	toggle.SetAttribute("aria-expanded", "false")
	toggle.SetAttribute("aria-controls", DefaultLinksID)
	if links.ID() == "" {
		links.SetID(DefaultLinksID)
	}

	toggle.AddEventListener("click", func(dom.Event) {
		v, _ := toggle.Attribute("aria-expanded")
		m.SetOpen(v != "true")
	})
	for _, link := range links.QuerySelectorAll("a") {
		link.AddEventListener("click", func(dom.Event) { m.SetOpen(false) })
	}
	cta.AddEventListener("click", func(dom.Event) { m.SetOpen(false) })

	doc.AddEventListener("keydown", func(ev dom.Event) {
		if ev.Key() == "Escape" {
			m.SetOpen(false)
		}
	})
	doc.AddEventListener("click", func(ev dom.Event) {
		if !m.mq.Matches() || !m.Open() {
			return
		}
		if target := ev.Target(); target == nil || !nav.Contains(target) {
			m.SetOpen(false)
		}
	})
	m.mq.OnChange(func(matches bool) {
		if !matches {
			m.SetOpen(false)
		}
	})
	return m
}

// SetOpen opens or closes the menu.
func (m *Mobile) SetOpen(open bool) {
	m.header.ToggleClass(MenuOpenClass, open)
	if open {
		m.toggle.SetAttribute("aria-expanded", "true")
	} else {
		m.toggle.SetAttribute("aria-expanded", "false")
	}
	if body := m.doc.Body(); body != nil {
		body.ToggleClass(BodyOpenClass, open)
	}
}

// Open reports whether the menu is open.
func (m *Mobile) Open() bool { return m.header.HasClass(MenuOpenClass) }
