package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-intake/pkg/ui/dom"
	"contact-intake/pkg/ui/domtest"
)

func TestCurrentPage(t *testing.T) {
	assert.Equal(t, "index.html", CurrentPage("/"))
	assert.Equal(t, "index.html", CurrentPage(""))
	assert.Equal(t, "about.html", CurrentPage("/about.html"))
	assert.Equal(t, "faq.html", CurrentPage("/site/faq.html"))
}

func TestMarkActive(t *testing.T) {
	home := domtest.NewElement("a")
	home.SetAttribute("href", "index.html")
	about := domtest.NewElement("a")
	about.SetAttribute("href", "about.html#team")
	about.SetAttribute("aria-current", "page")
	contact := domtest.NewElement("a")

	doc := domtest.NewDocument().Register(LinksSelector, home, about, contact)
	win := domtest.NewWindow()
	win.Path = "/about.html"

	MarkActive(dom.Env{Document: doc, Window: win})

	assert.True(t, about.HasClass(CurrentClass))
	assert.Equal(t, "page", about.Attr("aria-current"))
	assert.False(t, home.HasClass(CurrentClass))
	_, ok := home.Attribute("aria-current")
	assert.False(t, ok)
	assert.False(t, contact.HasClass(CurrentClass))

	win.Path = "/"
	MarkActive(dom.Env{Document: doc, Window: win})
	assert.True(t, home.HasClass(CurrentClass))
	_, ok = about.Attribute("aria-current")
	assert.False(t, ok)
}

type menuPage struct {
	doc    *domtest.Document
	win    *domtest.Window
	header *domtest.Element
	nav    *domtest.Element
	toggle *domtest.Element
	links  *domtest.Element
	link   *domtest.Element
	cta    *domtest.Element
	menu   *Mobile
}

func newMenuPage(t *testing.T) *menuPage {
	t.Helper()
	p := &menuPage{
		doc:    domtest.NewDocument(),
		win:    domtest.NewWindow(),
		header: domtest.NewElement("header", "site-header"),
		nav:    domtest.NewElement("nav", "nav-container"),
		toggle: domtest.NewElement("button", "mobile-menu-toggle"),
		links:  domtest.NewElement("ul", "nav-links"),
		link:   domtest.NewElement("a"),
		cta:    domtest.NewElement("a", "nav-cta"),
	}
	p.links.Register("a", p.link)
	p.nav.Register(".mobile-menu-toggle", p.toggle).Register(".nav-links", p.links).Register(".nav-cta", p.cta)
	p.header.Register(".nav-container", p.nav)
	p.doc.Register(".site-header", p.header).
		Register(".nav-container", p.nav).
		Register(".mobile-menu-toggle", p.toggle).
		Register(".nav-links", p.links).
		Register(".nav-cta", p.cta)
	p.win.Media(MobileBreakpoint).Match = true

	p.menu = InitMobile(dom.Env{Document: p.doc, Window: p.win})
	require.NotNil(t, p.menu)
	return p
}

func (p *menuPage) assertOpen(t *testing.T, open bool) {
	t.Helper()
	assert.Equal(t, open, p.header.HasClass(MenuOpenClass))
	assert.Equal(t, open, p.doc.BodyElement().HasClass(BodyOpenClass))
	want := "false"
	if open {
		want = "true"
	}
	assert.Equal(t, want, p.toggle.Attr("aria-expanded"))
}

func TestInitMobileSetsAria(t *testing.T) {
	p := newMenuPage(t)
	assert.Equal(t, DefaultLinksID, p.toggle.Attr("aria-controls"))
	assert.Equal(t, DefaultLinksID, p.links.ID())
	p.assertOpen(t, false)
}

func TestInitMobileKeepsExistingID(t *testing.T) {
	doc := domtest.NewDocument()
	links := domtest.NewElement("ul")
	links.SetID("primary")
	doc.Register(".site-header", domtest.NewElement("header")).
		Register(".nav-container", domtest.NewElement("nav")).
		Register(".mobile-menu-toggle", domtest.NewElement("button")).
		Register(".nav-links", links).
		Register(".nav-cta", domtest.NewElement("a"))

	require.NotNil(t, InitMobile(dom.Env{Document: doc, Window: domtest.NewWindow()}))
	assert.Equal(t, "primary", links.ID())
}

func TestInitMobileMissingParts(t *testing.T) {
	doc := domtest.NewDocument().Register(".site-header", domtest.NewElement("header"))
	assert.Nil(t, InitMobile(dom.Env{Document: doc, Window: domtest.NewWindow()}))
}

func TestToggleOpensAndCloses(t *testing.T) {
	p := newMenuPage(t)

	p.toggle.Click()
	p.assertOpen(t, true)

	p.toggle.Click()
	p.assertOpen(t, false)
}

func TestLinkAndCTACloseMenu(t *testing.T) {
	p := newMenuPage(t)

	p.toggle.Click()
	p.link.Click()
	p.assertOpen(t, false)

	p.toggle.Click()
	p.cta.Click()
	p.assertOpen(t, false)
}

func TestEscapeClosesMenu(t *testing.T) {
	p := newMenuPage(t)
	p.toggle.Click()

	p.doc.Dispatch("keydown", &domtest.Event{KeyName: "Enter"})
	p.assertOpen(t, true)

	p.doc.Dispatch("keydown", &domtest.Event{KeyName: "Escape"})
	p.assertOpen(t, false)
}

func TestOutsideClickClosesOnMobileOnly(t *testing.T) {
	p := newMenuPage(t)
	outside := domtest.NewElement("main")
	p.doc.Register("main", outside)

	p.toggle.Click()
	p.doc.Dispatch("click", &domtest.Event{TargetEl: p.toggle})
	p.assertOpen(t, true)

	p.doc.Dispatch("click", &domtest.Event{TargetEl: outside})
	p.assertOpen(t, false)

	p.win.Media(MobileBreakpoint).Match = false
	p.menu.SetOpen(true)
	p.doc.Dispatch("click", &domtest.Event{TargetEl: outside})
	p.assertOpen(t, true)
}

func TestLeavingBreakpointClosesMenu(t *testing.T) {
	p := newMenuPage(t)
	p.toggle.Click()

	p.win.Media(MobileBreakpoint).Set(true)
	p.assertOpen(t, true)

	p.win.Media(MobileBreakpoint).Set(false)
	p.assertOpen(t, false)
}
