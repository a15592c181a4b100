// Package reveal fades page sections in as they scroll into view.
package reveal

import (
	"strconv"

	"contact-intake/pkg/ui/dom"
)

// Selectors lists the elements animated on their own.
var Selectors = []string{
	".hero-content > *",
	".hero-image",
	".stats-container .stat-item",
	".section-header > *",
	".services-intro",
	".tabs-wrapper",
	".story-grid > *",
	".faq-item",
	".education-media-grid .education-image-slot",
	".education-context-inline .education-reality-card",
	".education-topic-accordion .education-topic",
	".contact-grid > *",
	".cta-content > *",
	".footer-top > *",
}

// StaggerGroup animates the children of Parent one after another.
type StaggerGroup struct {
	Parent string
	Child  string
}

var StaggerGroups = []StaggerGroup{
	{".services-grid", ".service-card"},
	{".career-timeline", ".career-card"},
	{".values-grid", ".value-card"},
	{".team-grid", ".team-card"},
	{".philosophy-pillars", ".pillar-card"},
	{".services-detail-grid", ".service-detail"},
	{".framework-grid", ".framework-item"},
	{".process-steps", ".process-step"},
	{".serve-grid", ".serve-card"},
}

// Variant picks the direction an element enters from.
type Variant struct {
	Selector string
	Name     string
}

var Variants = []Variant{
	{".hero-image", "right"},
	{".story-grid > :first-child", "left"},
	{".story-grid > :last-child", "right"},
	{".services-detail-grid .service-detail:nth-child(odd)", "left"},
	{".services-detail-grid .service-detail:nth-child(even)", "right"},
	{".cta-content > *", "soft"},
	{".stats-container .stat-item", "soft"},
}

const (
	AnimatedSelector = "[data-animate]"
	VisibleClass     = "is-visible"
	MotionClass      = "motion-enabled"

	visibleThreshold = 0.01
)

// Init marks the animated elements and reveals them. Elements already near
// the viewport show at once; the rest show on their first intersection.
func Init(env dom.Env) {
	doc, win := env.Document, env.Window

	for _, sel := range Selectors {
		for _, el := range doc.QuerySelectorAll(sel) {
			el.SetAttribute("data-animate", "")
		}
	}
	for _, g := range StaggerGroups {
		for _, parent := range doc.QuerySelectorAll(g.Parent) {
			parent.SetAttribute("data-stagger", "")
			for i, child := range parent.QuerySelectorAll(g.Child) {
				child.SetAttribute("data-animate", "")
				child.SetStyle("--stagger-index", strconv.Itoa(i))
			}
		}
	}
	for _, v := range Variants {
		for _, el := range doc.QuerySelectorAll(v.Selector) {
			el.SetAttribute("data-reveal", v.Name)
		}
	}

	animated := doc.QuerySelectorAll(AnimatedSelector)
	if env.ReduceMotion {
		showAll(animated)
		return
	}

	for _, el := range animated {
		if NearViewport(el.BoundingClientRect(), win.InnerHeight()) {
			el.AddClass(VisibleClass)
		}
	}
	if body := doc.Body(); body != nil {
		body.AddClass(MotionClass)
	}

	// The observer is released once every watched element has shown.
	pending := 0
	observer, ok := win.NewIntersectionObserver(func(entries []dom.Entry, obs dom.Observer) {
		for _, entry := range entries {
			if !entry.IsIntersecting || entry.Target.HasClass(VisibleClass) {
				continue
			}
			entry.Target.AddClass(VisibleClass)
			obs.Unobserve(entry.Target)
			pending--
		}
		if pending <= 0 {
			obs.Disconnect()
		}
	}, dom.ObserverOptions{Thresholds: []float64{visibleThreshold}, RootMargin: "0px"})
	if !ok {
		showAll(animated)
		return
	}

	for _, el := range animated {
		if !el.HasClass(VisibleClass) {
			observer.Observe(el)
			pending++
		}
	}
	if pending == 0 {
		observer.Disconnect()
	}
}

// NearViewport reports whether r lies in the band that counts as already
// on screen.
func NearViewport(r dom.Rect, viewportHeight float64) bool {
	return r.Bottom > -20 && r.Top < viewportHeight*0.95
}

func showAll(els []dom.Element) {
	for _, el := range els {
		el.AddClass(VisibleClass)
	}
}
