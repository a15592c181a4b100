// Package nav drives the site navigation: the current-page marker and the
// mobile menu.
package nav

import (
	"strings"

	"contact-intake/pkg/ui/dom"
)

const (
	LinksSelector = ".nav-links a"
	CurrentClass  = "is-current"
	DefaultPage   = "index.html"
)

// CurrentPage returns the last segment of pathname, or DefaultPage.
func CurrentPage(pathname string) string {
	page := pathname[strings.LastIndex(pathname, "/")+1:]
	if page == "" {
		return DefaultPage
	}
	return page
}

// MarkActive flags the navigation links pointing at the current page.
func MarkActive(env dom.Env) {
	current := CurrentPage(env.Window.Pathname())
	for _, link := range env.Document.QuerySelectorAll(LinksSelector) {
		href, _ := link.Attribute("href")
		href, _, _ = strings.Cut(href, "#")
		isCurrent := href == current

		link.ToggleClass(CurrentClass, isCurrent)
		if isCurrent {
			link.SetAttribute("aria-current", "page")
		} else {
			link.RemoveAttribute("aria-current")
		}
	}
}
