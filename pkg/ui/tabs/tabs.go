// Package tabs turns the "what sets us apart" section into an accessible
// tab list.
package tabs

import (
	"strings"

	"contact-intake/pkg/ui/dom"
)

const (
	ListSelector   = ".tabs-nav"
	ButtonSelector = ".tabs-nav .tab-btn"
	PanelSelector  = ".tabs-content .tab-panel"
	ActiveClass    = "active"
	ListLabel      = "What Sets Us Apart"
)

// Tabs is one tab list and its panels.
type Tabs struct {
	doc     dom.Document
	buttons []dom.Element
	panels  []dom.Element
}

// Init applies the ARIA roles and binds click and keyboard handling. It
// returns nil when there are no buttons or no panels.
func Init(env dom.Env) *Tabs {
	doc := env.Document
	t := &Tabs{
		doc:     doc,
		buttons: doc.QuerySelectorAll(ButtonSelector),
		panels:  doc.QuerySelectorAll(PanelSelector),
	}
	if len(t.buttons) == 0 || len(t.panels) == 0 {
		return nil
	}

	if list := doc.QuerySelector(ListSelector); list != nil {
		list.SetAttribute("role", "tablist")
		list.SetAttribute("aria-label", ListLabel)
	}

	for i, button := range t.buttons {
		name, _ := button.Attribute("data-tab")
		button.SetAttribute("id", "tab-btn-"+name)
		button.SetAttribute("role", "tab")
		button.SetAttribute("aria-controls", "tab-"+name)
		if button.HasClass(ActiveClass) {
			button.SetAttribute("aria-selected", "true")
			button.SetAttribute("tabindex", "0")
		} else {
			button.SetAttribute("aria-selected", "false")
			button.SetAttribute("tabindex", "-1")
		}

		button.AddEventListener("click", func(dom.Event) { t.Activate(i) })
		button.AddEventListener("keydown", func(ev dom.Event) { t.onKey(i, ev) })
	}

	for _, panel := range t.panels {
		panel.SetAttribute("role", "tabpanel")
		if id := panel.ID(); id != "" {
			panel.SetAttribute("aria-labelledby", "tab-btn-"+strings.TrimPrefix(id, "tab-"))
		}
		if !panel.HasClass(ActiveClass) {
			panel.SetAttribute("hidden", "hidden")
		}
	}
	return t
}

func (t *Tabs) onKey(index int, ev dom.Event) {
	n := len(t.buttons)
	next := index
	switch ev.Key() {
	case "ArrowRight":
		next = (index + 1) % n
	case "ArrowLeft":
		next = (index - 1 + n) % n
	case "Home":
		next = 0
	case "End":
		next = n - 1
	case "Enter", " ":
		t.Activate(index)
		return
	default:
		return
	}
	ev.PreventDefault()
	t.buttons[next].Focus()
	t.Activate(next)
}

// Activate selects the tab at index. When its panel is missing every tab
// is left deselected.
func (t *Tabs) Activate(index int) {
	for _, b := range t.buttons {
		b.RemoveClass(ActiveClass)
		b.SetAttribute("aria-selected", "false")
		b.SetAttribute("tabindex", "-1")
	}
	for _, p := range t.panels {
		p.RemoveClass(ActiveClass)
		p.SetAttribute("hidden", "hidden")
	}

	button := t.buttons[index]
	name, _ := button.Attribute("data-tab")
	panel := t.doc.GetElementByID("tab-" + name)
	if panel == nil {
		return
	}

	button.AddClass(ActiveClass)
	button.SetAttribute("aria-selected", "true")
	button.SetAttribute("tabindex", "0")
	panel.AddClass(ActiveClass)
	panel.RemoveAttribute("hidden")
}

// Selected returns the index of the active tab, or -1.
func (t *Tabs) Selected() int {
	for i, b := range t.buttons {
		if b.HasClass(ActiveClass) {
			return i
		}
	}
	return -1
}
