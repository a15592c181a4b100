// Package faq runs the FAQ page: one open answer per category and a topic
// picker that follows the scroll position.
package faq

import (
	"fmt"
	"strconv"
	"strings"

	"contact-intake/pkg/ui/dom"
)

const (
	PageClass        = "page-faq"
	CategorySelector = ".faq-category"
	ItemSelector     = ".faq-item"
	QuestionSelector = ".faq-question"
	AnswerSelector   = ".faq-answer"
	ToggleClass      = "faq-question-toggle"
	OpenClass        = "is-open"
	TopicSelectID    = "faq-topic-select"
	HeaderSelector   = ".site-header"

	scrollMargin = 20
	syncMargin   = 80
	// extra room added to the measured height while opening
	openPadding = 10
)

// Item is one question and answer.
type Item struct {
	el     dom.Element
	toggle dom.Element
	answer dom.Element
	open   bool
	// endTransition detaches the pending transitionend listener.
	endTransition func()
}

// Open reports whether the answer is expanded.
func (it *Item) Open() bool { return it.open }

// Category is a group of items of which at most one is open.
type Category struct {
	el    dom.Element
	Items []*Item
}

// FAQ is the page controller.
type FAQ struct {
	env        dom.Env
	Categories []*Category
	topic      dom.Element
}

// Init builds the accordion when the body carries the page-faq class, and
// returns nil otherwise. The first item of every category starts open.
func Init(env dom.Env) *FAQ {
	doc := env.Document
	body := doc.Body()
	if body == nil || !body.HasClass(PageClass) {
		return nil
	}

	f := &FAQ{env: env}
	for ci, catEl := range doc.QuerySelectorAll(CategorySelector) {
		cat := &Category{el: catEl}
		f.Categories = append(f.Categories, cat)

		for ii, itemEl := range catEl.QuerySelectorAll(ItemSelector) {
			question := itemEl.QuerySelector(QuestionSelector)
			answer := itemEl.QuerySelector(AnswerSelector)
			if question == nil || answer == nil {
				continue
			}

			toggle := doc.CreateElement("button")
			toggle.SetAttribute("type", "button")
			toggle.SetAttribute("class", ToggleClass)
			toggle.SetTextContent(strings.TrimSpace(question.TextContent()))
			answerID := fmt.Sprintf("faq-answer-%d-%d", ci, ii)
			answer.SetID(answerID)
			toggle.SetAttribute("aria-controls", answerID)

			question.SetTextContent("")
			question.AppendChild(toggle)

			it := &Item{el: itemEl, toggle: toggle, answer: answer}
			idx := len(cat.Items)
			cat.Items = append(cat.Items, it)
			toggle.AddEventListener("click", func(dom.Event) { f.Toggle(cat, idx) })

			f.setState(it, ii == 0, true)
		}
	}

	f.initTopics()
	return f
}

// Toggle flips the item at index, closing its siblings when it opens.
func (f *FAQ) Toggle(cat *Category, index int) {
	it := cat.Items[index]
	expand := !it.open
	if expand {
		for i, other := range cat.Items {
			if i != index {
				f.setState(other, false, false)
			}
		}
	}
	f.setState(it, expand, false)
}

// setState opens or closes an item. Animated changes run in three steps:
// measure the current and target heights, commit the target on the next
// frame, then settle to height auto once the height transition ends.
func (f *FAQ) setState(it *Item, expanded, immediate bool) {
	it.open = expanded
	it.toggle.SetAttribute("aria-expanded", strconv.FormatBool(expanded))
	it.answer.SetAttribute("aria-hidden", strconv.FormatBool(!expanded))
	it.el.ToggleClass(OpenClass, expanded)

	if immediate || f.env.ReduceMotion {
		if expanded {
			it.answer.SetStyle("height", "auto")
			it.answer.SetStyle("opacity", "1")
		} else {
			it.answer.SetStyle("height", "0px")
			it.answer.SetStyle("opacity", "0")
		}
		return
	}

	if it.endTransition != nil {
		it.endTransition()
		it.endTransition = nil
	}

	answer := it.answer
	startHeight := answer.BoundingClientRect().Height
	endHeight := 0.0
	if expanded {
		answer.SetStyle("height", "auto")
		endHeight = answer.ScrollHeight() + openPadding
	}
	answer.SetStyle("height", px(startHeight))
	endOpacity := "0"
	if expanded {
		answer.SetStyle("opacity", "0")
		endOpacity = "1"
	} else {
		answer.SetStyle("opacity", "1")
	}

	f.env.Window.RequestAnimationFrame(func(float64) {
		answer.SetStyle("height", px(endHeight))
		answer.SetStyle("opacity", endOpacity)
	})

	var remove func()
	remove = answer.AddEventListener("transitionend", func(ev dom.Event) {
		if ev.PropertyName() != "height" {
			return
		}
		remove()
		it.endTransition = nil
		if expanded {
			answer.SetStyle("height", "auto")
		}
	})
	it.endTransition = remove
}

func (f *FAQ) initTopics() {
	doc := f.env.Document
	f.topic = doc.GetElementByID(TopicSelectID)
	if f.topic == nil {
		return
	}

	f.topic.AddEventListener("change", func(dom.Event) {
		if v := f.topic.Value(); v != "" {
			f.ScrollToTopic(v)
		}
	})

	f.SyncTopic()

	observer, ok := f.env.Window.NewIntersectionObserver(func([]dom.Entry, dom.Observer) {
		f.SyncTopic()
	}, dom.ObserverOptions{Thresholds: []float64{0, 0.2, 0.6}})
	if !ok {
		return
	}
	for _, cat := range f.Categories {
		observer.Observe(cat.el)
	}
}

func (f *FAQ) headerHeight() float64 {
	if h := f.env.Document.QuerySelector(HeaderSelector); h != nil {
		return h.OffsetHeight()
	}
	return 0
}

// ScrollToTopic scrolls the category with id just below the header.
func (f *FAQ) ScrollToTopic(id string) {
	target := f.env.Document.GetElementByID(id)
	if target == nil {
		return
	}
	win := f.env.Window
	top := target.BoundingClientRect().Top + win.ScrollY() - (f.headerHeight() + scrollMargin)
	win.ScrollTo(top, !f.env.ReduceMotion)
}

// SyncTopic selects the category crossing the sync line below the header,
// falling back to the first category.
func (f *FAQ) SyncTopic() {
	if f.topic == nil {
		return
	}
	syncLine := f.headerHeight() + syncMargin
	active := ""
	for _, cat := range f.Categories {
		id := cat.el.ID()
		if id == "" {
			continue
		}
		r := cat.el.BoundingClientRect()
		if r.Top <= syncLine && r.Bottom > syncLine {
			active = id
		}
	}
	if active == "" && len(f.Categories) > 0 {
		active = f.Categories[0].el.ID()
	}
	if active != "" && f.topic.Value() != active {
		f.topic.SetValue(active)
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
