package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-intake/pkg/ui/dom"
	"contact-intake/pkg/ui/domtest"
)

type fixture struct {
	tabs    *Tabs
	list    *domtest.Element
	buttons []*domtest.Element
	panels  []*domtest.Element
}

func setup(t *testing.T, names ...string) *fixture {
	t.Helper()
	f := &fixture{list: domtest.NewElement("div", "tabs-nav")}
	for i, name := range names {
		b := domtest.NewElement("button", "tab-btn")
		b.SetAttribute("data-tab", name)
		p := domtest.NewElement("div", "tab-panel")
		p.SetID("tab-" + name)
		if i == 0 {
			b.AddClass(ActiveClass)
			p.AddClass(ActiveClass)
		}
		f.buttons = append(f.buttons, b)
		f.panels = append(f.panels, p)
	}
	doc := domtest.NewDocument().
		Register(ListSelector, f.list).
		Register(ButtonSelector, f.buttons...).
		Register(PanelSelector, f.panels...)

	f.tabs = Init(dom.Env{Document: doc, Window: domtest.NewWindow()})
	require.NotNil(t, f.tabs)
	return f
}

func (f *fixture) assertSelected(t *testing.T, want int) {
	t.Helper()
	assert.Equal(t, want, f.tabs.Selected())
	for i, b := range f.buttons {
		on := i == want
		assert.Equal(t, on, b.HasClass(ActiveClass))
		assert.Equal(t, map[bool]string{true: "true", false: "false"}[on], b.Attr("aria-selected"))
		assert.Equal(t, map[bool]string{true: "0", false: "-1"}[on], b.Attr("tabindex"))
		_, hidden := f.panels[i].Attribute("hidden")
		assert.Equal(t, !on, hidden)
	}
}

func key(name string) *domtest.Event { return &domtest.Event{KeyName: name} }

func TestInitAppliesRoles(t *testing.T) {
	f := setup(t, "coaching", "nutrition")

	assert.Equal(t, "tablist", f.list.Attr("role"))
	assert.Equal(t, ListLabel, f.list.Attr("aria-label"))
	assert.Equal(t, "tab-btn-nutrition", f.buttons[1].ID())
	assert.Equal(t, "tab", f.buttons[1].Attr("role"))
	assert.Equal(t, "tab-nutrition", f.buttons[1].Attr("aria-controls"))
	assert.Equal(t, "tabpanel", f.panels[1].Attr("role"))
	assert.Equal(t, "tab-btn-nutrition", f.panels[1].Attr("aria-labelledby"))
	f.assertSelected(t, 0)
}

func TestClickActivates(t *testing.T) {
	f := setup(t, "a", "b", "c")
	f.buttons[2].Click()
	f.assertSelected(t, 2)
}

func TestArrowKeysWrap(t *testing.T) {
	f := setup(t, "a", "b", "c")

	ev := f.buttons[2].Dispatch("keydown", key("ArrowRight"))
	assert.True(t, ev.Prevented)
	f.assertSelected(t, 0)
	assert.True(t, f.buttons[0].Focused)

	f.buttons[0].Dispatch("keydown", key("ArrowLeft"))
	f.assertSelected(t, 2)
}

func TestHomeEnd(t *testing.T) {
	f := setup(t, "a", "b", "c")

	f.buttons[0].Dispatch("keydown", key("End"))
	f.assertSelected(t, 2)

	f.buttons[2].Dispatch("keydown", key("Home"))
	f.assertSelected(t, 0)
}

func TestEnterAndSpaceActivate(t *testing.T) {
	f := setup(t, "a", "b", "c")

	ev := f.buttons[1].Dispatch("keydown", key("Enter"))
	assert.False(t, ev.Prevented)
	f.assertSelected(t, 1)

	f.buttons[2].Dispatch("keydown", key(" "))
	f.assertSelected(t, 2)
}

func TestOtherKeysIgnored(t *testing.T) {
	f := setup(t, "a", "b")
	ev := f.buttons[0].Dispatch("keydown", key("x"))
	assert.False(t, ev.Prevented)
	f.assertSelected(t, 0)
}

func TestMissingPanelDeselectsAll(t *testing.T) {
	f := setup(t, "a", "b")
	f.panels[1].SetID("renamed")

	f.buttons[1].Click()
	assert.Equal(t, -1, f.tabs.Selected())
}

func TestInitWithoutTabs(t *testing.T) {
	assert.Nil(t, Init(dom.Env{Document: domtest.NewDocument(), Window: domtest.NewWindow()}))
}
