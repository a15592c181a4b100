// Package countup animates the numbers in the stats banner from zero.
package countup

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"contact-intake/pkg/ui/dom"
)

const (
	BannerSelector = ".stats-banner"
	NumberSelector = ".stats-banner .stat-number"
	// DurationMS is the length of one count in milliseconds.
	DurationMS     = 1200
	StartThreshold = 0.4
)

var numberPattern = regexp.MustCompile(`^(.*?)(\d+(?:\.\d+)?)(.*)$`)

// Stat is a parsed stat text such as "$1.5M+".
type Stat struct {
	Prefix   string
	End      float64
	Decimals int
	Suffix   string
}

// Parse splits text around its first number. ok is false when text holds
// no number.
func Parse(text string) (Stat, bool) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Stat{}, false
	}
	end, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Stat{}, false
	}
	decimals := 0
	if _, frac, found := strings.Cut(m[2], "."); found {
		decimals = len(frac)
	}
	return Stat{Prefix: m[1], End: end, Decimals: decimals, Suffix: m[3]}, true
}

// Format renders the stat at value.
func (s Stat) Format(value float64) string {
	var n string
	if s.Decimals == 0 {
		n = strconv.FormatFloat(math.Round(value), 'f', 0, 64)
	} else {
		n = strconv.FormatFloat(value, 'f', s.Decimals, 64)
	}
	return s.Prefix + n + s.Suffix
}

// EaseOutCubic maps progress in [0,1] onto 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

type item struct {
	el   dom.Element
	stat Stat
}

// Counter runs the count-up once.
type Counter struct {
	win     dom.Window
	items   []item
	started bool
}

// Init parses the stat numbers and starts counting when the banner is 40%
// visible, or at once when there is no banner or no IntersectionObserver.
// Under reduced motion the numbers are left as written and nil is returned.
func Init(env dom.Env) *Counter {
	if env.ReduceMotion {
		return nil
	}
	c := &Counter{win: env.Window}
	for _, el := range env.Document.QuerySelectorAll(NumberSelector) {
		if stat, ok := Parse(el.TextContent()); ok {
			c.items = append(c.items, item{el: el, stat: stat})
		}
	}
	if len(c.items) == 0 {
		return nil
	}

	banner := env.Document.QuerySelector(BannerSelector)
	if banner == nil {
		c.Start()
		return c
	}
	observer, ok := env.Window.NewIntersectionObserver(func(entries []dom.Entry, obs dom.Observer) {
		for _, entry := range entries {
			if c.started || !entry.IsIntersecting {
				continue
			}
			c.Start()
			obs.Disconnect()
		}
	}, dom.ObserverOptions{Thresholds: []float64{StartThreshold}})
	if !ok {
		c.Start()
		return c
	}
	observer.Observe(banner)
	return c
}

// Start begins every count. Later calls do nothing.
func (c *Counter) Start() {
	if c.started {
		return
	}
	c.started = true
	for _, it := range c.items {
		c.animate(it)
	}
}

func (c *Counter) animate(it item) {
	var start float64
	first := true
	var step func(ts float64)
	step = func(ts float64) {
		if first {
			start, first = ts, false
		}
		progress := math.Min((ts-start)/DurationMS, 1)
		it.el.SetTextContent(it.stat.Format(it.stat.End * EaseOutCubic(progress)))
		if progress < 1 {
			c.win.RequestAnimationFrame(step)
		}
	}
	c.win.RequestAnimationFrame(step)
}
