// Package site starts every page controller in order.
package site

import (
	"contact-intake/pkg/ui/contactform"
	"contact-intake/pkg/ui/countup"
	"contact-intake/pkg/ui/dom"
	"contact-intake/pkg/ui/faq"
	"contact-intake/pkg/ui/header"
	"contact-intake/pkg/ui/nav"
	"contact-intake/pkg/ui/reveal"
	"contact-intake/pkg/ui/tabs"
)

// Controllers holds whatever started on this page; absent parts are nil.
type Controllers struct {
	Header  *header.Controller
	Menu    *nav.Mobile
	Tabs    *tabs.Tabs
	Counter *countup.Counter
	FAQ     *faq.FAQ
	Contact *contactform.Form
}

// Start initializes all controllers for the page described by env.
func Start(env dom.Env, formOpts ...contactform.Option) *Controllers {
	reveal.Init(env)
	c := &Controllers{Header: header.Init(env)}
	nav.MarkActive(env)
	c.Menu = nav.InitMobile(env)
	c.Tabs = tabs.Init(env)
	c.Counter = countup.Init(env)
	c.FAQ = faq.Init(env)
	c.Contact = contactform.Init(env, formOpts...)
	return c
}
