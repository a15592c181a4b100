//go:build js && wasm

// Command site-wasm runs the site's page controllers in the browser.
//
//	GOOS=js GOARCH=wasm go build -o site.wasm ./cmd/site-wasm
package main

import (
	"contact-intake/pkg/ui/dom"
	"contact-intake/pkg/ui/jsdom"
	"contact-intake/pkg/ui/site"
)

func main() {
	site.Start(dom.NewEnv(jsdom.Document(), jsdom.Window()))
	select {}
}
