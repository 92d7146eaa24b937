// Package events provides typed trace emitters so call sites never build
// payload maps inline.
package events

import "github.com/weka/termenu/internal/logging"

type AppTracer struct{}

type MenuTracer struct{}

type FilterTracer struct{}

type KeyTracer struct{}

type SignalTracer struct{}

var (
	App    = AppTracer{}
	Menu   = MenuTracer{}
	Filter = FilterTracer{}
	Key    = KeyTracer{}
	Signal = SignalTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (MenuTracer) Push(title string, depth int) {
	logging.Trace("menu.push", map[string]interface{}{"title": title, "depth": depth})
}

func (MenuTracer) Pop(title string, depth int) {
	logging.Trace("menu.pop", map[string]interface{}{"title": title, "depth": depth})
}

func (MenuTracer) Enter(title string, values []interface{}) {
	logging.Trace("menu.enter", map[string]interface{}{"title": title, "values": values})
}

func (MenuTracer) Empty(title string) {
	logging.Trace("menu.empty", map[string]interface{}{"title": title})
}

func (FilterTracer) Changed(text, mode string, visible int) {
	logging.Trace("filter.changed", map[string]interface{}{
		"text":    text,
		"mode":    mode,
		"visible": visible,
	})
}

func (KeyTracer) Pressed(name string) {
	logging.Trace("key.pressed", map[string]interface{}{"key": name})
}

func (SignalTracer) Raised(kind string, payload interface{}) {
	logging.Trace("signal.raised", map[string]interface{}{"kind": kind, "payload": payload})
}
