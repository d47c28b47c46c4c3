// Package templates holds the server-rendered pages as templ components.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html writes markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// hidden writes a hidden form input.
func (h *html) hidden(name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}

// input writes a labelled text input.
func (h *html) input(label, name, typ, value string, required bool) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input`)
	h.attr("type", typ)
	h.attr("name", name)
	h.attr("value", value)
	if required {
		h.raw(" required")
	}
	h.raw(`></label>`)
}

// selectInput writes a labelled select with the current value selected.
func (h *html) selectInput(label, name, value string, options []string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<select`)
	h.attr("name", name)
	h.raw(`>`)
	for _, o := range options {
		h.raw(`<option`)
		h.attr("value", o)
		if o == value {
			h.raw(" selected")
		}
		h.raw(`>`)
		if o == "" {
			h.text("-")
		} else {
			h.text(o)
		}
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// jsString quotes s as a JavaScript string literal. The result still goes
// through attribute escaping.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
