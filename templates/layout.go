package templates

import (
	"context"

	"github.com/a-h/templ"
)

const styles = `
body{font-family:Georgia,serif;margin:0;color:#3b3024;background:#fbf8f3}
main{max-width:960px;margin:0 auto;padding:2rem 1rem}
h1,h2,h3{font-weight:normal;text-align:center}
section{margin:3rem 0}
form.inline{display:inline}
label{display:block;margin:.5rem 0}
input,select,textarea{display:block;width:100%;padding:.4rem;box-sizing:border-box}
button,.button{padding:.5rem 1rem;border:1px solid #8a6d3b;background:#fff;color:#3b3024;cursor:pointer;text-decoration:none}
table{width:100%;border-collapse:collapse}
td,th{border-bottom:1px solid #e5dccb;padding:.4rem;text-align:left;vertical-align:top}
.banner{padding:.75rem 1rem;margin:1rem 0}
.banner.success{background:#e7f4e4}
.banner.error{background:#f8e1df}
.columns{display:flex;gap:2rem;justify-content:center}
.initials{display:inline-block;width:2.5rem;height:2.5rem;line-height:2.5rem;border-radius:50%;background:#e5dccb;text-align:center;margin-right:.5rem}
.countdown span{display:inline-block;margin:0 1rem;text-align:center}
.prompt{border:1px solid #8a6d3b;padding:1rem;background:#fff}
nav a{margin-right:1rem}
`

// dismissBanners hides banners after their data-dismiss-after milliseconds.
const dismissBanners = `<script>
document.querySelectorAll("[data-dismiss-after]").forEach(function (el) {
  setTimeout(function () { el.remove(); }, parseInt(el.dataset.dismissAfter, 10));
});
</script>`

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><style>` + styles + `</style></head><body><main>`)
		h.render(ctx, body)
		h.raw(`</main>` + dismissBanners + `</body></html>`)
	})
}

// banner writes a transient message box.
func banner(h *html, kind, message string, dismissAfterMS int) {
	h.raw(`<div`)
	h.attr("class", "banner "+kind)
	if dismissAfterMS > 0 {
		h.rawf(` data-dismiss-after="%d"`, dismissAfterMS)
	}
	h.raw(` role="status">`)
	h.text(message)
	h.raw(`</div>`)
}
