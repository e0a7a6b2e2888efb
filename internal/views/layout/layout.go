package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Page wraps the supplied body in the shared application shell: document
// head, top navigation, and footer.
func Page(title string, authenticated bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s · Mise</title><link rel="stylesheet" href="/assets/css/app.css"></head><body>`,
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if err := nav(authenticated).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main><footer class="footer">Mise back office</footer></body></html>`)
		return err
	})
}

func nav(authenticated bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="topnav"><a class="brand" href="/">Mise</a><nav>`); err != nil {
			return err
		}
		if authenticated {
			if _, err := io.WriteString(w, `<a href="/app">Recipes</a><a href="/app/reports/variance">Variance</a><a href="/logout">Sign out</a>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<a href="/login">Sign in</a><a href="/signup">Create account</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav></header>`)
		return err
	})
}
