package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mise/internal/views/layout"
)

// Login renders the sign-in page with an optional feedback message and a
// previously entered email address.
func Login(message, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-card"><h1>Sign in</h1>`); err != nil {
			return err
		}
		if err := flash(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/login"><label>Email<input type="email" name="email" value="%s" autocomplete="email" required></label><label>Password<input type="password" name="password" autocomplete="current-password" required></label><button type="submit">Sign in</button></form><p class="auth-alt">New here? <a href="/signup">Create an account</a>.</p></section>`,
			templ.EscapeString(email),
		)
		return err
	})
	return layout.Page("Sign in", false, body)
}

// Signup renders the account creation page.
func Signup(message, name, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-card"><h1>Create account</h1>`); err != nil {
			return err
		}
		if err := flash(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/signup"><label>Name<input type="text" name="name" value="%s" autocomplete="name"></label><label>Email<input type="email" name="email" value="%s" autocomplete="email" required></label><label>Password<input type="password" name="password" autocomplete="new-password" required></label><label>Confirm password<input type="password" name="confirm_password" autocomplete="new-password" required></label><button type="submit">Create account</button></form><p class="auth-alt">Already registered? <a href="/login">Sign in</a>.</p></section>`,
			templ.EscapeString(name), templ.EscapeString(email),
		)
		return err
	})
	return layout.Page("Create account", false, body)
}

func flash(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<p class="flash" role="alert">%s</p>`, templ.EscapeString(message))
		return err
	})
}
