package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.userName)
}

// Root greets the user, offers to log in with the remembered email and then
// runs the command loop.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to vitalkeeper (type 'help' for commands)")

	email, err := a.auth.RememberedEmail(ctx)
	if err != nil {
		a.log.Warn(ctx, "error reading remembered email", "error", err)
	}
	if email != "" {
		a.printf("Last login: %s\n", email)
		if ok, err := GetYesNo(a.reader, "Log in now?", a.out); err == nil && ok {
			_ = a.login(ctx, email)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
