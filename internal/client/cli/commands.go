package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/yukta/symposium/internal/client/client"
	"github.com/yukta/symposium/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage: register <event-id>")

// report prints err in a user-facing form and returns it unchanged.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) greet(u *models.User) {
	a.setUser(u)
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.Name, u.Email)
}

func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.api.SignUp(ctx, email, password, name)
	if err != nil {
		return a.report(err)
	}

	a.greet(u)
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	a.greet(u)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.api.SignOut(ctx); err != nil {
		return a.report(err)
	}
	a.setUser(nil)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.setUser(nil)
		}
		return a.report(err)
	}

	a.setUser(u)
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	return nil
}

func (a *App) Events(ctx context.Context) error {
	events, err := a.api.Events(ctx)
	if err != nil {
		return a.report(err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDATE\tVENUE")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\n", e.ID, e.Title, e.Category, e.Date, e.Time, e.Venue)
	}
	return tw.Flush()
}

func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(a.out, errUsage)
		return errUsage
	}

	err := a.api.Register(ctx, args[0])
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Registered for %s\n", args[0])
		return nil
	case errors.Is(err, client.ErrConflict):
		fmt.Fprintf(a.out, "Already registered for %s\n", args[0])
		return err
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Sign in first")
		return err
	}
	return a.report(err)
}

func (a *App) Mine(ctx context.Context) error {
	ids, err := a.api.MyRegistrations(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Sign in first")
			return err
		}
		return a.report(err)
	}

	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No registrations yet")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(a.out, "-", id)
	}
	return nil
}
