package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	Me(ctx context.Context) error
	Events(ctx context.Context) error
	Register(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. The reader is
// shared with the prompts of the commands. It returns on EOF, on "exit" or
// "quit", or when ctx is done. Commands report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "yukta %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: me, events, register <id>, mine, signout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: signup, signin, me, events, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "me":
			_ = a.Me(ctx)

		case "events", "ls":
			_ = a.Events(ctx)

		case "register":
			_ = a.Register(ctx, args)

		case "mine":
			_ = a.Mine(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
