package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) SignUp(context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) SignIn(context.Context) error {
	f.calls = append(f.calls, "signin")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) SignOut(context.Context) error {
	f.calls = append(f.calls, "signout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Me(context.Context) error     { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) Events(context.Context) error { f.calls = append(f.calls, "events"); return nil }
func (f *fakeExec) Register(_ context.Context, args []string) error {
	f.calls = append(f.calls, "register")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Mine(context.Context) error { f.calls = append(f.calls, "mine"); return nil }

func runScript(ctx context.Context, exec *fakeExec, lines ...string) string {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(ctx, exec, func() string { return "(status)" }, reader, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}

	out := runScript(context.Background(), exec,
		"help",
		"signin",
		"help",
		"",
		"events",
		"register hackathon",
		"mine",
		"me",
		"foobar",
		"signout",
		"exit",
		"events",
	)

	assert.Equal(t, []string{"signin", "events", "register", "mine", "me", "signout"}, exec.calls)
	assert.Equal(t, [][]string{{"hackathon"}}, exec.args)
	assert.Contains(t, out, "Available commands: signup, signin, me, events, exit")
	assert.Contains(t, out, "Available commands: me, events, register <id>, mine, signout, exit")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "yukta (status)> ")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_Aliases(t *testing.T) {
	exec := &fakeExec{}
	runScript(context.Background(), exec, "login", "ls", "logout", "signup", "quit")
	assert.Equal(t, []string{"signin", "events", "signout", "signup"}, exec.calls)
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	runScript(context.Background(), exec, "me", "mine")
	assert.Equal(t, []string{"me", "mine"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runScript(ctx, exec, "me")
	assert.Empty(t, exec.calls)
}
