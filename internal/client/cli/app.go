package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yukta/symposium/internal/client/client"
	"github.com/yukta/symposium/internal/client/config"
	"github.com/yukta/symposium/internal/client/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	user *models.User
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, nil)
	if err != nil {
		return nil, err
	}

	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to the Yukta symposium CLI (type 'help' for commands)")

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = mode
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := string(a.mode)
	if a.user != nil {
		s = strings.TrimSpace(a.user.Email + " " + s)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
