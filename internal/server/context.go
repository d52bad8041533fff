package server

import (
	"fmt"
	"sync"

	"github.com/teemow/macbridge/internal/calendar"
	"github.com/teemow/macbridge/internal/config"
	"github.com/teemow/macbridge/internal/eventkit"
	"github.com/teemow/macbridge/internal/notes"
	"github.com/teemow/macbridge/internal/osascript"
)

// Context holds the domain clients shared by the MCP tools. Clients are
// built lazily on first use so a server session that never touches a
// store never prompts for its capability.
type Context struct {
	cfg *config.Config

	mu             sync.Mutex
	calendarClient *calendar.Client
	notesClient    *notes.Client
}

// NewContext returns a context over the given configuration.
func NewContext(cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{cfg: cfg}
}

// Config returns the configuration the context was built with.
func (c *Context) Config() *config.Config {
	return c.cfg
}

// SetCalendarClient injects a calendar client, for tests.
func (c *Context) SetCalendarClient(client *calendar.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calendarClient = client
}

// SetNotesClient injects a notes client, for tests.
func (c *Context) SetNotesClient(client *notes.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notesClient = client
}

// Calendar returns the calendar client, building it on first use.
func (c *Context) Calendar() (*calendar.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calendarClient != nil {
		return c.calendarClient, nil
	}

	store, err := newEventStore(c.cfg)
	if err != nil {
		return nil, err
	}
	c.calendarClient = calendar.NewClient(store)
	return c.calendarClient, nil
}

// Notes returns the notes client, building it on first use.
func (c *Context) Notes() (*notes.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notesClient != nil {
		return c.notesClient, nil
	}

	runner, err := osascript.NewCommandRunner(
		osascript.WithPath(c.cfg.OsascriptPath),
		osascript.WithTimeout(c.cfg.RequestTimeout()),
	)
	if err != nil {
		return nil, err
	}
	c.notesClient = notes.NewClient(runner)
	return c.notesClient, nil
}

func newEventStore(cfg *config.Config) (eventkit.Store, error) {
	switch cfg.StoreBackend() {
	case "memory":
		return eventkit.NewMemStore(), nil
	case "native", "":
		return eventkit.NewStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be native or memory)", cfg.StoreBackend())
	}
}
