package app

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/audio"
	"github.com/diegok/pixbowl/internal/client"
	"github.com/diegok/pixbowl/internal/config"
	"github.com/diegok/pixbowl/internal/logger"
	"github.com/diegok/pixbowl/internal/protocol"
	"github.com/diegok/pixbowl/internal/server"
	"github.com/diegok/pixbowl/internal/ui"
)

// App is the terminal front end: it hosts or joins a session, forwards keys
// as bowler commands and renders the streamed state.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	logOut   io.Writer
	logFile  *os.File
	screen   *ui.Screen
	renderer *ui.Renderer
	client   *client.Client
	server   *server.Server

	state    protocol.SessionState
	hasState bool
	isBowler bool

	quit    chan struct{}
	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logOut: io.Discard,
		quit:   make(chan struct{}),
	}
}

// Run is the main entry point for the application.
func (a *App) Run() error {
	if a.cfg.LogPath != "" {
		f, err := logger.OpenFile(a.cfg.LogPath)
		if err != nil {
			return err
		}
		a.logFile = f
		a.logOut = f
	}
	a.log = logger.New("app", a.logOut)

	// Game works without sound
	if err := audio.Init(); err != nil {
		a.log.Printf("audio disabled: %v", err)
	}

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return errors.Wrap(err, "failed to initialize screen")
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-a.sigChan
		close(a.quit)
	}()

	w, h := a.screen.Size()

	var runErr error
	if a.cfg.IsServer {
		runErr = a.runServer(w, h)
	} else {
		runErr = a.runClient(w, h)
	}

	a.cleanup()

	return runErr
}

// runServer starts the session host, then connects to it as the bowler.
func (a *App) runServer(w, h int) error {
	tuning, err := config.LoadTuning(a.cfg.TuningPath)
	if err != nil {
		return err
	}

	a.server = server.NewServer(a.cfg, tuning, logger.New("server", a.logOut))
	if err := a.server.Start(); err != nil {
		return err
	}
	for _, addr := range a.server.GetServerAddresses() {
		a.log.Printf("spectators can join on %s", addr)
	}

	addr := fmt.Sprintf("localhost:%d", a.cfg.Port)
	return a.connectAndRun(addr, w, h)
}

// runClient connects to a remote session.
func (a *App) runClient(w, h int) error {
	addr := a.cfg.ServerAddr
	if !client.IsWebsocketURL(addr) && !a.hasPort(addr) {
		addr = fmt.Sprintf("%s:%d", addr, config.DefaultPort)
	}
	return a.connectAndRun(addr, w, h)
}

func (a *App) connectAndRun(addr string, w, h int) error {
	a.renderer.RenderConnecting(addr)

	name := a.cfg.PlayerName
	if name == "" {
		name = a.generateRandomName()
	}

	a.client = client.NewClient(name, w, h)
	if err := a.client.Connect(addr); err != nil {
		return err
	}
	a.isBowler = a.client.IsBowler()
	a.log.Printf("connected to %s as %s (bowler=%v)", addr, name, a.isBowler)

	return a.mainLoop()
}

// mainLoop handles input, network updates and rendering.
func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	// Render at ~60fps
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case state := <-a.client.SessionState:
			a.state = state
			a.hasState = true

		case ev := <-a.client.Events:
			a.log.Printf("%s delivery=%d %s", ev.Type, ev.Delivery, ev.Detail)
			audio.PlayEvent(ev.Type)

		case bowling := <-a.client.Role:
			a.isBowler = bowling
			a.log.Printf("role changed (bowler=%v)", bowling)

		case err := <-a.client.Error:
			a.renderer.RenderError(err.Error())
			select {
			case <-events:
			case <-a.quit:
			}
			return err

		case <-ticker.C:
			a.render()
		}
	}
}

// handleEvent processes keyboard and resize events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ui.IsQuitKey(ev.Key(), ev.Rune()) {
			return true
		}
		if !a.isBowler {
			return false
		}
		if cmd := ui.KeyToCommand(ev.Key(), ev.Rune()); cmd != protocol.CmdNone {
			if err := a.client.SendCommand(cmd); err != nil {
				a.log.Printf("send command failed: %v", err)
			}
		}

	case *tcell.EventResize:
		a.screen.Clear()
		a.render()
	}

	return false
}

func (a *App) render() {
	if !a.hasState {
		return
	}
	a.renderer.RenderSession(a.state, a.isBowler)
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.client != nil {
		a.client.Close()
	}

	if a.server != nil {
		a.server.Stop()
	}

	if a.screen != nil {
		a.screen.Fini()
	}

	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
}

// hasPort checks if the address string contains a port number.
func (a *App) hasPort(addr string) bool {
	return strings.Contains(addr, ":")
}

// generateRandomName creates a random player name.
func (a *App) generateRandomName() string {
	adjectives := []string{"Swift", "Crafty", "Quick", "Sharp", "Bold", "Wily", "Fast", "Keen"}
	nouns := []string{"Bowler", "Seamer", "Spinner", "Quick", "Twirler", "Pacer", "Ace", "Hero"}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	adj := adjectives[r.Intn(len(adjectives))]
	noun := nouns[r.Intn(len(nouns))]
	num := r.Intn(100)

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
