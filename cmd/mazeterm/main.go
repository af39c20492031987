package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/clock"
	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/input"
	"github.com/zucenko/fogmaze/model"
	"github.com/zucenko/fogmaze/render"
	"github.com/zucenko/fogmaze/sound"
)

const (
	hudLines = 4
	// maxCell caps the cell size in pixels, i.e. half block columns.
	maxCell = 4
)

var runeDirections = map[rune]model.Direction{
	'd': model.RIGHT, 'l': model.RIGHT,
	's': model.DOWN, 'j': model.DOWN,
	'a': model.LEFT, 'h': model.LEFT,
	'w': model.UP, 'k': model.UP,
}

var keyDirections = map[tcell.Key]model.Direction{
	tcell.KeyRight: model.RIGHT,
	tcell.KeyDown:  model.DOWN,
	tcell.KeyLeft:  model.LEFT,
	tcell.KeyUp:    model.UP,
}

type terminal struct {
	screen     tcell.Screen
	settings   config.Settings
	game       *model.Game
	controller *input.Controller
	renderer   *render.Renderer
	surface    *cellSurface
	frames     *clock.FrameClock
	sound      *sound.Player
	hint       bool
	started    time.Time
}

func newTerminal(screen tcell.Screen, settings config.Settings, player *sound.Player) *terminal {
	t := &terminal{
		screen:   screen,
		settings: settings,
		game:     model.NewGame(settings.Game(), nil, settings.Rand()),
		renderer: render.NewRenderer(render.Layout{}, settings.VisibilityRadius),
		frames:   clock.NewFrameClock(settings.Interval()),
		sound:    player,
		started:  time.Now(),
	}
	t.controller = input.NewController(t.game)
	t.controller.OnMove = t.onMove
	t.relayout()
	return t
}

func (t *terminal) onMove(d model.Direction, moved bool) {
	switch {
	case moved && t.game.Status == model.WON:
		t.sound.Play(sound.WIN)
	case !moved && t.game.Status == model.PLAYING:
		t.sound.Play(sound.BUMP)
	}
}

func (t *terminal) dims() (int, int) {
	if g := t.game.Grid; g != nil {
		return g.Cols, g.Rows
	}
	s := t.game.Settings()
	return s.Cols, s.Rows
}

// relayout fits the maze into the terminal, two pixel rows per text line.
func (t *terminal) relayout() {
	tw, th := t.screen.Size()
	cols, rows := t.dims()
	width := tw
	if fit := 2 * (th - hudLines) * cols / rows; fit < width {
		width = fit
	}
	if width < cols {
		width = cols
	}
	layout, err := render.NewLayout(width, maxCell*cols, cols, rows)
	if err != nil {
		log.Errorf("relayout: %v", err)
		return
	}
	t.renderer.Layout = layout
	t.surface = newCellSurface(layout.Width, layout.Height)
}

// handle applies one terminal event and reports whether to keep running.
func (t *terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			t.trigger()
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q':
				return false
			case ' ':
				t.trigger()
			case '?':
				t.hint = !t.hint
			default:
				if d, ok := runeDirections[r]; ok {
					t.controller.Apply(d)
				}
			}
		default:
			if d, ok := keyDirections[ev.Key()]; ok {
				t.controller.Apply(d)
			}
		}
	case *tcell.EventResize:
		t.relayout()
		t.screen.Sync()
	}
	t.frames.Sync(t.game.Active())
	return true
}

func (t *terminal) trigger() {
	cols, rows := t.dims()
	if err := t.game.Trigger(); err != nil {
		log.Errorf("trigger: %v", err)
		return
	}
	if g := t.game.Grid; g.Cols != cols || g.Rows != rows || t.surface == nil {
		t.relayout()
	}
}

func (t *terminal) tick() {
	t.game.Step()
	t.frames.Sync(t.game.Active())
}

func (t *terminal) reconfigure(s config.Settings) {
	log.Infof("settings reloaded: %dx%d radius %.1f", s.Cols, s.Rows, s.VisibilityRadius)
	t.settings = s
	t.game.Resize(s.Cols, s.Rows)
	t.renderer.Radius = s.VisibilityRadius
}

func (t *terminal) draw() {
	t.screen.Clear()
	snap := t.game.Snapshot()
	if t.surface != nil {
		t.renderer.Draw(t.surface, &snap, time.Since(t.started))
		if t.hint && snap.Status == model.PLAYING {
			t.drawHint(&snap)
		}
		t.surface.Flush(t.screen, 0, 0)
	}

	top := (t.renderer.Layout.Height+1)/2 + 1
	lines := append(render.HUD(&snap, "ENTER"), "arrows/wasd/hjkl move  ? hint  q quit")
	for i, line := range lines {
		t.print(0, top+i, line)
	}
	t.screen.Show()
}

func (t *terminal) drawHint(snap *model.Snapshot) {
	cs := t.renderer.Layout.CellSize
	c := t.renderer.Palette.Goal
	c.A = 90
	for _, p := range snap.Grid.Solve(snap.Player, snap.Exit) {
		t.surface.FillRect((float64(p.X)+0.3)*cs, (float64(p.Y)+0.3)*cs, 0.4*cs, 0.4*cs, c)
	}
}

func (t *terminal) print(x, y int, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func (t *terminal) run(watcher *config.Watcher) {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var updates <-chan config.Settings
	var errs <-chan error
	if watcher != nil {
		updates, errs = watcher.Updates, watcher.Errors
	}

	t.draw()
	for {
		select {
		case ev := <-eventChan:
			if !t.handle(ev) {
				return
			}
			t.draw()
		case <-t.frames.C():
			t.tick()
			t.draw()
		case s, ok := <-updates:
			if !ok {
				updates, errs = nil, nil
				continue
			}
			t.reconfigure(s)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warnf("settings reload rejected: %v", err)
		}
	}
}

func (t *terminal) cleanup() {
	t.frames.Disarm()
	t.sound.Close()
	t.screen.Fini()
}

func main() {
	configPath := flag.String("config", os.Getenv("MAZE_CONFIG"), "path to a YAML settings file, reloaded on change")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	config.LoadEnv()
	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	settings.ApplyLogLevel()
	// the terminal belongs to tcell, so logs go to a file or nowhere
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	var watcher *config.Watcher
	if *configPath != "" {
		if watcher, err = config.Watch(*configPath); err != nil {
			log.Warnf("settings will not reload: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	t := newTerminal(screen, settings, sound.Open(settings.Sound))
	defer t.cleanup()
	t.run(watcher)
}
