package main

import (
	"flag"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/input"
	"github.com/zucenko/fogmaze/model"
	"github.com/zucenko/fogmaze/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudHeight   = 84
	lineHeight  = 20
	padButton   = 24
	swipeLength = 24
)

var keys = [4][]ebiten.Key{
	model.RIGHT: {ebiten.KeyRight, ebiten.KeyD},
	model.DOWN:  {ebiten.KeyDown, ebiten.KeyS},
	model.LEFT:  {ebiten.KeyLeft, ebiten.KeyA},
	model.UP:    {ebiten.KeyUp, ebiten.KeyW},
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// screenSurface lets the renderer paint straight onto the ebiten screen.
type screenSurface struct {
	image         *ebiten.Image
	width, height int
}

func (s screenSurface) Size() (int, int) {
	return s.width, s.height
}

func (s screenSurface) Clear(c color.Color) {
	if err := s.image.Fill(c); err != nil {
		log.Warnf("fill: %v", err)
	}
}

func (s screenSurface) FillRect(x, y, width, height float64, c color.NRGBA) {
	ebitenutil.DrawRect(s.image, x, y, width, height, c)
}

type Game struct {
	Model      *model.Game
	Renderer   *render.Renderer
	Controller *input.Controller
	Pad        *input.Pad
	Swipes     *input.Swipes
	Panel      *Nine
	Tweens     map[*gween.Tween]Action

	settings  config.Settings
	watcher   *config.Watcher
	handDrawn bool
	trigger   input.Trigger
	last      model.Status
	started   time.Time

	overlay     float64
	bannerScale float64
}

var Font font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:    14,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

func NewGame(settings config.Settings, mazePath string) (*Game, error) {
	gs, err := gameSettings(settings, mazePath)
	if err != nil {
		return nil, err
	}
	panel, err := newPanel(0.1, 0.12, 0.2, 0.9)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Model:       model.NewGame(gs, nil, settings.Rand()),
		Panel:       panel,
		Tweens:      make(map[*gween.Tween]Action),
		Swipes:      input.NewSwipes(swipeLength),
		settings:    settings,
		handDrawn:   mazePath != "",
		last:        model.IDLE,
		started:     time.Now(),
		bannerScale: 1,
	}
	g.Renderer = render.NewRenderer(render.Layout{}, settings.VisibilityRadius)
	if err := g.relayout(gs.Cols, gs.Rows); err != nil {
		return nil, err
	}
	g.Controller = input.NewController(g.Model,
		input.NewLevelSource(keyPressed),
		g.Pad,
		g.Swipes)
	g.Controller.OnMove = func(d model.Direction, moved bool) {
		if !moved && g.Model.Status == model.PLAYING {
			log.Debugf("bumped %s at %v", d.Name(), g.Model.Player)
		}
	}
	return g, nil
}

// relayout mounts the maze for a cols x rows grid and moves the pad with it.
func (g *Game) relayout(cols, rows int) error {
	layout, err := render.NewLayout(g.settings.ContainerWidth, g.settings.MaxWidth, cols, rows)
	if err != nil {
		return err
	}
	g.Renderer.Layout = layout
	x := layout.Width - 3*padButton - 8
	y := layout.Height + (hudHeight-3*padButton)/2
	if g.Pad == nil {
		g.Pad = input.NewPad(x, y, padButton, pointers)
	} else {
		*g.Pad = *input.NewPad(x, y, padButton, g.Pad.Pointers)
	}
	ebiten.SetWindowSize(g.Layout(0, 0))
	return nil
}

func keyPressed(d model.Direction) bool {
	for _, k := range keys[d] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func triggerPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace)
}

func pointers() []image.Point {
	var pts []image.Point
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		pts = append(pts, image.Pt(ebiten.CursorPosition()))
	}
	for _, id := range ebiten.TouchIDs() {
		pts = append(pts, image.Pt(ebiten.TouchPosition(id)))
	}
	return pts
}

// onMaze reports whether the pointer is over the maze rather than the HUD.
func (g *Game) onMaze(x, y int) bool {
	return image.Pt(x, y).In(image.Rect(0, 0, g.Renderer.Layout.Width, g.Renderer.Layout.Height))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Renderer.Layout.Width, g.Renderer.Layout.Height + hudHeight
}

func (g *Game) Update(screen *ebiten.Image) error {
	g.pollSettings()
	g.updateTweens(float32(1 / float64(ebiten.MaxTPS())))

	clicked := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.onMaze(x, y) {
			clicked = true
			g.Swipes.Begin(&MouseStrokeSource{})
		}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		x, y := ebiten.TouchPosition(id)
		if g.onMaze(x, y) {
			clicked = true
			g.Swipes.Begin(&TouchStrokeSource{id})
		}
	}

	if g.trigger.Update(triggerPressed()) || clicked && g.Model.Status != model.PLAYING {
		if err := g.Model.Trigger(); err != nil {
			log.Errorf("trigger: %v", err)
		}
	}
	g.Controller.Update()
	if g.Model.Active() {
		g.Model.Step()
	}
	g.observe()

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

// observe reacts to status changes made by input during this tick.
func (g *Game) observe() {
	status := g.Model.Status
	if status == g.last {
		return
	}
	switch status {
	case model.PLAYING:
		for t := range g.Tweens {
			delete(g.Tweens, t)
		}
		g.overlay, g.bannerScale = 0, 1
		if grid := g.Model.Grid; grid.Cols != g.Renderer.Layout.Cols || grid.Rows != g.Renderer.Layout.Rows {
			if err := g.relayout(grid.Cols, grid.Rows); err != nil {
				log.Errorf("relayout: %v", err)
			}
		}
	case model.WON:
		g.celebrate()
	}
	g.last = status
}

// celebrate dims the maze, then pulses the banner.
func (g *Game) celebrate() {
	fade := gween.New(0, 0.45, 0.6, ease.OutQuad)
	action := Action{onChange: func(v float32) { g.overlay = float64(v) }}
	grow := gween.New(1, 1.3, 0.25, ease.OutBack)
	pulse := action.next(grow)
	pulse.onChange = func(v float32) { g.bannerScale = float64(v) }
	shrink := gween.New(1.3, 1, 0.35, ease.InOutSine)
	settle := pulse.next(shrink)
	settle.onChange = pulse.onChange
	settle.addOnFinish(func() {
		log.Debugf("celebration over after %v", time.Since(g.started))
	})
	g.Tweens[fade] = action
}

func (g *Game) draw(screen *ebiten.Image) {
	layout := g.Renderer.Layout
	snap := g.Model.Snapshot()
	surface := screenSurface{image: screen, width: layout.Width, height: layout.Height}
	g.Renderer.Draw(surface, &snap, time.Since(g.started))

	if g.overlay > 0 {
		ebitenutil.DrawRect(screen, 0, 0, float64(layout.Width), float64(layout.Height),
			color.NRGBA{A: uint8(g.overlay * 255)})
		g.drawBanner(screen, "ESCAPED")
	}

	g.Panel.SetPosition(0, layout.Height)
	g.Panel.SetSize(layout.Width, hudHeight)
	g.Panel.Draw(screen)
	for i, line := range render.HUD(&snap, "ENTER") {
		text.Draw(screen, line, Font, 12, layout.Height+lineHeight*(i+1), color.White)
	}
	g.drawPad(screen)
}

func (g *Game) drawBanner(screen *ebiten.Image, s string) {
	metrics := Font.Metrics()
	img, err := ebiten.NewImage(font.MeasureString(Font, s).Ceil()+4, metrics.Height.Ceil()+4, ebiten.FilterLinear)
	if err != nil {
		return
	}
	text.Draw(img, s, Font, 2, 2+metrics.Ascent.Ceil(), color.White)
	w, h := img.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(2*g.bannerScale, 2*g.bannerScale)
	op.GeoM.Translate(float64(g.Renderer.Layout.Width)/2, float64(g.Renderer.Layout.Height)/2)
	screen.DrawImage(img, op)
	_ = img.Dispose()
}

func (g *Game) drawPad(screen *ebiten.Image) {
	for _, b := range g.Pad.Buttons {
		ebitenutil.DrawRect(screen, float64(b.Min.X)+1, float64(b.Min.Y)+1,
			float64(b.Dx())-2, float64(b.Dy())-2, color.NRGBA{R: 255, G: 255, B: 255, A: 40})
	}
}

func main() {
	configPath := flag.String("config", os.Getenv("MAZE_CONFIG"), "path to a YAML settings file, reloaded on change")
	mazePath := flag.String("maze", "", "play a hand drawn maze file instead of generated ones")
	flag.Parse()

	config.LoadEnv()
	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	settings.ApplyLogLevel()

	game, err := NewGame(settings, *mazePath)
	if err != nil {
		log.Fatal(err)
	}
	if *configPath != "" {
		w, err := config.Watch(*configPath)
		if err != nil {
			log.Warnf("settings will not reload: %v", err)
		} else {
			game.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowTitle("fogmaze")
	ebiten.SetMaxTPS(settings.FrameRate)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
