package display

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dotcam/dotcam/internal/control"
	"github.com/dotcam/dotcam/internal/halftone"
)

// App is the local window around the halftone pipeline. Draw drives
// the render tick; Update handles key bindings and queued remote
// commands, so every command runs on the same cooperative timeline as
// the ticks.
type App struct {
	loop     *halftone.Loop
	renderer *halftone.Renderer
	params   *halftone.ParamStore
	surface  *control.Surface

	commands chan []byte

	ebitenImage *ebiten.Image
}

func NewApp(loop *halftone.Loop, renderer *halftone.Renderer, params *halftone.ParamStore, surface *control.Surface) *App {
	return &App{
		loop:     loop,
		renderer: renderer,
		params:   params,
		surface:  surface,
		commands: make(chan []byte, 16),
	}
}

// EnqueueCommand hands a serialized command from another goroutine
// (the remote preview transport) to the next Update. Commands are
// dropped, not blocked on, when the queue is full.
func (a *App) EnqueueCommand(data []byte) {
	select {
	case a.commands <- data:
	default:
		log.Printf("command queue full, dropping")
	}
}

// Run opens the window and blocks until it closes. Must be called
// from the main goroutine.
func (a *App) Run() error {
	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowTitle("dotcam")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}

// --- ebiten.Game interface ---

func (a *App) Update() error {
	a.drainCommands()
	a.handleKeys()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.loop.Tick()

	out := a.renderer.Output()
	if out == nil {
		ebitenutil.DebugPrint(screen, "waiting for camera...")
		return
	}
	a.blit(screen, out)
	ebitenutil.DebugPrint(screen, a.status())
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (a *App) drainCommands() {
	for {
		select {
		case data := <-a.commands:
			if err := control.Dispatch(a.surface, data); err != nil {
				log.Printf("remote command: %v", err)
			}
		default:
			return
		}
	}
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.surface.StartRecording(); err != nil {
			log.Printf("start recording: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := a.surface.StopRecording(); err != nil {
			log.Printf("stop recording: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := a.surface.ToggleCamera(); err != nil {
			log.Printf("toggle camera: %v", err)
		}
	}

	p := a.params.Get()
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		p.CircleSize = clampParam(p.CircleSize + 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		p.CircleSize = clampParam(p.CircleSize - 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		p.Spacing = int(clampParam(float64(p.Spacing + 1)))
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		p.Spacing = int(clampParam(float64(p.Spacing - 1)))
		changed = true
	}
	if changed {
		a.params.Set(p)
	}
}

func (a *App) blit(screen *ebiten.Image, out *image.RGBA) {
	w := out.Bounds().Dx()
	h := out.Bounds().Dy()
	if a.ebitenImage == nil ||
		a.ebitenImage.Bounds().Dx() != w ||
		a.ebitenImage.Bounds().Dy() != h {
		a.ebitenImage = ebiten.NewImage(w, h)
	}
	a.ebitenImage.WritePixels(out.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), float64(w), float64(h))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(a.ebitenImage, op)
}

func (a *App) status() string {
	p := a.params.Get()
	s := fmt.Sprintf("size %.0f  spacing %d", p.CircleSize, p.Spacing)
	if a.surface.Recording() {
		s += "  [REC]"
	}
	return s
}
