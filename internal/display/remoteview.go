package display

import (
	"encoding/json"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dotcam/dotcam/internal/control"
)

// CommandSink receives serialized commands for the remote publisher.
type CommandSink func(data []byte)

// RemoteView shows a preview received over the network and forwards
// this machine's key presses as commands. The viewer keeps its own
// copy of the render parameters; set-params always carries the full
// pair.
type RemoteView struct {
	mu    sync.Mutex
	frame *image.RGBA

	ebitenImage *ebiten.Image
	onCommand   CommandSink

	circleSize float64
	spacing    int
}

func NewRemoteView(onCommand CommandSink) *RemoteView {
	return &RemoteView{
		onCommand:  onCommand,
		circleSize: 10,
		spacing:    10,
	}
}

// SetFrame updates the displayed frame (called from the network
// goroutine).
func (v *RemoteView) SetFrame(img *image.RGBA) {
	v.mu.Lock()
	v.frame = img
	v.mu.Unlock()
}

// Run opens the viewer window. Must be called from the main goroutine.
func (v *RemoteView) Run() error {
	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowTitle("dotcam viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

// --- ebiten.Game interface ---

func (v *RemoteView) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.send(control.Command{Name: control.CmdRecordStart})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.send(control.Command{Name: control.CmdRecordStop})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.send(control.Command{Name: control.CmdToggleCamera})
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		v.circleSize = clampParam(v.circleSize + 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		v.circleSize = clampParam(v.circleSize - 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.spacing = int(clampParam(float64(v.spacing + 1)))
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.spacing = int(clampParam(float64(v.spacing - 1)))
		changed = true
	}
	if changed {
		v.send(control.Command{
			Name:       control.CmdSetParams,
			CircleSize: v.circleSize,
			Spacing:    v.spacing,
		})
	}
	return nil
}

func (v *RemoteView) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	frame := v.frame
	v.mu.Unlock()

	if frame == nil {
		ebitenutil.DebugPrint(screen, "waiting for preview...")
		return
	}

	w := frame.Bounds().Dx()
	h := frame.Bounds().Dy()
	if v.ebitenImage == nil ||
		v.ebitenImage.Bounds().Dx() != w ||
		v.ebitenImage.Bounds().Dy() != h {
		v.ebitenImage = ebiten.NewImage(w, h)
	}
	v.ebitenImage.WritePixels(frame.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), float64(w), float64(h))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(v.ebitenImage, op)
}

func (v *RemoteView) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (v *RemoteView) send(c control.Command) {
	if v.onCommand == nil {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	v.onCommand(data)
}
