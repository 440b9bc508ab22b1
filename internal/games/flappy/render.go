package flappy

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	ActorChar     = '●'
	PipeChar      = '█'
	PipeCapChar   = '▓'
	GroundChar    = '▒'
	GroundAltChar = '░'
	GrassChar     = '▀'
)

// groundStripe is the world width of one ground stripe. It divides the
// default segment width, so both segments tile without a seam.
const groundStripe = 48

// Renderer draws snapshots onto a character screen. The world is sampled
// at the center of every cell, so any screen size shows the whole world.
type Renderer struct {
	cfg     config.FlappyConfig
	sprites *Sprites
}

// NewRenderer creates a renderer for the given world.
func NewRenderer(cfg config.FlappyConfig, sprites *Sprites) *Renderer {
	return &Renderer{cfg: cfg, sprites: sprites}
}

// Render draws one frame. It only reads the snapshot.
func (r *Renderer) Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	scaleX := float64(r.cfg.World.Width) / float64(w)
	scaleY := float64(r.cfg.World.Height) / float64(h)
	floor := float64(r.cfg.World.Floor)

	actorMask := r.sprites.Actor[snap.Actor.Frame]
	ax, ay := roundPixel(snap.Actor.X), roundPixel(snap.Actor.Y)

	for cy := 0; cy < h; cy++ {
		wy := (float64(cy) + 0.5) * scaleY
		for cx := 0; cx < w; cx++ {
			wx := (float64(cx) + 0.5) * scaleX
			px, py := int(math.Floor(wx)), int(math.Floor(wy))

			if actorMask.Get(px-ax, py-ay) {
				dst.SetColored(cx, cy, ActorChar, core.ColorBrightYellow)
				continue
			}

			if wy >= floor {
				r.drawGround(dst, cx, cy, wx, wy-floor < scaleY, snap.Ground)
				continue
			}

			for _, o := range snap.Obstacles {
				if ch, color, ok := r.pipeCell(o, px, py); ok {
					dst.SetColored(cx, cy, ch, color)
					break
				}
			}
		}
	}

	r.drawNose(dst, snap.Actor, scaleX, scaleY)
	r.drawHUD(dst, snap)
}

// pipeCell samples both pipe pieces of an obstacle at a world pixel.
func (r *Renderer) pipeCell(o ObstacleView, px, py int) (rune, core.Color, bool) {
	ox := px - roundPixel(o.X)
	capH := r.cfg.Obstacles.CapHeight

	top := r.sprites.PipeTop
	if ty := py - o.Top; top.Get(ox, ty) {
		if ty >= top.Height()-capH {
			return PipeCapChar, core.ColorBrightGreen, true
		}
		return PipeChar, core.ColorGreen, true
	}

	if by := py - o.Bottom; r.sprites.PipeBottom.Get(ox, by) {
		if by < capH {
			return PipeCapChar, core.ColorBrightGreen, true
		}
		return PipeChar, core.ColorGreen, true
	}

	return 0, core.ColorDefault, false
}

// drawGround paints the scrolling stripes below the floor line.
func (r *Renderer) drawGround(dst *core.Screen, cx, cy int, wx float64, edge bool, g GroundView) {
	if edge {
		dst.SetColored(cx, cy, GrassChar, core.ColorBrightGreen)
		return
	}

	offset := math.Mod(wx-g.X1, groundStripe*2)
	if offset < 0 {
		offset += groundStripe * 2
	}
	if offset < groundStripe {
		dst.SetColored(cx, cy, GroundChar, core.ColorOrange)
	} else {
		dst.SetColored(cx, cy, GroundAltChar, core.ColorYellow)
	}
}

// drawNose marks the front of the actor with a glyph showing its tilt.
func (r *Renderer) drawNose(dst *core.Screen, a ActorView, scaleX, scaleY float64) {
	m := r.sprites.Actor[a.Frame]
	nx := int((a.X + float64(m.Width())) / scaleX)
	ny := int((a.Y + float64(m.Height())/2) / scaleY)
	dst.SetColored(nx, ny, tiltGlyph(a.Tilt), core.ColorBrightRed)
}

// tiltGlyph maps a tilt in degrees to an arrow.
func tiltGlyph(tilt float64) rune {
	switch {
	case tilt >= 15:
		return '↗'
	case tilt > -30:
		return '→'
	case tilt > -70:
		return '↘'
	default:
		return '↓'
	}
}

// drawHUD draws scores and the phase overlays.
func (r *Renderer) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)

	high := fmt.Sprintf(" High Score: %d ", snap.HighScore)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(high)-2, 0, high, core.ColorBrightWhite)

	switch {
	case snap.Phase == PhaseEnded:
		title := "GAME OVER!"
		if snap.NewRecord {
			title = "HIGH SCORE!"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  R to restart, Q to quit", snap.Score))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Phase == PhaseNotStarted:
		drawCenteredMessage(dst, "FLAPPY", "Press SPACE to flap")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	boxW := max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}

// ScreenPresenter renders every Nth snapshot as plain text to a writer.
// It is used by the headless runner.
type ScreenPresenter struct {
	renderer *Renderer
	screen   *core.Screen
	out      io.Writer
	every    uint64
}

// NewScreenPresenter creates a presenter writing a w x h frame every
// `every` ticks. Frames for Ended and quit snapshots are always written.
func NewScreenPresenter(renderer *Renderer, out io.Writer, w, h, every int) *ScreenPresenter {
	if every < 1 {
		every = 1
	}
	return &ScreenPresenter{
		renderer: renderer,
		screen:   core.NewScreen(w, h),
		out:      out,
		every:    uint64(every),
	}
}

// Present implements Presenter.
func (p *ScreenPresenter) Present(snap Snapshot) {
	if snap.Tick%p.every != 0 && snap.Phase != PhaseEnded && !snap.Quit {
		return
	}
	p.renderer.Render(snap, p.screen)
	fmt.Fprintf(p.out, "tick %d  phase %s  score %d\n%s\n", snap.Tick, snap.Phase, snap.Score, p.screen.String())
}
