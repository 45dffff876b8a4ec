package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pixbowl/internal/game"
	"github.com/diegok/pixbowl/internal/protocol"
)

const (
	BallChar   = '⬤'
	TrailChar  = '•'
	TargetChar = '✖'
	BounceChar = '◎'
	StumpsChar = '┃'
	StripChar  = '░'
)

// Visible ground area in world metres
const (
	FieldHalfWidth = 4.0
	FieldMinZ      = -2.0
	FieldMaxZ      = 24.0
	statusRows     = 4
	meterWidth     = 20
)

// Renderer handles rendering all screens
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// fieldView maps the ground plane onto a screen rectangle, bowler at the
// bottom looking up the pitch.
type fieldView struct {
	x0, y0, w, h int
}

// project maps world (x, z) to a screen cell
func (v fieldView) project(x, z float64) (int, int) {
	fx := (x + FieldHalfWidth) / (2 * FieldHalfWidth)
	fz := (z - FieldMinZ) / (FieldMaxZ - FieldMinZ)
	col := v.x0 + int(math.Round(fx*float64(v.w-1)))
	row := v.y0 + v.h - 1 - int(math.Round(fz*float64(v.h-1)))
	return col, row
}

func (v fieldView) contains(col, row int) bool {
	return col >= v.x0 && col < v.x0+v.w && row >= v.y0 && row < v.y0+v.h
}

// RenderSession draws the pitch from above with the live delivery and the
// bowler's status lines.
func (r *Renderer) RenderSession(state protocol.SessionState, isBowler bool) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	view := fieldView{x0: 0, y0: 1, w: screenW, h: screenH - 1 - statusRows}
	r.renderField(view, state)

	role := "SPECTATING"
	if isBowler {
		role = "BOWLING"
	}
	header := fmt.Sprintf("PIXBOWL  %s  delivery %d  watchers %d", role, state.Deliveries, state.Spectators)
	r.screen.DrawCentered(0, header, tcell.StyleDefault.Bold(true).Foreground(tcell.ColorTeal))

	if state.NoBall {
		noBall := "NO BALL!"
		r.screen.DrawCentered(view.y0+view.h/3, noBall, tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed))
	}

	statusY := screenH - statusRows
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range StatusLines(state, isBowler) {
		r.screen.DrawText(1, statusY+i, line, statusStyle)
	}
	r.renderMeter(1+len(powerLabel), statusY+1, state.Bowler.Power)

	r.screen.Show()
}

func (r *Renderer) renderField(view fieldView, state protocol.SessionState) {
	grass := tcell.StyleDefault.Background(tcell.NewRGBColor(20, 60, 24))
	r.screen.FillRect(view.x0, view.y0, view.w, view.h, grass, ' ')

	// Strip
	left, top := view.project(-game.PitchHalfWidth, game.PitchLength+game.CreaseOverrun)
	right, bottom := view.project(game.PitchHalfWidth, -game.CreaseOverrun)
	stripStyle := grass.Foreground(tcell.NewRGBColor(194, 178, 128))
	for row := top; row <= bottom; row++ {
		r.screen.DrawHorizontalLine(left, right, row, stripStyle, StripChar)
	}

	// Creases and stumps at both ends
	creaseStyle := grass.Foreground(tcell.ColorWhite)
	for _, z := range []float64{0, game.PitchLength} {
		col, row := view.project(0, z)
		r.screen.DrawHorizontalLine(left, right, row, creaseStyle, '─')
		r.screen.SetCell(col, row, creaseStyle.Bold(true), StumpsChar)
	}

	target := state.BounceTarget
	if col, row := view.project(target.X, target.Z); view.contains(col, row) {
		r.screen.SetCell(col, row, grass.Foreground(tcell.ColorYellow), TargetChar)
	}

	for _, p := range state.Trail {
		if col, row := view.project(p.X, p.Z); view.contains(col, row) {
			r.screen.SetCell(col, row, grass.Foreground(HeightColor(p.Y)), TrailChar)
		}
	}

	if state.HasBouncePoint {
		p := state.BouncePoint
		if col, row := view.project(p.X, p.Z); view.contains(col, row) {
			r.screen.SetCell(col, row, grass.Foreground(tcell.ColorOrange).Bold(true), BounceChar)
		}
	}

	if state.Ball.Present {
		p := state.Ball.Position
		if col, row := view.project(p.X, p.Z); view.contains(col, row) {
			r.screen.SetCell(col, row, grass.Foreground(tcell.ColorWhite), BallChar)
		}
	}
}

const powerLabel = "Power "

func (r *Renderer) renderMeter(x, y int, power float64) {
	filled := int(math.Round(unit(power) * meterWidth))
	for i := 0; i < meterWidth; i++ {
		style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		ch := '·'
		if i < filled {
			style = tcell.StyleDefault.Foreground(MeterColor(float64(i+1) / meterWidth))
			ch = '█'
		}
		r.screen.SetCell(x+i, y, style, ch)
	}
}

// StatusLines returns the text shown under the field
func StatusLines(state protocol.SessionState, isBowler bool) []string {
	b := state.Bowler

	strength := fmt.Sprintf("Swing %+.1f", b.SwingStrength)
	if b.SpinMode {
		strength = fmt.Sprintf("%s %.1f", b.SpinLabel, b.SpinStrength)
	}
	mode := fmt.Sprintf("%s | %s", b.ModeLabel, strength)

	phase := "Aiming"
	switch b.Phase {
	case protocol.PhaseSpeedSelect:
		phase = "Select speed"
	case protocol.PhaseReadyToThrow:
		phase = "Releasing"
	}
	meter := powerLabel + strings.Repeat(" ", meterWidth) + fmt.Sprintf(" %3.0f%%  %s", b.Power*100, phase)

	flight := "Waiting for delivery"
	if state.Ball.Present {
		flight = "In flight"
		if state.Ball.HasBounced {
			flight = "Bounced"
		}
		flight = fmt.Sprintf("%s  %.1f m/s", flight, state.Ball.Velocity.Vec().Len())
	}

	help := "Watching the bowler. q quit"
	if isBowler {
		help = "arrows aim  enter confirm  space throw  l arm  p spin  t type  [ ] swing  - = spin  q quit"
	}

	return []string{mode, meter, flight, help}
}

// RenderConnecting displays the connecting screen
func (r *Renderer) RenderConnecting(addr string) {
	r.screen.Clear()
	_, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-3, "PIXBOWL", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorTeal))
	r.screen.DrawCentered(screenH/2, fmt.Sprintf("Connecting to %s...", addr), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.screen.DrawCentered(screenH/2+3, "Press 'q' to cancel", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-2, "ERROR", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed))

	maxErrLen := screenW - 4
	errMsg := err
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = errMsg[:maxErrLen-3] + "..."
	}
	r.screen.DrawCentered(screenH/2, errMsg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if screenW >= 4 && screenH >= 8 {
		r.screen.DrawBox(1, screenH/2-4, screenW-2, 7, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
	r.screen.DrawCentered(screenH/2+3, "Press any key to continue", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
