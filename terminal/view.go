package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/typecast/arena"
	"github.com/lixenwraith/typecast/combat"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/status"
)

// Scene is everything one frame draws
type Scene struct {
	Enemies    []*arena.Enemy
	Facing     float64
	Casting    bool
	Script     match.Script
	Phase      combat.Phase
	Pending    int
	TypoActive bool
	Paused     bool
	Muted      bool
	Warning    string
	Stats      []status.Entry

	PlayerHP    int
	PlayerMaxHP int
	Invincible  bool
	Defeated    bool
}

var (
	styleDefault = tcell.StyleDefault
	styleTyped   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleRest    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTypo    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDone    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	styleCast    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Facing arrows by octant, counter-clockwise from east
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// View draws scenes onto a tcell screen
type View struct {
	screen tcell.Screen
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Draw renders s and shows the screen
func (v *View) Draw(s Scene) {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	v.drawHeader(s, w)

	cx, cy := w/2, h/2
	rx := max(float64(w)/2-14, 4)
	ry := max(float64(h)/2-4, 2)
	for _, e := range s.Enemies {
		rad := e.Angle() * math.Pi / 180
		x := cx + int(math.Round(math.Cos(rad)*rx))
		y := cy - int(math.Round(math.Sin(rad)*ry))
		v.drawEnemy(e, x, y)
	}
	v.drawPlayer(s, cx, cy)

	v.drawFooter(s, w, h)
	v.screen.Show()
}

func (v *View) drawHeader(s Scene, w int) {
	fill(v.screen, 0, w, styleHUD)
	left := fmt.Sprintf(" typecast  script:%s  phase:%s  queued:%d", s.Script, s.Phase, s.Pending)
	if s.PlayerMaxHP > 0 {
		left += fmt.Sprintf("  hp:%d/%d", s.PlayerHP, s.PlayerMaxHP)
	}
	if s.Muted {
		left += "  muted"
	}
	drawText(v.screen, 0, 0, w, left, styleHUD)

	help := "Tab script  F3 mute  Esc pause  ^C quit "
	if hw := runewidth.StringWidth(help); hw+runewidth.StringWidth(left) < w {
		drawText(v.screen, w-hw, 0, w, help, styleHUD)
	}
}

func (v *View) drawEnemy(e *arena.Enemy, x, y int) {
	w, _ := v.screen.Size()

	if !e.Active() {
		text := fmt.Sprintf("x %.1fs", e.RespawnIn().Seconds())
		drawText(v.screen, x-runewidth.StringWidth(text)/2, y, w, text, styleDim)
		return
	}

	l := e.Label()
	x0 := x - runewidth.StringWidth(l.Word())/2
	switch {
	case l.Typo():
		drawText(v.screen, x0, y, w, l.Word(), styleTypo)
	case l.Completed():
		drawText(v.screen, x0, y, w, l.Word(), styleDone)
	case isHangul(l):
		// Hangul syllables cannot be split mid-cell; overlay the composed prefix
		drawText(v.screen, x0, y, w, l.Word(), styleRest)
		drawText(v.screen, x0, y, w, l.Typed(), styleTyped)
	default:
		next := drawText(v.screen, x0, y, w, l.Typed(), styleTyped)
		drawText(v.screen, next, y, w, l.Rest(), styleRest)
	}

	hp := fmt.Sprintf("%d/%d", e.HitPoints(), e.MaxHitPoints())
	drawText(v.screen, x-runewidth.StringWidth(hp)/2, y+1, w, hp, styleDim)
}

func (v *View) drawPlayer(s Scene, cx, cy int) {
	style := styleDefault.Bold(true)
	switch {
	case s.TypoActive:
		style = styleTypo
	case s.Invincible:
		style = styleDim
	}
	v.screen.SetContent(cx, cy, '@', nil, style)

	rad := s.Facing * math.Pi / 180
	ax := cx + int(math.Round(math.Cos(rad)*2))
	ay := cy - int(math.Round(math.Sin(rad)))
	arrowStyle := styleRest
	if s.Casting {
		arrowStyle = styleCast
	}
	v.screen.SetContent(ax, ay, arrowFor(s.Facing), nil, arrowStyle)
}

func (v *View) drawFooter(s Scene, w, h int) {
	if h < 3 {
		return
	}
	parts := make([]string, 0, len(s.Stats))
	for _, e := range s.Stats {
		parts = append(parts, e.Key+"="+e.Value)
	}
	drawText(v.screen, 0, h-2, w, strings.Join(parts, "  "), styleDim)

	switch {
	case s.Defeated:
		fill(v.screen, h-1, w, styleWarn)
		drawText(v.screen, 1, h-1, w, "DEFEATED  ^C to quit", styleWarn)
	case s.Warning != "":
		fill(v.screen, h-1, w, styleWarn)
		drawText(v.screen, 1, h-1, w, s.Warning, styleWarn)
	case s.Paused:
		fill(v.screen, h-1, w, styleHUD)
		drawText(v.screen, 1, h-1, w, "PAUSED  Esc to resume", styleHUD)
	}
}

func isHangul(l *arena.Label) bool {
	for _, r := range l.Word() {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}

// arrowFor picks the octant arrow for a heading in degrees
func arrowFor(deg float64) rune {
	idx := int(math.Round(math.Mod(deg+360, 360)/45)) % 8
	return arrows[idx]
}

// drawText writes s from column x, clipped to [0, maxX), and returns the column after it
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= maxX {
			screen.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

func fill(screen tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
