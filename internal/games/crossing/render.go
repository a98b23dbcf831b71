package crossing

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

const hudHeight = 2

// Narrative cards keyed by Level.Story.
var stories = map[string][]string{
	"start": {
		"Reach the far bank.",
		"Ride the rafts, keep off the strip.",
	},
	"level2": {
		"The current got faster.",
		"Collect what you need before crossing.",
	},
}

type glyphs struct {
	strip    rune
	stripCol core.Color
	hopper   [2]string // indexed by Mirrored
	hopCol   core.Color
}

func glyphsFor(b Biome) glyphs {
	switch b {
	case Space:
		return glyphs{strip: '.', stripCol: core.ColorGray, hopper: [2]string{"<U", "U>"}, hopCol: core.ColorMagenta}
	case Squid:
		return glyphs{strip: '_', stripCol: core.ColorGray, hopper: [2]string{"/G", "G\\"}, hopCol: core.ColorPink}
	default:
		return glyphs{strip: '~', stripCol: core.ColorBlue, hopper: [2]string{"<C", "C>"}, hopCol: core.ColorGreen}
	}
}

// projection maps world coordinates onto the playfield below the HUD.
type projection struct {
	sx, sy float64
}

func newProjection(dst *core.Screen, worldW, worldH float64) projection {
	h := dst.Height() - hudHeight
	return projection{
		sx: float64(dst.Width()) / worldW,
		sy: float64(h) / worldH,
	}
}

func (p projection) x(wx float64) int { return int(math.Floor(wx * p.sx)) }
func (p projection) y(wy float64) int { return hudHeight + int(math.Floor(wy*p.sy)) }

// Render draws the round as ASCII.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.round == nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start "+g.biome.Title(), core.ColorRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}

	r := g.round
	snap := r.Snapshot()
	cfg := r.Config()
	pr := newProjection(dst, cfg.World.Width, cfg.World.Height)
	gl := glyphsFor(g.biome)

	g.renderHUD(dst, snap)

	// Banks and strip.
	left := pr.x(cfg.World.LeftBank)
	right := pr.x(cfg.World.Width - cfg.World.RightBank)
	for y := hudHeight; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			switch {
			case x < left || x >= right:
				dst.SetColored(x, y, ',', core.ColorGreen)
			default:
				dst.SetColored(x, y, gl.strip, gl.stripCol)
			}
		}
	}
	finish := pr.x(cfg.World.Width - cfg.World.WinMargin)
	for y := hudHeight; y < dst.Height(); y++ {
		dst.SetColored(finish, y, '|', core.ColorYellow)
	}

	for _, pl := range snap.Platforms {
		y := pr.y(pl.Y)
		for x := pr.x(pl.X - pl.Radius); x <= pr.x(pl.X+pl.Radius); x++ {
			dst.SetColored(x, y, '=', core.ColorBrown)
		}
		if pl.Coins > 0 {
			dst.SetColored(pr.x(pl.X), y, '$', core.ColorBrightYellow)
		}
	}

	for _, h := range snap.Hoppers {
		text := gl.hopper[0]
		if h.Mirrored {
			text = gl.hopper[1]
		}
		c := gl.hopCol
		if h.BulbOn {
			c = core.ColorBrightMagenta
		}
		dst.DrawTextColored(pr.x(h.X)-1, pr.y(h.Y-h.JumpOffset), text, c)
	}

	p := snap.Player
	py := pr.y(p.Y - p.JumpOffset - p.HoverOffset)

	if s := snap.Sentinel; s != nil {
		c := core.ColorGray
		if s.Looking {
			c = core.ColorRed
		}
		dst.DrawTextColored(pr.x(s.X)-1, pr.y(s.Y), "[D]", c)
		if s.Shooting {
			drawLine(dst, pr.x(s.X), pr.y(s.Y)+1, pr.x(p.X), py, '*', core.ColorBrightRed)
		}
	}

	if p.Visible {
		glyph := '@'
		if p.Hovering {
			glyph = 'A'
		}
		dst.SetColored(pr.x(p.X), py, glyph, core.ColorBrightWhite)
	}

	switch {
	case g.story:
		lines := stories[r.Story()]
		renderCard(dst, r.LevelName(), append(append([]string{}, lines...), "", "Enter to start"))
	case r.State() == StatePaused:
		renderCard(dst, "Paused", []string{"P to continue", "F5 save  F9 load"})
	case r.State() == StateWon:
		renderCard(dst, "Level cleared!", []string{fmt.Sprintf("Coins: %d", snap.Stats.Coins), "Enter for next level"})
	case r.State() == StateComplete:
		renderCard(dst, "You crossed them all!", []string{"R to play again", "B for menu"})
	case r.State() == StateGameOver:
		renderCard(dst, "Game Over", []string{"R to restart", "B for menu"})
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	st := snap.Stats
	var b strings.Builder
	fmt.Fprintf(&b, " %s  L%d/%d  HP %3.0f  Lives %d", g.biome.Title(), st.Level+1, st.Levels, st.Health, st.Lives)
	if st.NeedCoins > 0 {
		fmt.Fprintf(&b, "  Coins %d/%d", st.Coins, st.NeedCoins)
	} else if st.Coins > 0 {
		fmt.Fprintf(&b, "  Coins %d", st.Coins)
	}
	if g.round.Traits().Hover {
		fmt.Fprintf(&b, "  Fuel %s", bar(st.Fuel, st.MaxFuel, 10))
	}
	dst.DrawText(0, 0, b.String())
	if g.notice != "" {
		dst.DrawTextColored(dst.Width()-len(g.notice)-1, 0, g.notice, core.ColorYellow)
	}
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func bar(v, full float64, width int) string {
	if full <= 0 {
		return strings.Repeat("-", width)
	}
	n := int(math.Round(v / full * float64(width)))
	n = core.Clamp(n, 0, width)
	return strings.Repeat("#", n) + strings.Repeat("-", width-n)
}

func renderCard(dst *core.Screen, title string, lines []string) {
	w := len([]rune(title))
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorDefault)
	}
}

// drawLine plots a straight line between two cells.
func drawLine(dst *core.Screen, x0, y0, x1, y1 int, r rune, c core.Color) {
	steps := core.Max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		dst.SetColored(x0, y0, r, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		dst.SetColored(x, y, r, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
