package lanes

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
)

// Visual characters for rendering
const (
	ObstacleChar = '█'
	SpinChar     = '▓'
	TrapChar     = '▒'
	CoinChar     = 'o'
	LaneChar     = '·'
	GateChar     = '═'
	DeadChar     = '×'
)

const (
	farDepth       = 140.0 // Deepest Z drawn
	perspectiveK   = 14.0  // Depth at which the track is drawn at half scale
	rowsPerUnit    = 2.0   // Screen rows per world unit of height at Z=0
	hudRows        = 2
	menuTitle      = "NEON LANES"
	menuSubtitle   = "Up/Down choose  Enter start  Q quit"
	lockedLabel    = "locked"
	defaultFace    = ":)"
	progressBarLen = 20
)

// view projects world coordinates onto the character grid.
type view struct {
	w, h      int
	horizon   int
	avatarRow int
	laneW     float64
}

func newView(dst *core.Screen) view {
	h := dst.Height()
	return view{
		w:         dst.Width(),
		h:         h,
		horizon:   hudRows + 1,
		avatarRow: core.Max(hudRows+3, h-3),
		laneW:     float64(dst.Width()) / 9,
	}
}

// scale returns the perspective factor for a depth ahead of the avatar.
func (v view) scale(depth float64) float64 {
	if depth < 0 {
		depth = 0
	}
	return perspectiveK / (perspectiveK + depth)
}

// row returns the screen row of a point at height 0 and the given Z.
func (v view) row(z float64) int {
	depth := math.Max(-z, 0)
	frac := depth / (depth + perspectiveK)
	return v.avatarRow - int(math.Round(frac*float64(v.avatarRow-v.horizon)))
}

// col returns the screen column of lateral position x at the given Z.
func (v view) col(x, z float64) int {
	return v.w/2 + int(math.Round(x*v.laneW*v.scale(-z)))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.last
	v := newView(dst)

	if snap.State == StateIdle {
		g.drawMenu(dst, snap)
		return
	}

	g.drawTrack(dst, v, snap)
	g.drawWorld(dst, v, snap)
	g.drawAvatar(dst, v, snap)
	g.drawHUD(dst, snap)

	switch {
	case snap.Paused:
		drawPanel(dst, core.ColorBrightCyan, "PAUSED", "P resume  R restart  B menu")
	case snap.State == StateGameOver && snap.Finalized:
		drawPanel(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score %d  Best %d  Coins +%d", snap.Score, snap.BestScore, snap.RunCoins),
			"R restart  B menu")
	case snap.State == StateLevelComplete:
		next := "R replay  B menu"
		if snap.NextLevel > 0 {
			rate := core.Max(g.runtime.TickRate, 1)
			next = fmt.Sprintf("Level %d in %ds  Enter now  B menu", snap.NextLevel, (snap.AdvanceIn+rate-1)/rate)
		}
		drawPanel(dst, core.ColorBrightGreen, "LEVEL COMPLETE",
			fmt.Sprintf("Score %d  Coins +%d", snap.Score, snap.RunCoins), next)
	}
}

func (g *Game) drawTrack(dst *core.Screen, v view, snap Snapshot) {
	if len(snap.Lanes) == 0 {
		return
	}
	// Lane edges sit halfway between lane centres and beyond the outer lanes.
	half := 1.0
	if len(snap.Lanes) > 1 {
		half = core.AbsF(snap.Lanes[1]-snap.Lanes[0]) / 2
	}
	edges := make([]float64, 0, len(snap.Lanes)+1)
	for _, x := range snap.Lanes {
		edges = append(edges, x-half)
	}
	edges = append(edges, snap.Lanes[len(snap.Lanes)-1]+half)

	for row := v.horizon; row <= v.avatarRow+1 && row < v.h; row++ {
		frac := float64(v.avatarRow-row) / float64(v.avatarRow-v.horizon)
		if frac >= 1 {
			continue
		}
		depth := perspectiveK * frac / (1 - frac)
		z := -depth
		for i, x := range edges {
			color := core.ColorBlue
			if i == 0 || i == len(edges)-1 {
				color = core.ColorMagenta
			}
			dst.SetColored(v.col(x, z), row, LaneChar, color)
		}
	}
}

type drawable struct {
	z    float64
	draw func()
}

func (g *Game) drawWorld(dst *core.Screen, v view, snap Snapshot) {
	items := make([]drawable, 0, len(snap.Obstacles)+len(snap.Coins)+1)

	for _, o := range snap.Obstacles {
		if o.Z < -farDepth || o.Z > 1 {
			continue
		}
		o := o
		items = append(items, drawable{z: o.Z, draw: func() { drawObstacle(dst, v, snap.Motion, o) }})
	}
	for _, c := range snap.Coins {
		if c.Z < -farDepth || c.Z > 1 {
			continue
		}
		c := c
		items = append(items, drawable{z: c.Z, draw: func() { drawCoin(dst, v, c) }})
	}
	if snap.GateActive && snap.GateZ <= 1 {
		z := snap.GateZ
		items = append(items, drawable{z: z, draw: func() { drawGate(dst, v, snap.Lanes, z) }})
	}

	// Far to near so closer objects overdraw distant ones
	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })
	for _, it := range items {
		it.draw()
	}
}

func drawObstacle(dst *core.Screen, v view, motion config.MotionKind, o Obstacle) {
	p := v.scale(-o.Z)
	w := core.Max(1, int(math.Round(v.laneW*0.8*o.Width*p)))
	h := core.Max(1, int(math.Round(rowsPerUnit*o.Height*p)))
	lift := int(math.Round((o.Y - 0.5) * rowsPerUnit * p))
	base := v.row(o.Z) - lift
	left := v.col(o.X, o.Z) - w/2

	ch, color := ObstacleChar, core.ColorBrightRed
	switch {
	case o.Trap:
		ch, color = TrapChar, core.ColorBrightMagenta
	case motion == config.MotionSpin && int(o.Rotation*4)%2 == 1:
		ch = SpinChar
	case o.Falling:
		color = core.ColorOrange
	}

	for dy := 0; dy < h; dy++ {
		dst.DrawHLine(left, base-dy, w, ch, color)
	}
}

func drawCoin(dst *core.Screen, v view, c Coin) {
	p := v.scale(-c.Z)
	lift := int(math.Round((c.Y - 0.5) * rowsPerUnit * p))
	dst.SetColored(v.col(c.X, c.Z), v.row(c.Z)-lift, CoinChar, core.ColorBrightYellow)
}

func drawGate(dst *core.Screen, v view, lanes []float64, z float64) {
	if len(lanes) == 0 {
		return
	}
	row := v.row(z) - 1
	left := v.col(lanes[0]-1, z)
	right := v.col(lanes[len(lanes)-1]+1, z)
	dst.DrawHLine(left, row, right-left+1, GateChar, core.ColorBrightGreen)
	label := " FINISH "
	dst.DrawTextColored((left+right-len(label))/2, row, label, core.ColorBrightGreen)
}

func (g *Game) drawAvatar(dst *core.Screen, v view, snap Snapshot) {
	a := snap.Avatar
	face := snap.Cosmetic.Face
	if face == "" {
		face = defaultFace
	}
	color := core.ParseColor(snap.Cosmetic.Color)

	ground := g.machine.Config().Jump.Ground
	lift := int(math.Round((a.Y - ground) * rowsPerUnit))
	row := v.avatarRow - lift
	sprite := "[" + face + "]"
	col := v.col(a.X, 0) - len([]rune(sprite))/2

	if !a.Alive {
		if a.Opacity < 0.5 {
			color = core.ColorGray
		}
		dst.SetColored(v.col(a.X, 0), row, DeadChar, color)
		return
	}
	dst.DrawTextColored(col, row, sprite, color)
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	hudColor := core.ColorBrightCyan
	if g.Flashing() {
		hudColor = core.ColorBrightYellow
	}

	left := fmt.Sprintf(" Lv %d %s  Score %d  Best %d ", snap.Level, snap.LevelName, snap.Score, snap.BestScore)
	dst.DrawTextColored(0, 0, left, hudColor)

	right := fmt.Sprintf(" Coins %d (%d) ", snap.RunCoins, snap.TotalCoins)
	if snap.Penalized {
		right = " SLOWED" + right
	}
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorBrightYellow)

	filled := snap.Progress * progressBarLen / 100
	bar := fmt.Sprintf(" [%s%s] %d%% ", strings.Repeat("#", filled), strings.Repeat("-", progressBarLen-filled), snap.Progress)
	dst.DrawTextColored(0, 1, bar, core.ColorBrightGreen)
}

func (g *Game) drawMenu(dst *core.Screen, snap Snapshot) {
	dst.DrawTextCenteredColored(1, menuTitle, core.ColorBrightMagenta)
	dst.DrawTextCenteredColored(2, fmt.Sprintf("Coins %d  Skin %s", snap.TotalCoins, snap.Cosmetic.Name), core.ColorBrightYellow)

	top := 4
	for i, e := range snap.Menu {
		row := top + i
		if row >= dst.Height()-2 {
			break
		}
		status := lockedLabel
		color := core.ColorGray
		if e.Unlocked {
			status = fmt.Sprintf("best %d", e.Best)
			color = core.ColorWhite
		}
		marker := "  "
		if e.Level == snap.Cursor {
			marker = "> "
			if e.Unlocked {
				color = core.ColorBrightCyan
			}
		}
		line := fmt.Sprintf("%s%2d  %-10s %-8s %s", marker, e.Level, e.Name, e.Motion, status)
		dst.DrawTextCenteredColored(row, line, color)
	}

	dst.DrawTextCenteredColored(dst.Height()-1, menuSubtitle, core.ColorGray)
}

// drawPanel draws a centered box with a title and lines of text.
func drawPanel(dst *core.Screen, color core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
