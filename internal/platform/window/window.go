// Package window is the desktop frontend for Neon Lanes built on ebiten.
// It draws the same snapshot the terminal renderer uses, with vector shapes
// and particle bursts for game events.
package window

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/games/lanes"
	"github.com/vovakirdan/neon-lanes/internal/progress"
	"github.com/vovakirdan/neon-lanes/internal/registry"
	"github.com/vovakirdan/neon-lanes/internal/storage"
)

// Options configures the window frontend.
type Options struct {
	Config  *config.LanesConfig
	Ledger  *progress.Ledger
	History *storage.Store // May be nil
	Profile string
	Logger  *log.Logger
	Seed    int64
	TPS     int
	Width   int
	Height  int
}

// Game implements ebiten.Game over a lanes game.
type Game struct {
	game    *lanes.Game
	opts    Options
	logger  *log.Logger
	frame   core.InputFrame
	fx      *emitter
	state   core.GameState
	saved   bool
	notice  string
	noticeT int
	width   int
	height  int
}

var background = color.RGBA{R: 8, G: 6, B: 20, A: 255}

// New builds the frontend. Missing options fall back to defaults.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 960, 640
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Profile == "" {
		opts.Profile = storage.DefaultProfile
	}

	g := &Game{
		game: lanes.NewFromEnv(registry.Env{
			Config:   opts.Config,
			Progress: opts.Ledger,
			Logger:   opts.Logger,
		}),
		opts:   opts,
		logger: opts.Logger,
		frame:  core.NewInputFrame(),
		fx:     newEmitter(opts.Seed),
		width:  opts.Width,
		height: opts.Height,
	}
	g.game.Reset(core.RuntimeConfig{
		ScreenW:  opts.Width,
		ScreenH:  opts.Height,
		TickRate: opts.TPS,
		Seed:     opts.Seed,
	})
	return g
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := New(opts)
	ebiten.SetWindowTitle("Neon Lanes")
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TPS)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

var keyActions = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionJump},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, core.ActionDown},
	{[]ebiten.Key{ebiten.KeyEnter}, core.ActionConfirm},
	{[]ebiten.Key{ebiten.KeyEnter}, core.ActionResume},
	{[]ebiten.Key{ebiten.KeyP}, core.ActionPause},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart},
	{[]ebiten.Key{ebiten.KeyB, ebiten.KeyEscape}, core.ActionBack},
}

var levelKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0,
}

// readInput collects this frame's intents.
func (g *Game) readInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.frame.Set(ka.action)
				break
			}
		}
	}
	for i, k := range levelKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.frame.SelectLevel(i + 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.state.Ended() {
		g.copySummary()
	}
	return nil
}

// Update advances one tick.
func (g *Game) Update() error {
	if err := g.readInput(); err != nil {
		return err
	}

	prev := g.state
	g.state = g.game.Step(g.frame).State
	g.frame.Clear()

	if g.state.Phase == lanes.StateRunning.String() && prev.Phase != g.state.Phase {
		g.saved = false
	}
	if g.state.Ended() && !g.saved {
		g.recordRun()
		g.saved = true
	}

	g.spawnEffects(g.game.Snapshot())
	g.fx.step()
	if g.noticeT > 0 {
		g.noticeT--
	}
	return nil
}

// spawnEffects turns this tick's events into particle bursts.
func (g *Game) spawnEffects(snap lanes.Snapshot) {
	if len(snap.Events) == 0 {
		return
	}
	p := newProjection(g.width, g.height)
	ax, ay := p.point(snap.Avatar.X, snap.Avatar.Y, snap.Avatar.Z)
	x, y := float64(ax), float64(ay)

	for _, ev := range snap.Events {
		switch ev.Kind {
		case lanes.EventCoinCollected:
			g.fx.burst(x, y-20, 14, 4, 30, core.ColorBrightYellow)
		case lanes.EventLanded:
			g.fx.burst(x, y, 6, 2, 15, core.ColorGray)
		case lanes.EventTrapHit:
			g.fx.burst(x, y-10, 18, 5, 40, core.ColorOrange)
		case lanes.EventHit:
			g.fx.burst(x, y-10, 40, 7, 60, core.ColorBrightRed)
		case lanes.EventLevelUnlocked:
			g.fx.burst(float64(g.width)/2, float64(g.height)/3, 60, 6, 80, core.ColorBrightGreen)
			g.note(fmt.Sprintf("Level %d unlocked", ev.Level))
		}
	}
}

func (g *Game) note(msg string) {
	g.notice = msg
	g.noticeT = 3 * g.opts.TPS
}

func (g *Game) recordRun() {
	if g.opts.History == nil {
		return
	}
	_, err := g.opts.History.SaveRun(storage.RunEntry{
		Profile:   g.opts.Profile,
		Level:     g.state.Level,
		Score:     g.state.Score,
		Coins:     g.state.Coins,
		Completed: g.state.Completed,
	})
	if err != nil {
		g.logger.Warn("could not save run", "error", err)
	}
}

// copySummary puts a one-line run summary on the system clipboard.
func (g *Game) copySummary() {
	summary := Summary(g.game.Snapshot())
	if err := clipboard.WriteAll(summary); err != nil {
		g.logger.Warn("could not copy summary", "error", err)
		g.note("Clipboard unavailable")
		return
	}
	g.note("Summary copied")
}

// Summary formats the finished run for sharing.
func Summary(snap lanes.Snapshot) string {
	result := "crashed"
	if snap.State == lanes.StateLevelComplete {
		result = "cleared"
	}
	return fmt.Sprintf("Neon Lanes | Level %d %s | %s | score %d (best %d) | coins +%d",
		snap.Level, snap.LevelName, result, snap.Score, snap.BestScore, snap.RunCoins)
}

// Layout tracks the window size so the track fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width = core.Max(outsideWidth, 320)
	g.height = core.Max(outsideHeight, 240)
	return g.width, g.height
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.game.Snapshot()

	if snap.State == lanes.StateIdle {
		g.drawMenu(screen, snap)
	} else {
		p := newProjection(g.width, g.height)
		g.drawTrack(screen, p, snap)
		g.drawWorld(screen, p, snap)
		g.drawAvatar(screen, p, snap)
		g.drawHUD(screen, snap)
		g.drawOverlay(screen, snap)
	}

	for _, pt := range g.fx.parts {
		vector.FillCircle(screen, float32(pt.x), float32(pt.y), 2.5, rgba(pt.color, pt.alpha()), false)
	}
	if g.noticeT > 0 {
		ebitenutil.DebugPrintAt(screen, g.notice, g.width/2-len(g.notice)*3, g.height/6)
	}
}

func (g *Game) drawTrack(screen *ebiten.Image, p projection, snap lanes.Snapshot) {
	if len(snap.Lanes) == 0 {
		return
	}
	half := 1.0
	if len(snap.Lanes) > 1 {
		half = (snap.Lanes[1] - snap.Lanes[0]) / 2
	}
	edges := make([]float64, 0, len(snap.Lanes)+1)
	edges = append(edges, snap.Lanes[0]-half)
	for _, x := range snap.Lanes {
		edges = append(edges, x+half)
	}

	lineColor := rgba(core.ColorMagenta, 0.8)
	for _, x := range edges {
		x0, y0 := p.point(x, 0, 0)
		x1, y1 := p.point(x, 0, -farDepth)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, lineColor, true)
	}

	// Cross stripes scroll with distance to sell the motion
	offset := float64(snap.Score % 10)
	for z := -offset; z > -farDepth; z -= 10 {
		x0, y := p.point(edges[0], 0, z)
		x1, _ := p.point(edges[len(edges)-1], 0, z)
		vector.StrokeLine(screen, x0, y, x1, y, 1, rgba(core.ColorBlue, 0.5*p.scale(z)+0.1), false)
	}
}

// drawable is one depth-sorted shape.
type drawable struct {
	z    float64
	draw func()
}

func (g *Game) drawWorld(screen *ebiten.Image, p projection, snap lanes.Snapshot) {
	var items []drawable

	for _, o := range snap.Obstacles {
		if !p.visible(o.Z) {
			continue
		}
		items = append(items, drawable{z: o.Z, draw: func() { g.drawObstacle(screen, p, snap.Motion, o) }})
	}
	for _, c := range snap.Coins {
		if !p.visible(c.Z) {
			continue
		}
		items = append(items, drawable{z: c.Z, draw: func() {
			x, y := p.point(c.X, c.Y, c.Z)
			r, _ := p.size(0.3, 0, c.Z)
			vector.FillCircle(screen, x, y, max(r, 2), rgba(core.ColorBrightYellow, 1), true)
		}})
	}
	if snap.GateActive && p.visible(snap.GateZ) && len(snap.Lanes) > 0 {
		items = append(items, drawable{z: snap.GateZ, draw: func() {
			lo := snap.Lanes[0] - 1
			hi := snap.Lanes[len(snap.Lanes)-1] + 1
			x0, y0 := p.point(lo, 3, snap.GateZ)
			x1, y1 := p.point(hi, 0, snap.GateZ)
			vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 4, rgba(core.ColorBrightGreen, 1), true)
		}})
	}

	// Far to near
	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })
	for _, it := range items {
		it.draw()
	}
}

func (g *Game) drawObstacle(screen *ebiten.Image, p projection, motion config.MotionKind, o lanes.Obstacle) {
	c := core.ColorBrightCyan
	switch {
	case o.Trap:
		c = core.ColorOrange
	case motion == config.MotionSpin:
		c = core.ColorBrightMagenta
	case motion == config.MotionFalling:
		c = core.ColorBrightRed
	}

	w, h := p.size(1.4*o.Width, 1.2*o.Height, o.Z)
	x, y := p.point(o.X, o.Y-0.5, o.Z)
	vector.FillRect(screen, x-w/2, y-h, w, h, rgba(c, 0.9), false)
	vector.StrokeRect(screen, x-w/2, y-h, w, h, 1.5, rgba(core.ColorBrightWhite, 0.6), false)

	if motion == config.MotionSpin {
		// Spinner bar rotates with the obstacle
		dx, dy := float32(math.Cos(o.Rotation))*w/2, float32(math.Sin(o.Rotation))*h/2
		cx, cy := x, y-h/2
		vector.StrokeLine(screen, cx-dx, cy-dy, cx+dx, cy+dy, 2, rgba(core.ColorBrightWhite, 1), true)
	}
}

func (g *Game) drawAvatar(screen *ebiten.Image, p projection, snap lanes.Snapshot) {
	a := snap.Avatar
	ground := g.game.Machine().Config().Jump.Ground
	c := core.ParseColor(snap.Cosmetic.Color)

	w, h := p.size(1.0, 1.4, 0)
	x, y := p.point(a.X, a.Y-ground, 0)
	alpha := a.Opacity
	if a.Alive {
		alpha = 1
	}
	// Lean into lane changes
	lean := float32(a.Rotation) * w
	vector.FillRect(screen, x-w/2+lean/2, y-h, w, h, rgba(c, alpha), false)
	vector.StrokeRect(screen, x-w/2+lean/2, y-h, w, h, 2, rgba(core.ColorBrightWhite, alpha), false)
	if a.Alive {
		face := snap.Cosmetic.Face
		ebitenutil.DebugPrintAt(screen, face, int(x)-len(face)*3, int(y-h*0.7))
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap lanes.Snapshot) {
	left := fmt.Sprintf("Lv %d %s   Score %d   Best %d", snap.Level, snap.LevelName, snap.Score, snap.BestScore)
	ebitenutil.DebugPrintAt(screen, left, 12, 10)

	right := fmt.Sprintf("Coins %d (%d)", snap.RunCoins, snap.TotalCoins)
	if snap.Penalized {
		right = "SLOWED  " + right
	}
	ebitenutil.DebugPrintAt(screen, right, g.width-len(right)*6-12, 10)

	barW := float32(g.width) * 0.4
	vector.StrokeRect(screen, 12, 30, barW, 8, 1, rgba(core.ColorBrightGreen, 1), false)
	vector.FillRect(screen, 12, 30, barW*float32(snap.Progress)/100, 8, rgba(core.ColorBrightGreen, 0.8), false)
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap lanes.Snapshot) {
	var lines []string
	switch {
	case snap.Paused:
		lines = []string{"PAUSED", "P resume   R restart   B menu"}
	case snap.State == lanes.StateGameOver && snap.Finalized:
		lines = []string{"GAME OVER",
			fmt.Sprintf("Score %d   Best %d   Coins +%d", snap.Score, snap.BestScore, snap.RunCoins),
			"R restart   B menu   C copy summary"}
	case snap.State == lanes.StateLevelComplete:
		next := "R replay   B menu   C copy summary"
		if snap.NextLevel > 0 {
			secs := (snap.AdvanceIn + g.opts.TPS - 1) / g.opts.TPS
			next = fmt.Sprintf("Level %d in %ds   Enter now   B menu", snap.NextLevel, secs)
		}
		lines = []string{"LEVEL COMPLETE", fmt.Sprintf("Score %d   Coins +%d", snap.Score, snap.RunCoins), next}
	default:
		return
	}

	boxW, boxH := float32(360), float32(24+len(lines)*18)
	bx, by := (float32(g.width)-boxW)/2, (float32(g.height)-boxH)/2
	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 2, rgba(core.ColorBrightCyan, 1), false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(bx+boxW/2)-len(l)*3, int(by)+12+i*18)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image, snap lanes.Snapshot) {
	cx := g.width / 2
	title := "N E O N   L A N E S"
	ebitenutil.DebugPrintAt(screen, title, cx-len(title)*3, 40)
	info := fmt.Sprintf("%s   Coins %d   Skin %s", g.opts.Profile, snap.TotalCoins, snap.Cosmetic.Name)
	ebitenutil.DebugPrintAt(screen, info, cx-len(info)*3, 64)

	for i, e := range snap.Menu {
		y := 110 + i*22
		status := "locked"
		if e.Unlocked {
			status = fmt.Sprintf("best %d", e.Best)
		}
		line := fmt.Sprintf("%2d  %-10s %-8s %s", e.Level, e.Name, e.Motion, status)
		if e.Level == snap.Cursor {
			vector.FillRect(screen, float32(cx-170), float32(y-3), 340, 20, rgba(core.ColorBlue, 0.6), false)
		}
		ebitenutil.DebugPrintAt(screen, line, cx-len(line)*3, y)
	}

	help := "Up/Down choose   Enter start   1-0 pick   Q quit"
	ebitenutil.DebugPrintAt(screen, help, cx-len(help)*3, g.height-30)
}
