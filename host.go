package lurk

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultWindowTitle is the title of the creature's own window. Candidate
// filtering skips windows with this name so the creature never hides in
// itself.
const DefaultWindowTitle = "lurk"

// HostOptions configures NewHost.
type HostOptions struct {
	Provider WindowProvider
	Body     *ImageSprite
	// Speech is optional; nil disables the speech bubble.
	Speech       *ImageSprite
	ScreenCenter Vec2I
	// Clock defaults to SystemClock.
	Clock Clock
	// Rand defaults to a generator seeded from the clock.
	Rand Rand
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
	// MoveWindow makes the host fit the OS window to the creature every
	// frame. Leave false when driving a Host without a running game.
	MoveWindow bool
}

// Host owns the creature and drives it from the ebiten frame loop. It is the
// only place the creature's methods are called from, so no locking is needed.
type Host struct {
	creature *Creature
	body     *ImageSprite
	speech   *ImageSprite
	clock    Clock
	timer    *DeltaTimer
	ctx      context.Context
	debug    bool

	// Input
	events      []eventKind
	injectQueue []syntheticPointerEvent
	pointer     pointerState

	// Last computed pose
	pose     Pose
	bounds   RectI // host window rectangle in screen space
	bodyRect RectI // creature body in screen space
	bubble   bubbleFade

	moveWindow bool
	lastErr    error

	// Testing / screenshots
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner

	stats debugStats
}

// NewHost creates a host with a fresh creature at opts.ScreenCenter.
func NewHost(opts HostOptions) *Host {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	h := &Host{
		body:          opts.Body,
		speech:        opts.Speech,
		clock:         clock,
		timer:         NewDeltaTimer(clock),
		ctx:           context.Background(),
		moveWindow:    opts.MoveWindow,
		ScreenshotDir: dir,
	}

	copts := CreatureOptions{
		Provider:     opts.Provider,
		Body:         opts.Body,
		ScreenCenter: opts.ScreenCenter,
		Rand:         opts.Rand,
		Now:          clock.Now(),
	}
	// A typed nil in an interface would not compare equal to nil.
	if opts.Speech != nil {
		copts.Speech = opts.Speech
	}
	h.creature = NewCreature(copts)
	h.pose = h.creature.ComputePose(copts.Now)
	h.fit(h.pose)
	return h
}

// Creature returns the hosted creature.
func (h *Host) Creature() *Creature { return h.creature }

// Pose returns the pose computed on the most recent frame.
func (h *Host) Pose() Pose { return h.pose }

// Bounds returns the host window rectangle in screen coordinates.
func (h *Host) Bounds() RectI { return h.bounds }

// LastError returns the most recent error from reacting to an event.
func (h *Host) LastError() error { return h.lastErr }

// SetContext sets the context passed to window enumeration. Cancelling it
// makes later hide attempts fail fast.
func (h *Host) SetContext(ctx context.Context) { h.ctx = ctx }

// SetDebugMode enables or disables debug mode. When enabled, the state
// overlay is drawn and per-frame timing is logged at debug level.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// Update processes input and advances the creature. It implements
// ebiten.Game.
func (h *Host) Update() error {
	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	h.processInput()
	h.step()
	return nil
}

// step runs one frame of creature logic: queued events in arrival order,
// then time-based transitions, then the pose.
func (h *Host) step() {
	start := time.Now()
	now := h.clock.Now()
	dt := h.timer.Tick()

	events := h.events
	h.events = h.events[:0]
	for _, e := range events {
		h.handle(e, now)
	}

	h.creature.Tick(h.ctx, now)
	h.pose = h.creature.ComputePose(now)
	h.fit(h.pose)

	if h.speech != nil {
		h.speech.Alpha = h.bubble.update(h.pose.SpeechFrame, float32(dt.Seconds()))
	}
	if h.moveWindow {
		h.placeWindow()
	}

	h.stats.frames++
	h.stats.stepTime = time.Since(start)
	h.debugLog()
}

// handle forwards one input event to the creature. Failures are logged and
// otherwise ignored; the creature stays where it is.
func (h *Host) handle(e eventKind, now time.Time) {
	var err error
	switch e {
	case eventClick:
		err = h.creature.Click(h.ctx, now)
	case eventHide:
		err = h.creature.HideNow(h.ctx, now)
	}
	if err == nil {
		return
	}
	h.lastErr = err
	if errors.Is(err, ErrNoHidingSpot) || errors.Is(err, ErrNoCandidates) {
		logger().Warn("nowhere to hide", "event", e.String(), "err", err)
		return
	}
	logger().Error("event failed", "event", e.String(), "err", err)
}

// fit records the window and body rectangles for a pose.
func (h *Host) fit(p Pose) {
	b := p.Bounds
	if b.Dim.X < 1 {
		b.Dim.X = 1
	}
	if b.Dim.Y < 1 {
		b.Dim.Y = 1
	}
	h.bounds = b
	h.bodyRect = CenteredRect(p.Pos, h.body.FrameSize())
}

// placeWindow moves and resizes the OS window to the current bounds.
func (h *Host) placeWindow() {
	ebiten.SetWindowPosition(h.bounds.Pos.X, h.bounds.Pos.Y)
	ebiten.SetWindowSize(h.bounds.Dim.X, h.bounds.Dim.Y)
}

// Draw renders the creature and its speech bubble into the host window. It
// implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Clear()
	origin := h.bounds.Pos
	h.body.Draw(screen, origin)
	if h.speech != nil {
		h.speech.Draw(screen, origin)
	}
	if h.debug {
		h.drawDebug(screen)
	}
	h.flushScreenshots(screen)
}

// Layout makes the logical screen match the fitted window. It implements
// ebiten.Game.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.bounds.Dim.X, h.bounds.Dim.Y
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title string
	// TPS sets the update rate. Zero keeps ebiten's default of 60.
	TPS int
}

// Run opens a borderless, always-on-top, transparent window and runs the
// host's frame loop until the window closes.
func Run(h *Host, cfg RunConfig) error {
	title := cfg.Title
	if title == "" {
		title = DefaultWindowTitle
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	h.moveWindow = true
	h.placeWindow()

	return ebiten.RunGameWithOptions(h, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
	})
}
