package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/samber/lo"

	"github.com/hailam/gothello/internal/board"
)

// IllegalReason says why a clicked point was rejected.
type IllegalReason int

const (
	ReasonUnknown IllegalReason = iota
	ReasonOccupied
	ReasonNoLiberties
	ReasonNotYourTurn
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast is a short message shown over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager stacks up to maxStack toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast, dropping the oldest one when the stack is full.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	tm.toasts = lo.Filter(tm.toasts, func(t *Toast, _ int) bool {
		return now.Sub(t.StartTime) < t.Duration
	})
}

func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	a := func(v float64) uint8 { return uint8(v * alpha) }
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, a(220)}, color.RGBA{40, 30, 0, a(255)}
	case ToastError:
		return color.RGBA{180, 50, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	case ToastSuccess:
		return color.RGBA{50, 150, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	default:
		return color.RGBA{50, 100, 150, a(220)}, color.RGBA{255, 255, 255, a(255)}
	}
}

// Draw renders the active toasts centered over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	y := 50
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		alpha := 1.0
		const fade = 0.2
		if elapsed < fade {
			alpha = elapsed / fade
		} else if elapsed > duration-fade {
			alpha = max(0, (duration-elapsed)/fade)
		}
		bg, fg := toastColors(t.Type, alpha)

		w, h := MeasureText(t.Message, face)
		const padding = 12
		boxW := int(w) + padding*2
		boxH := int(h) + padding*2
		x := BoardSize/2 - boxW/2

		vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(boxW), scaleF(boxH), bg, false)
		drawText(screen, t.Message, x+padding, y+padding, fg, face)

		y += boxH + 8
	}
}

// animation is a timed effect on one point.
type animation struct {
	Point     board.Move
	StartTime time.Time
	Duration  time.Duration
}

func (a animation) progress(now time.Time) float64 {
	return now.Sub(a.StartTime).Seconds() / a.Duration.Seconds()
}

// FlashAnimation tints a point's cell and fades out.
type FlashAnimation struct {
	animation
	Color color.RGBA
}

// CaptureAnimation fades out a stone that was just removed.
type CaptureAnimation struct {
	animation
	Stone board.Color
}

// AnimationManager manages the point animations.
type AnimationManager struct {
	flashes  []*FlashAnimation
	captures []*CaptureAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartFlash begins a flash on a point.
func (am *AnimationManager) StartFlash(m board.Move, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		animation: animation{Point: m, StartTime: time.Now(), Duration: 400 * time.Millisecond},
		Color:     c,
	})
}

// StartCapture fades out a stone of color c removed from m.
func (am *AnimationManager) StartCapture(m board.Move, c board.Color) {
	am.captures = append(am.captures, &CaptureAnimation{
		animation: animation{Point: m, StartTime: time.Now(), Duration: 600 * time.Millisecond},
		Stone:     c,
	})
}

// Update removes finished animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	am.flashes = lo.Filter(am.flashes, func(f *FlashAnimation, _ int) bool {
		return f.progress(now) < 1
	})
	am.captures = lo.Filter(am.captures, func(c *CaptureAnimation, _ int) bool {
		return c.progress(now) < 1
	})
}

// Clear drops every running animation.
func (am *AnimationManager) Clear() {
	am.flashes = nil
	am.captures = nil
}

// Draw renders the flashes and the fading captured stones.
func (am *AnimationManager) Draw(screen *ebiten.Image, r *Renderer) {
	now := time.Now()
	for _, f := range am.flashes {
		p := f.progress(now)
		if p >= 1 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1 - p))
		r.HighlightPoint(screen, f.Point, c)
	}
	for _, c := range am.captures {
		p := c.progress(now)
		if p >= 1 {
			continue
		}
		r.DrawGhost(screen, c.Point, c.Stone, float32(1-p))
	}
}

// Captured is a stone removed by the last move.
type Captured struct {
	Point board.Move
	Stone board.Color
}

// FeedbackManager coordinates toasts, animations and sound.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// DrawBoardEffects renders the animations; call it after the stones.
func (fm *FeedbackManager) DrawBoardEffects(screen *ebiten.Image, r *Renderer) {
	fm.animations.Draw(screen, r)
}

// DrawToasts renders the toasts; call it after everything on the board.
func (fm *FeedbackManager) DrawToasts(screen *ebiten.Image) {
	fm.toasts.Draw(screen)
}

// Reset clears animations and toasts for a new game.
func (fm *FeedbackManager) Reset() {
	fm.animations.Clear()
	fm.toasts.toasts = nil
}

// OnIllegalMove handles a click on a point that cannot be played.
func (fm *FeedbackManager) OnIllegalMove(m board.Move, reason IllegalReason) {
	var message string
	switch reason {
	case ReasonOccupied:
		message = "That point is taken"
	case ReasonNoLiberties:
		message = "No liberties there"
	case ReasonNotYourTurn:
		message = "Not your turn"
	default:
		message = "Illegal move"
	}
	fm.toasts.Show(message, ToastWarning, 2*time.Second)
	fm.animations.StartFlash(m, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnMove handles a placement and the stones it captured.
func (fm *FeedbackManager) OnMove(m board.Move, captured []Captured) {
	for _, c := range captured {
		fm.animations.StartCapture(c.Point, c.Stone)
	}
	if len(captured) > 0 {
		fm.audio.Play(SoundCapture)
		return
	}
	fm.audio.Play(SoundPlace)
}

// OnPass handles a pass by side.
func (fm *FeedbackManager) OnPass(side board.Color) {
	fm.toasts.Show(fmt.Sprintf("%s passes", displayColor(side)), ToastInfo, 2*time.Second)
	fm.audio.Play(SoundPass)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(result string) {
	fm.toasts.Show(result, ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
