package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// UIScale is the HiDPI scale factor for all drawing. Layout sets it; every
// position in this package is logical and is multiplied by UIScale when drawn.
var UIScale = 1.0

func scaleF(v int) float32 {
	return float32(float64(v) * UIScale)
}

func scaleD(v int) float64 {
	return float64(v) * UIScale
}

// Shortcut is a keyboard command on the board screen.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutPass
	ShortcutNewGame
	ShortcutToggleHints
)

var shortcutKeys = map[ebiten.Key]Shortcut{
	ebiten.KeyP: ShortcutPass,
	ebiten.KeyN: ShortcutNewGame,
	ebiten.KeyH: ShortcutToggleHints,
}

// InputHandler tracks mouse and keyboard state for one frame.
type InputHandler struct {
	mouseX, mouseY   int // Logical coordinates
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	shortcut         Shortcut
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads the input state. Call it once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	scale := max(UIScale, 1.0)
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ih.shortcut = ShortcutNone
	for key, sc := range shortcutKeys {
		if inpututil.IsKeyJustPressed(key) {
			ih.shortcut = sc
			break
		}
	}
}

// MousePosition returns the mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased returns true if the left mouse button was just released.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// IsLeftPressed returns true while the left mouse button is held.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// Shortcut returns the keyboard command pressed this frame, if any.
// Text fields should be checked for focus before acting on it.
func (ih *InputHandler) Shortcut() Shortcut {
	return ih.shortcut
}

// IsKeyJustPressed returns true if the key was just pressed.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
