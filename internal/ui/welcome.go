package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gothello/internal/storage"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 380
	WelcomeHeight = 380
	WelcomePadX   = 32
	WelcomePadY   = 24
)

// WelcomeScreen asks for a name and a side on first launch.
type WelcomeScreen struct {
	visible bool
	x, y    int

	nameInput  *TextInput
	colorRadio *RadioGroup
	startBtn   *ModalButton

	onComplete func(name string, color storage.PlayerColor)
}

// NewWelcomeScreen creates a new welcome screen.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{
		x: (ScreenWidth - WelcomeWidth) / 2,
		y: (ScreenHeight - WelcomeHeight) / 2,
	}
	contentX := ws.x + WelcomePadX
	contentW := WelcomeWidth - WelcomePadX*2

	inputY := ws.y + 140
	ws.nameInput = NewTextInput(contentX, inputY, contentW, 40, "Enter your name", 20)
	ws.colorRadio = NewRadioGroup(contentX, inputY+80, []RadioOption{
		{Label: "Black (moves first)", Value: int(storage.ColorBlack)},
		{Label: "White", Value: int(storage.ColorWhite)},
	}, 0)

	btnW, btnH := 160, 44
	ws.startBtn = NewModalButton(ws.x+(WelcomeWidth-btnW)/2, ws.y+WelcomeHeight-WelcomePadY-btnH,
		btnW, btnH, "Start Playing", true, ws.handleStart)
	return ws
}

// Show displays the welcome screen.
func (ws *WelcomeScreen) Show(onComplete func(name string, color storage.PlayerColor)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
	ws.colorRadio.Selected = 0
}

// Hide closes the welcome screen.
func (ws *WelcomeScreen) Hide() {
	ws.visible = false
	ws.nameInput.SetFocused(false)
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

func (ws *WelcomeScreen) handleStart() {
	name := ws.nameInput.Value
	if name == "" {
		name = "Player"
	}
	if ws.onComplete != nil {
		ws.onComplete(name, storage.PlayerColor(ws.colorRadio.Value()))
	}
	ws.Hide()
}

// Update handles input for the welcome screen. It consumes all input.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		ws.handleStart()
		return true
	}
	ws.nameInput.Update(input)
	ws.colorRadio.Update(input)
	ws.startBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if any control is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	if !ws.visible {
		return false
	}
	return ws.startBtn.IsHovered() || ws.colorRadio.hovered >= 0
}

// Draw renders the welcome screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image) {
	if !ws.visible {
		return
	}
	fillRect(screen, 0, 0, ScreenWidth, ScreenHeight, modalOverlay)
	fillRect(screen, ws.x, ws.y, WelcomeWidth, WelcomeHeight, modalBg)
	strokeRect(screen, ws.x, ws.y, WelcomeWidth, WelcomeHeight, 2, modalBorder)

	ws.drawIcon(screen)
	cx := ws.x + WelcomeWidth/2
	drawTextCentered(screen, "GOTHELLO", cx, ws.y+76, textPrimary, GetFaceWithSize(24))
	drawTextCentered(screen, "Capture more stones than the engine.", cx, ws.y+104, textSecondary, GetRegularFace())

	contentX := ws.x + WelcomePadX
	drawLabel(screen, "Your Name", contentX, ws.nameInput.Y-22)
	drawLabel(screen, "Play As", contentX, ws.colorRadio.Y-22)

	ws.nameInput.Draw(screen)
	ws.colorRadio.Draw(screen)
	ws.startBtn.Draw(screen)
}

// drawIcon draws a black and a white stone side by side.
func (ws *WelcomeScreen) drawIcon(screen *ebiten.Image) {
	cx, cy := ws.x+WelcomeWidth/2, ws.y+38
	vector.DrawFilledCircle(screen, scaleF(cx-10), scaleF(cy), scaleF(14), textPrimary, true)
	vector.DrawFilledCircle(screen, scaleF(cx+10), scaleF(cy), scaleF(14), panelBg, true)
	vector.StrokeCircle(screen, scaleF(cx+10), scaleF(cy), scaleF(14), scaleF(2), accentColor, true)
}
