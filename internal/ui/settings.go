package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/gothello/internal/storage"
)

// Settings modal dimensions
const (
	SettingsWidth  = 360
	SettingsHeight = 400
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// Modal colors
var (
	modalOverlay = color.RGBA{0, 0, 0, 180}
	modalBg      = color.RGBA{38, 40, 45, 255}
	modalHeader  = color.RGBA{48, 52, 58, 255}
	modalBorder  = color.RGBA{58, 62, 68, 255}
)

// drawModalFrame dims the screen and draws an empty dialog with a title bar.
func drawModalFrame(screen *ebiten.Image, x, y, w, h int, title string) {
	fillRect(screen, 0, 0, ScreenWidth, ScreenHeight, modalOverlay)
	fillRect(screen, x, y, w, h, modalBg)
	strokeRect(screen, x, y, w, h, 2, modalBorder)
	fillRect(screen, x, y, w, 44, modalHeader)
	drawTextCentered(screen, title, x+w/2, y+22, textPrimary, GetBoldFace())
}

func drawLabel(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, label, x, y, textMuted, GetRegularFace())
}

// SettingsModal edits the player preferences.
type SettingsModal struct {
	visible bool
	x, y    int

	usernameInput *TextInput
	colorRadio    *RadioGroup
	hintsCheckbox *Checkbox
	soundCheckbox *Checkbox
	saveBtn       *ModalButton
	cancelBtn     *ModalButton

	prefs  storage.UserPreferences
	onSave func(*storage.UserPreferences)
}

// NewSettingsModal creates a new settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		x: (ScreenWidth - SettingsWidth) / 2,
		y: (ScreenHeight - SettingsHeight) / 2,
	}
	sm.createWidgets()
	return sm
}

func (sm *SettingsModal) createWidgets() {
	contentX := sm.x + SettingsPadX
	contentW := SettingsWidth - SettingsPadX*2

	inputY := sm.y + 76
	sm.usernameInput = NewTextInput(contentX, inputY, contentW, 36, "Enter your name", 20)

	radioY := inputY + 36 + 34
	sm.colorRadio = NewRadioGroup(contentX, radioY, []RadioOption{
		{Label: "Black (moves first)", Value: int(storage.ColorBlack)},
		{Label: "White", Value: int(storage.ColorWhite)},
	}, 0)

	checkY := radioY + 2*30 + 34
	sm.hintsCheckbox = NewCheckbox(contentX, checkY, "Show hints on Easy", true)
	sm.soundCheckbox = NewCheckbox(contentX, checkY+32, "Sound effects", true)

	btnW, btnH, gap := 100, 38, 12
	btnY := sm.y + SettingsHeight - SettingsPadY - btnH
	sm.cancelBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW*2-gap, btnY, btnW, btnH, "Cancel", false, sm.Hide)
	sm.saveBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW, btnY, btnW, btnH, "Save", true, sm.handleSave)
}

// Show opens the modal on a copy of prefs. onSave receives the edited copy.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences)) {
	sm.visible = true
	sm.prefs = *prefs
	sm.onSave = onSave

	sm.usernameInput.Value = prefs.Username
	sm.colorRadio.Select(int(prefs.PlayerColor))
	sm.hintsCheckbox.Checked = prefs.ShowHints
	sm.soundCheckbox.Checked = prefs.SoundEnabled
}

// Hide closes the modal without saving.
func (sm *SettingsModal) Hide() {
	sm.visible = false
	sm.usernameInput.SetFocused(false)
}

// IsVisible returns true if the modal is visible.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

func (sm *SettingsModal) handleSave() {
	prefs := sm.prefs
	prefs.Username = sm.usernameInput.Value
	if prefs.Username == "" {
		prefs.Username = "Player"
	}
	prefs.PlayerColor = storage.PlayerColor(sm.colorRadio.Value())
	prefs.ShowHints = sm.hintsCheckbox.Checked
	prefs.SoundEnabled = sm.soundCheckbox.Checked

	if sm.onSave != nil {
		sm.onSave(&prefs)
	}
	sm.Hide()
}

// Update handles input while the modal is open. It consumes all input.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEscape) && !sm.usernameInput.IsFocused() {
		sm.Hide()
		return true
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		sm.handleSave()
		return true
	}

	sm.usernameInput.Update(input)
	sm.colorRadio.Update(input)
	sm.hintsCheckbox.Update(input)
	sm.soundCheckbox.Update(input)
	sm.saveBtn.Update(input)
	sm.cancelBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if any control in the modal is hovered.
func (sm *SettingsModal) AnyButtonHovered() bool {
	if !sm.visible {
		return false
	}
	return sm.saveBtn.IsHovered() || sm.cancelBtn.IsHovered() ||
		sm.colorRadio.hovered >= 0 || sm.hintsCheckbox.hovered || sm.soundCheckbox.hovered
}

// Draw renders the settings modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, sm.x, sm.y, SettingsWidth, SettingsHeight, "Settings")

	contentX := sm.x + SettingsPadX
	drawLabel(screen, "Player Name", contentX, sm.usernameInput.Y-24)
	drawLabel(screen, "Play As", contentX, sm.colorRadio.Y-24)
	drawLabel(screen, "Options", contentX, sm.hintsCheckbox.Y-28)

	sm.usernameInput.Draw(screen)
	sm.colorRadio.Draw(screen)
	sm.hintsCheckbox.Draw(screen)
	sm.soundCheckbox.Draw(screen)
	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}
