package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors (shares buttonBg, accentColor, textPrimary etc. with panel.go)
var (
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	widgetHoverBg     = color.RGBA{65, 70, 78, 255}
	radioActive       = color.RGBA{76, 175, 120, 255}
	radioInactive     = color.RGBA{70, 75, 82, 255}
	inputTextColor    = color.RGBA{240, 240, 245, 255}
	inputPlaceholder  = color.RGBA{120, 125, 135, 255}
)

func fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), c, false)
}

func strokeRect(screen *ebiten.Image, x, y, w, h, width int, c color.Color) {
	vector.StrokeRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), scaleF(width), c, false)
}

// TextInput is an editable single-line text field.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	cursorBlink int
}

// NewTextInput creates a new text input widget.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{
		X: x, Y: y, W: w, H: h,
		Placeholder: placeholder,
		MaxLength:   maxLen,
	}
}

// Update handles typing. It returns true while the field has focus.
func (ti *TextInput) Update(input *InputHandler) bool {
	ti.hovered = input.IsInBounds(ti.X, ti.Y, ti.W, ti.H)
	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}

	ti.cursorBlink = (ti.cursorBlink + 1) % 60

	for _, c := range ebiten.AppendInputChars(nil) {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(c)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(ti.Value) > 0 {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.focused = false
	}
	return true
}

// IsFocused returns true if the field has keyboard focus.
func (ti *TextInput) IsFocused() bool {
	return ti.focused
}

// SetFocused sets the keyboard focus.
func (ti *TextInput) SetFocused(focused bool) {
	ti.focused = focused
}

// Draw renders the text input.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	bg := widgetBg
	if ti.hovered && !ti.focused {
		bg = color.RGBA{52, 56, 62, 255}
	}
	fillRect(screen, ti.X, ti.Y, ti.W, ti.H, bg)

	border := widgetBorder
	if ti.focused {
		border = widgetFocusBorder
	} else if ti.hovered {
		border = accentColor
	}
	strokeRect(screen, ti.X, ti.Y, ti.W, ti.H, 2, border)

	face := GetRegularFace()
	if face == nil {
		return
	}
	textX := ti.X + 10
	label, c := ti.Value, color.Color(inputTextColor)
	if label == "" {
		label, c = ti.Placeholder, inputPlaceholder
	}
	_, h := MeasureText(label, face)
	drawText(screen, label, textX, ti.Y+ti.H/2-int(h)/2, c, face)

	if ti.focused && ti.cursorBlink < 30 {
		cursorX := textX
		if ti.Value != "" {
			w, _ := MeasureText(ti.Value, face)
			cursorX += int(w) + 2
		}
		fillRect(screen, cursorX, ti.Y+8, 2, ti.H-16, inputTextColor)
	}
}

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label string
	Value int
}

// RadioGroup is a group of mutually exclusive radio buttons.
type RadioGroup struct {
	X, Y     int
	Options  []RadioOption
	Selected int
	ItemH    int
	hovered  int
}

// NewRadioGroup creates a new radio group.
func NewRadioGroup(x, y int, options []RadioOption, selected int) *RadioGroup {
	return &RadioGroup{
		X:        x,
		Y:        y,
		Options:  options,
		Selected: selected,
		ItemH:    30,
		hovered:  -1,
	}
}

// Value returns the value of the selected option.
func (rg *RadioGroup) Value() int {
	return rg.Options[rg.Selected].Value
}

// Select selects the option holding value, if there is one.
func (rg *RadioGroup) Select(value int) {
	for i, opt := range rg.Options {
		if opt.Value == value {
			rg.Selected = i
			return
		}
	}
}

// Update handles radio group input.
func (rg *RadioGroup) Update(input *InputHandler) bool {
	rg.hovered = -1
	for i := range rg.Options {
		if input.IsInBounds(rg.X, rg.Y+i*rg.ItemH, 200, rg.ItemH) {
			rg.hovered = i
			if input.IsLeftJustPressed() {
				rg.Selected = i
				return true
			}
		}
	}
	return false
}

// Draw renders the radio group.
func (rg *RadioGroup) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	for i, opt := range rg.Options {
		itemY := rg.Y + i*rg.ItemH
		selected := i == rg.Selected
		hovered := i == rg.hovered

		if hovered && !selected {
			fillRect(screen, rg.X-4, itemY, 200, rg.ItemH, color.RGBA{55, 60, 68, 255})
		}

		cx, cy := scaleF(rg.X+10), scaleF(itemY+rg.ItemH/2)
		circle := radioInactive
		if selected {
			circle = radioActive
		} else if hovered {
			circle = accentColor
		}
		vector.DrawFilledCircle(screen, cx, cy, scaleF(8), circle, true)
		if selected {
			vector.DrawFilledCircle(screen, cx, cy, scaleF(4), inputTextColor, true)
		}

		textColor := textSecondary
		if selected {
			textColor = textPrimary
		} else if hovered {
			textColor = inputTextColor
		}
		_, h := MeasureText(opt.Label, face)
		drawText(screen, opt.Label, rg.X+30, itemY+rg.ItemH/2-int(h)/2, textColor, face)
	}
}

// Checkbox is a toggleable checkbox widget.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

// Update handles checkbox input.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 200, 24)
	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	const box = 20
	bg := widgetBg
	if cb.hovered {
		bg = widgetHoverBg
	}
	fillRect(screen, cb.X, cb.Y, box, box, bg)

	border := widgetBorder
	if cb.hovered || cb.Checked {
		border = accentColor
	}
	strokeRect(screen, cb.X, cb.Y, box, box, 2, border)

	if cb.Checked {
		x, y := float32(cb.X), float32(cb.Y)
		s := float32(UIScale)
		vector.StrokeLine(screen, (x+4)*s, (y+10)*s, (x+8)*s, (y+14)*s, 2*s, accentColor, true)
		vector.StrokeLine(screen, (x+8)*s, (y+14)*s, (x+16)*s, (y+6)*s, 2*s, accentColor, true)
	}

	face := GetRegularFace()
	textColor := textSecondary
	if cb.Checked {
		textColor = textPrimary
	}
	_, h := MeasureText(cb.Label, face)
	drawText(screen, cb.Label, cb.X+30, cb.Y+box/2-int(h)/2, textColor, face)
}

// ModalButton is a button for modal dialogs.
type ModalButton struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	OnClick    func()
	hovered    bool
	pressed    bool
}

// NewModalButton creates a new modal button.
func NewModalButton(x, y, w, h int, label string, primary bool, onClick func()) *ModalButton {
	return &ModalButton{
		X: x, Y: y, W: w, H: h,
		Label:   label,
		Primary: primary,
		OnClick: onClick,
	}
}

// IsHovered returns true if the button is hovered.
func (mb *ModalButton) IsHovered() bool {
	return mb.hovered
}

// Update handles modal button input.
func (mb *ModalButton) Update(input *InputHandler) bool {
	mb.hovered = input.IsInBounds(mb.X, mb.Y, mb.W, mb.H)
	mb.pressed = input.IsLeftPressed() && mb.hovered
	if input.IsLeftJustPressed() && mb.hovered && mb.OnClick != nil {
		mb.OnClick()
		return true
	}
	return false
}

// Draw renders the modal button.
func (mb *ModalButton) Draw(screen *ebiten.Image) {
	var bg, border color.RGBA
	if mb.Primary {
		bg, border = accentColor, accentPressed
		if mb.pressed {
			bg = accentPressed
		} else if mb.hovered {
			bg, border = accentHover, color.RGBA{116, 215, 160, 255}
		}
	} else {
		bg, border = buttonBg, widgetBorder
		if mb.pressed {
			bg = buttonPressedBg
		} else if mb.hovered {
			bg, border = buttonHoverBg, accentColor
		}
	}
	fillRect(screen, mb.X, mb.Y, mb.W, mb.H, bg)
	strokeRect(screen, mb.X, mb.Y, mb.W, mb.H, 1, border)
	drawTextCentered(screen, mb.Label, mb.X+mb.W/2, mb.Y+mb.H/2, textPrimary, GetRegularFace())
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int) {
	fillRect(screen, x, y, w, 1, dividerColor)
}
