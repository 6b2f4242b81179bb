package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/engine"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 26
	ButtonHeight    = 40
	TabHeight       = 32
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	StatusBarH      = 70
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	sectionBg       = color.RGBA{48, 52, 58, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Enabled    func() bool
	hovered    bool
	pressed    bool
}

func (b *Button) enabled() bool {
	return b.Enabled == nil || b.Enabled()
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with the controls, the score and the move list.
type Panel struct {
	game      *Game
	collapsed bool

	collapseBtn *Button
	newGameBtn  *Button
	passBtn     *Button
	settingsBtn *Button
	colorTabs   []*Button // [0] = Black, [1] = White
	diffTabs    []*Button // [0] = Easy, [1] = Medium, [2] = Hard

	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

func (p *Panel) createButtons() {
	tabY := (ScreenHeight - CollapseButtonH) / 2
	collapseX := BoardSize
	if p.collapsed {
		collapseX = BoardSize + 2
	}
	p.collapseBtn = &Button{
		X: collapseX, Y: tabY,
		W: CollapseButtonW, H: CollapseButtonH,
		OnClick: p.toggleCollapse,
	}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY, W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	rowY := newGameY + ButtonHeight + 8
	half := (contentW - 8) / 2
	p.passBtn = &Button{
		X: contentX, Y: rowY, W: half, H: ButtonHeight - 6,
		Label:   "Pass",
		OnClick: p.game.PassAction,
		Enabled: p.game.CanPass,
	}
	p.settingsBtn = &Button{
		X: contentX + half + 8, Y: rowY, W: half, H: ButtonHeight - 6,
		Label:   "Settings",
		OnClick: p.game.ShowSettings,
	}

	colorTabY := rowY + ButtonHeight - 6 + SectionSpacing + SectionLabelH - 8
	tabW := contentW / 2
	p.colorTabs = []*Button{
		{X: contentX, Y: colorTabY, W: tabW, H: TabHeight, Label: "Black",
			OnClick: func() { p.game.SetPlayerColor(board.Black) }},
		{X: contentX + tabW, Y: colorTabY, W: tabW, H: TabHeight, Label: "White",
			OnClick: func() { p.game.SetPlayerColor(board.White) }},
	}

	diffTabY := colorTabY + TabHeight + SectionSpacing + SectionLabelH - 8
	diffW := contentW / 3
	p.diffTabs = []*Button{
		{X: contentX, Y: diffTabY, W: diffW, H: TabHeight, Label: "Easy",
			OnClick: func() { p.game.SetDifficulty(engine.Easy) }},
		{X: contentX + diffW, Y: diffTabY, W: diffW, H: TabHeight, Label: "Medium",
			OnClick: func() { p.game.SetDifficulty(engine.Medium) }},
		{X: contentX + diffW*2, Y: diffTabY, W: diffW, H: TabHeight, Label: "Hard",
			OnClick: func() { p.game.SetDifficulty(engine.Hard) }},
	}
}

func (p *Panel) buttons() []*Button {
	btns := []*Button{p.newGameBtn, p.passBtn, p.settingsBtn}
	btns = append(btns, p.colorTabs...)
	return append(btns, p.diffTabs...)
}

// HandleInput processes input for the panel. It returns true if the panel
// consumed the click.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	p.collapseBtn.hovered = p.collapseBtn.contains(mx, my)
	if input.IsLeftJustPressed() && p.collapseBtn.hovered {
		p.collapseBtn.OnClick()
		return true
	}
	if p.collapsed {
		return false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardSize && my >= p.historyStartY() {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(wheelY*30)))
	}

	clicked := false
	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my) && btn.enabled()
		btn.pressed = input.IsLeftPressed() && btn.hovered
		if input.IsLeftJustPressed() && btn.hovered && !clicked {
			btn.OnClick()
			clicked = true
		}
	}
	return clicked
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.collapsed {
		fillRect(screen, BoardSize, 0, CollapsedWidth, ScreenHeight, panelBg)
		p.drawCollapseButton(screen, true)
		return
	}

	fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg)
	p.drawCollapseButton(screen, false)

	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawSecondaryButton(screen, p.passBtn)
	p.drawSecondaryButton(screen, p.settingsBtn)

	contentX := BoardSize + PanelPadding
	drawLabel(screen, "Play As", contentX, p.colorTabs[0].Y-SectionLabelH)
	p.drawTabs(screen, p.colorTabs, func(i int) bool {
		return (i == 0) == (p.game.PlayerColor() == board.Black)
	})

	drawLabel(screen, "Difficulty", contentX, p.diffTabs[0].Y-SectionLabelH)
	p.drawTabs(screen, p.diffTabs, func(i int) bool {
		return engine.Difficulty(i) == p.game.Difficulty()
	})

	scoreY := p.diffTabs[0].Y + TabHeight + SectionSpacing - 8
	p.drawScore(screen, scoreY)

	historyY := p.historyStartY()
	drawLabel(screen, "Moves", contentX, historyY)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) historyStartY() int {
	return p.diffTabs[0].Y + TabHeight + SectionSpacing + 30
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn
	bg := panelBg
	if btn.hovered {
		bg = sectionBg
	}
	fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg)

	arrow := "‹"
	if expand {
		arrow = "›"
	}
	c := textMuted
	if btn.hovered {
		c = textPrimary
	}
	drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, c, GetRegularFace())
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bg, border := accentColor, accentPressed
	if btn.pressed {
		bg = accentPressed
	} else if btn.hovered {
		bg, border = accentHover, color.RGBA{116, 215, 160, 255}
	}
	fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg)
	strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, 1, border)
	drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary, GetRegularFace())
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bg, border, label := buttonBg, buttonBorder, textSecondary
	switch {
	case !btn.enabled():
		label = textMuted
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered:
		bg, border = buttonHoverBg, accentColor
	}
	fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg)
	strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, 1, border)
	drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, label, GetRegularFace())
}

func (p *Panel) drawTabs(screen *ebiten.Image, tabs []*Button, active func(int) bool) {
	for i, btn := range tabs {
		isActive := active(i)
		bg, border, label := tabInactiveBg, buttonBorder, textSecondary
		switch {
		case isActive:
			bg, border, label = tabActiveBg, tabActiveBg, textPrimary
		case btn.pressed:
			bg = buttonPressedBg
		case btn.hovered:
			bg, border = tabHoverBg, accentColor
		}
		fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg)
		strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, 1, border)
		drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, label, GetRegularFace())
	}
}

// drawScore shows the stone count of each side.
func (p *Panel) drawScore(screen *ebiten.Image, y int) {
	b := p.game.Board()
	x := BoardSize + PanelPadding
	face := GetBoldFace()
	for i, c := range []board.Color{board.Black, board.White} {
		cx := x + 10 + i*110
		fill := panelBg
		if c == board.White {
			fill = textPrimary
		}
		vector.DrawFilledCircle(screen, scaleF(cx), scaleF(y+10), scaleF(9), fill, true)
		vector.StrokeCircle(screen, scaleF(cx), scaleF(y+10), scaleF(9), scaleF(1), textMuted, true)
		drawText(screen, fmt.Sprintf("%d", b.Count(c)), cx+18, y+1, textPrimary, face)
	}
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.MoveHistory()
	face := GetRegularFace()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		drawText(screen, "No moves yet", x, startY+5, textMuted, face)
		return
	}

	const rowHeight = 22
	maxY := ScreenHeight - StatusBarH
	visibleHeight := maxY - startY

	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = max(0, contentHeight-visibleHeight)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / rowHeight
	y := startY - p.scrollY%rowHeight

	for row := startRow; row < totalRows; row++ {
		if y > maxY-rowHeight {
			break
		}
		if y >= startY {
			if row%2 == 1 {
				fillRect(screen, x-4, y-2, PanelWidth-PanelPadding*2+8, rowHeight, moveRowAlt)
			}
			i := row * 2
			drawText(screen, fmt.Sprintf("%d.", row+1), x, y, textMuted, face)
			drawText(screen, moves[i], x+36, y, textPrimary, face)
			if i+1 < len(moves) {
				drawText(screen, moves[i+1], x+110, y, textPrimary, face)
			}
		}
		y += rowHeight
	}

	if p.maxScrollY > 0 {
		pct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := max(20, float32(visibleHeight)*float32(visibleHeight)/float32(contentHeight))
		indicatorY := float32(startY) + pct*(float32(visibleHeight)-indicatorH)
		s := float32(UIScale)
		vector.DrawFilledRect(screen, float32(BoardSize+PanelWidth-8)*s, indicatorY*s, 4*s, indicatorH*s, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - StatusBarH
	x := BoardSize + PanelPadding
	face := GetRegularFace()

	DrawDivider(screen, x, statusY-10, PanelWidth-PanelPadding*2)

	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	drawText(screen, username, x, statusY, textPrimary, face)

	if st := p.game.Stats(); st != nil {
		record := fmt.Sprintf("%d-%d-%d", st.Wins, st.Losses, st.Draws)
		drawText(screen, record, x+130, statusY, textSecondary, face)
	}

	var status string
	var c color.RGBA
	switch {
	case p.game.GameOver():
		status, c = p.game.GameResult(), statusGameOver
	case p.game.IsAIThinking():
		status, c = "Engine thinking...", statusThinking
	default:
		status, c = displayColor(p.game.Board().SideToMove)+" to move", textPrimary
	}
	drawText(screen, status, x, statusY+22, c, face)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel and resizes the window to match.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()
	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
