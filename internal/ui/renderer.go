package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gothello/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	Wood        color.RGBA
	WoodEdge    color.RGBA
	GridLine    color.RGBA
	LegalDot    color.RGBA
	LastMove    color.RGBA
	HintColor   color.RGBA
	Background  color.RGBA
	CoordColor  color.RGBA
	GhostAlpha  float32
	StoneMargin int
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Wood:        color.RGBA{220, 179, 92, 255},
		WoodEdge:    color.RGBA{186, 145, 66, 255},
		GridLine:    color.RGBA{60, 42, 20, 255},
		LegalDot:    color.RGBA{70, 110, 60, 170},
		LastMove:    color.RGBA{220, 60, 60, 255},
		HintColor:   color.RGBA{76, 175, 120, 230},
		Background:  color.RGBA{40, 44, 52, 255},
		CoordColor:  color.RGBA{90, 64, 30, 255},
		GhostAlpha:  0.45,
		StoneMargin: 8,
	}
}

// Renderer draws the board, the stones and the overlays on top of them.
type Renderer struct {
	sprites   *SpriteManager
	theme     *Theme
	boardSize int
	pointSize int
	scale     float64
}

// NewRenderer creates a renderer for a board of boardSize logical pixels
// split into cells of pointSize.
func NewRenderer(boardSize, pointSize int) *Renderer {
	return &Renderer{
		sprites:   NewSpriteManager(pointSize - 2*DefaultTheme().StoneMargin),
		theme:     DefaultTheme(),
		boardSize: boardSize,
		pointSize: pointSize,
		scale:     1.0,
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the wooden board, the grid and the coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, r.s(r.boardSize), r.s(r.boardSize), r.theme.Wood, false)
	vector.StrokeRect(screen, 0, 0, r.s(r.boardSize), r.s(r.boardSize), r.s(4), r.theme.WoodEdge, false)

	half := r.pointSize / 2
	first, last := half, r.boardSize-half
	for i := 0; i < board.Size; i++ {
		p := half + i*r.pointSize
		vector.StrokeLine(screen, r.s(first), r.s(p), r.s(last), r.s(p), r.s(2), r.theme.GridLine, true)
		vector.StrokeLine(screen, r.s(p), r.s(first), r.s(p), r.s(last), r.s(2), r.theme.GridLine, true)
	}

	// Center point
	c := r.boardSize / 2
	vector.DrawFilledCircle(screen, r.s(c), r.s(c), r.s(6), r.theme.GridLine, true)

	r.drawCoordinates(screen)
}

// drawCoordinates labels columns a-e along the bottom edge and rows 1-5
// along the left edge.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(coordFontSize)
	half := r.pointSize / 2
	for i := 0; i < board.Size; i++ {
		p := half + i*r.pointSize
		drawTextCentered(screen, string(rune('a'+i)), p, r.boardSize-12, r.theme.CoordColor, face)
		drawTextCentered(screen, string(rune('1'+i)), 12, r.boardSize-p, r.theme.CoordColor, face)
	}
}

// DrawStones draws every stone on the board.
func (r *Renderer) DrawStones(screen *ebiten.Image, b *board.Board) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if c := b.At(row, col); c != board.Empty {
				r.drawStone(screen, board.NewMove(row, col), c, 1)
			}
		}
	}
}

// DrawGhost draws a translucent stone, used for the hover preview and for
// stones that were just captured.
func (r *Renderer) DrawGhost(screen *ebiten.Image, m board.Move, c board.Color, alpha float32) {
	if !m.IsPlacement() {
		return
	}
	r.drawStone(screen, m, c, alpha*r.theme.GhostAlpha)
}

func (r *Renderer) drawStone(screen *ebiten.Image, m board.Move, c board.Color, alpha float32) {
	x, y := r.PointToScreen(m)
	margin := r.theme.StoneMargin
	r.sprites.DrawStoneAt(screen, c, x+margin, y+margin, alpha)
}

// DrawLastMove marks the stone placed by the last move.
func (r *Renderer) DrawLastMove(screen *ebiten.Image, m board.Move) {
	if !m.IsPlacement() {
		return
	}
	cx, cy := r.PointCenter(m)
	vector.DrawFilledCircle(screen, r.s(cx), r.s(cy), r.s(7), r.theme.LastMove, true)
}

// DrawLegalMoves puts a dot on every point the side to move may play.
func (r *Renderer) DrawLegalMoves(screen *ebiten.Image, moves []board.Move) {
	for _, m := range moves {
		if !m.IsPlacement() {
			continue
		}
		cx, cy := r.PointCenter(m)
		vector.DrawFilledCircle(screen, r.s(cx), r.s(cy), r.s(r.pointSize)*0.08, r.theme.LegalDot, true)
	}
}

// DrawHint rings the suggested point.
func (r *Renderer) DrawHint(screen *ebiten.Image, m board.Move) {
	if !m.IsPlacement() {
		return
	}
	cx, cy := r.PointCenter(m)
	radius := r.s(r.pointSize/2 - r.theme.StoneMargin/2)
	vector.StrokeCircle(screen, r.s(cx), r.s(cy), radius, r.s(4), r.theme.HintColor, true)
}

// HighlightPoint fills the cell around a point, used by flash animations.
func (r *Renderer) HighlightPoint(screen *ebiten.Image, m board.Move, c color.RGBA) {
	if !m.IsPlacement() {
		return
	}
	x, y := r.PointToScreen(m)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.pointSize), r.s(r.pointSize), c, false)
}

// PointToScreen returns the logical top-left corner of the cell holding m.
// Row 5 is drawn at the top.
func (r *Renderer) PointToScreen(m board.Move) (int, int) {
	x := m.Col() * r.pointSize
	y := (board.Size - 1 - m.Row()) * r.pointSize
	return x, y
}

// PointCenter returns the logical center of the point m.
func (r *Renderer) PointCenter(m board.Move) (int, int) {
	x, y := r.PointToScreen(m)
	return x + r.pointSize/2, y + r.pointSize/2
}

// ScreenToPoint converts logical coordinates to the point under them.
func (r *Renderer) ScreenToPoint(x, y int) (board.Move, bool) {
	if x < 0 || y < 0 || x >= r.boardSize || y >= r.boardSize {
		return board.NoMove, false
	}
	col := x / r.pointSize
	row := board.Size - 1 - y/r.pointSize
	return board.NewMove(row, col), true
}
