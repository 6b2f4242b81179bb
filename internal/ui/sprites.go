// Package ui implements the Gothello desktop board using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/gothello/internal/board"
)

//go:embed assets/stones/*.svg
var stoneAssets embed.FS

// stoneFiles maps stone colors to their asset file paths.
var stoneFiles = map[board.Color]string{
	board.Black: "assets/stones/black.svg",
	board.White: "assets/stones/white.svg",
}

// SpriteManager holds the stone sprites, rasterized once at a higher
// resolution than they are drawn.
type SpriteManager struct {
	stones      map[board.Color]*ebiten.Image
	size        int     // Logical display size
	renderScale float64 // Raster resolution relative to size
	scale       float64 // HiDPI scale factor
}

// NewSpriteManager creates a sprite manager for stones of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		stones:      make(map[board.Color]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	sm.loadStones()
	return sm
}

// SetScale sets the HiDPI scale factor used when drawing.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// Stone returns the sprite for a color, or nil for Empty.
func (sm *SpriteManager) Stone(c board.Color) *ebiten.Image {
	return sm.stones[c]
}

func (sm *SpriteManager) loadStones() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for c, path := range stoneFiles {
		data, err := stoneAssets.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("read-stone-asset")
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("parse-stone-svg")
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.stones[c] = ebiten.NewImageFromImage(rgba)
	}
	log.Debug().Int("size", sm.size).Int("sprites", len(sm.stones)).Msg("stones-loaded")
}

// DrawStoneAt draws a stone with its top-left corner at logical (x, y).
// alpha fades the stone; 1 is opaque.
func (sm *SpriteManager) DrawStoneAt(screen *ebiten.Image, c board.Color, x, y int, alpha float32) {
	sprite := sm.Stone(c)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := sm.scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(x)*sm.scale, float64(y)*sm.scale)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the logical size of a stone sprite.
func (sm *SpriteManager) Size() int {
	return sm.size
}
