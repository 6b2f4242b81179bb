package ui

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	coordFontSize   = 12.0
)

func init() {
	initFonts()
}

func initFonts() {
	var err error
	regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Error().Err(err).Msg("load-regular-font")
		return
	}
	boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Error().Err(err).Msg("load-bold-font")
	}
}

// GetRegularFace returns the regular face at the current UI scale.
func GetRegularFace() *text.GoTextFace {
	return GetFaceWithSize(defaultFontSize)
}

// GetBoldFace returns the bold face at the current UI scale.
func GetBoldFace() *text.GoTextFace {
	if boldSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: boldSource, Size: titleFontSize * UIScale}
}

// GetFaceWithSize returns a regular face of the given logical size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size * UIScale}
}

// MeasureText returns the logical width and height of s.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	w, h := text.Measure(s, face, 0)
	return w / UIScale, h / UIScale
}

// drawText draws s with its top-left corner at logical (x, y).
func drawText(screen *ebiten.Image, s string, x, y int, c color.Color, face *text.GoTextFace) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(x), scaleD(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextCentered draws s centered on logical (cx, cy).
func drawTextCentered(screen *ebiten.Image, s string, cx, cy int, c color.Color, face *text.GoTextFace) {
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(cx)-w*UIScale/2, scaleD(cy)-h*UIScale/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
