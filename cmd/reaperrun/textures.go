package main

import (
	"image"
	"image/color"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/plus3/reaperrun/game"
)

// placeholderSize covers every region of the stock sheets.
const placeholderSize = 512

var placeholderColors = []color.RGBA{
	{130, 179, 207, 255},
	{90, 40, 60, 255},
	{230, 150, 190, 255},
}

// loadTextures loads the textures in id order. A file that cannot be read is
// replaced by a flat placeholder so the game still runs without art.
func loadTextures(paths []string, logger *zap.Logger) []*ebiten.Image {
	textures := make([]*ebiten.Image, len(paths))
	for i, path := range paths {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			logger.Warn("texture missing, using placeholder", zap.String("path", path), zap.Error(err))
			img = ebiten.NewImage(placeholderSize, placeholderSize)
			img.Fill(placeholderColors[i%len(placeholderColors)])
		}
		textures[i] = img
	}
	return textures
}

func imageRect(r game.Rect) image.Rectangle {
	return image.Rect(int(r.Left()), int(r.Top()), int(r.Right()), int(r.Bottom()))
}
