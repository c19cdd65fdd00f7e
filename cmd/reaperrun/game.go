package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/reaperrun/game"
)

var background = color.RGBA{128, 128, 128, 255}

// Game adapts a session to ebiten's update and draw callbacks.
type Game struct {
	session  *game.Session
	logger   *zap.Logger
	textures []*ebiten.Image
	width    int32
	height   int32
	debug    *debugOverlay
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.update(g.session.Settings().FrameDuration)
	}

	intent, quit := readKeys()
	if quit {
		g.logger.Info("player quit", zap.Stringer("run_id", g.session.RunID))
		return ebiten.Termination
	}
	if g.debug != nil && g.debug.wantsKeyboard() {
		intent = game.NoIntent
	}

	if g.session.Step(intent).Over() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, r := range g.session.Renderables() {
		if r.Sprite.TextureID < 0 || r.Sprite.TextureID >= len(g.textures) {
			continue
		}
		src := g.textures[r.Sprite.TextureID].SubImage(imageRect(r.Sprite.Region)).(*ebiten.Image)
		dst := r.ScreenRect(g.width, g.height)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(dst.Left()), float64(dst.Top()))
		screen.DrawImage(src, op)
	}

	if g.debug != nil {
		g.debug.draw(screen, g.session, g.width, g.height)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.backend.Layout(outsideWidth, outsideHeight)
	}
	return int(g.width), int(g.height)
}
