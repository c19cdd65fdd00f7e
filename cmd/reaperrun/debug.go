package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/reaperrun/config"
	"github.com/plus3/reaperrun/ecs/debugui"
	debugui_ebiten "github.com/plus3/reaperrun/ecs/debugui/ebiten"
	"github.com/plus3/reaperrun/game"
)

var boxOutline = color.RGBA{255, 255, 0, 255}

type debugOverlay struct {
	backend *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
}

func newDebugOverlay(cfg *config.Config, session *game.Session) *debugOverlay {
	width := int(float64(cfg.Window.Width) * cfg.Window.Scale)
	height := int(float64(cfg.Window.Height) * cfg.Window.Scale)

	d := &debugOverlay{
		backend: debugui_ebiten.NewImguiBackend(cfg.Window.Title, width, height),
		overlay: debugui.NewOverlay(),
	}
	stats := debugui.NewPerformanceStats(120, session.Storage(), session.Scheduler())
	d.overlay.Add(stats.Render)
	d.overlay.Add(func() { renderSessionPanel(session) })
	return d
}

func (d *debugOverlay) update(dt time.Duration) {
	d.backend.BeginFrame()
	d.overlay.Update(dt)
	d.backend.EndFrame()
}

func (d *debugOverlay) wantsKeyboard() bool {
	return d.overlay.InputState().WantCaptureKeyboard
}

// draw outlines every bounding box, then draws the ImGui windows on top.
func (d *debugOverlay) draw(screen *ebiten.Image, session *game.Session, width, height int32) {
	for _, r := range session.Renderables() {
		box := r.Box.Translate(width/2, height/2)
		vector.StrokeRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 1, boxOutline, false)
	}
	d.backend.Draw(screen)
}

func renderSessionPanel(session *game.Session) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if imgui.BeginV("Session", nil, 0) {
		imgui.Text(fmt.Sprintf("Run: %s", session.RunID))
		imgui.Text(fmt.Sprintf("Seed: %d", session.Seed))
		imgui.Text(fmt.Sprintf("Status: %s", session.Status()))
		imgui.Text(fmt.Sprintf("Frame: %d", session.Frames()))
		imgui.Text(fmt.Sprintf("Enemies: %d", len(session.Population.Enemies)))
	}
	imgui.End()
}
