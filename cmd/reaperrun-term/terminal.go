package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/reaperrun/game"
)

type glyph struct {
	r     rune
	style tcell.Style
}

// glyphs is indexed by texture id.
var glyphs = []glyph{
	{'@', tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)},
	{'X', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	{'#', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
}

var fallbackGlyph = glyph{'?', tcell.StyleDefault}

type terminal struct {
	screen  tcell.Screen
	session *game.Session
	canvasW int32
	canvasH int32
}

// keyIntent maps a key event to an intent. Terminals report no key releases,
// so space stops the player instead.
func keyIntent(ev *tcell.EventKey) (intent game.InputIntent, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.NoIntent, true
	case tcell.KeyUp:
		return game.Move(game.Up), false
	case tcell.KeyDown:
		return game.Move(game.Down), false
	case tcell.KeyLeft:
		return game.Move(game.Left), false
	case tcell.KeyRight:
		return game.Move(game.Right), false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return game.NoIntent, true
		case ' ':
			return game.Stop(), false
		}
	}
	return game.NoIntent, false
}

// cellSpan maps the world interval [lo, hi) of a canvas of the given size onto
// n cells. Every non-empty interval covers at least one cell.
func cellSpan(lo, hi, canvas int32, n int) (int, int) {
	half := canvas / 2
	from := int(int64(lo+half) * int64(n) / int64(canvas))
	to := int(int64(hi+half) * int64(n) / int64(canvas))
	if to <= from {
		to = from + 1
	}
	return max(from, 0), min(to, n)
}

func (t *terminal) draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()

	for _, r := range t.session.Renderables() {
		g := fallbackGlyph
		if r.Sprite.TextureID >= 0 && r.Sprite.TextureID < len(glyphs) {
			g = glyphs[r.Sprite.TextureID]
		}
		x0, x1 := cellSpan(r.Box.Left(), r.Box.Right(), t.canvasW, cols)
		y0, y1 := cellSpan(r.Box.Top(), r.Box.Bottom(), t.canvasH, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				t.screen.SetContent(x, y, g.r, nil, g.style)
			}
		}
	}
	t.screen.Show()
}

// loop steps the session once per tick with the latest key intent until the
// game ends or the player quits.
func (t *terminal) loop(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	intent := game.NoIntent
	t.draw()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				next, stop := keyIntent(ev)
				if stop {
					return
				}
				if next != game.NoIntent {
					intent = next
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case <-ticker.C:
			status := t.session.Step(intent)
			intent = game.NoIntent
			t.draw()
			if status.Over() {
				return
			}
		}
	}
}
