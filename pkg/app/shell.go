package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/luoxia/jianghu/pkg/engine"
	"github.com/luoxia/jianghu/pkg/game"
)

const (
	screenWidth  = 640
	screenHeight = 480

	dialogBoxHeight = 96
)

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// shell is the Ebitengine game that renders the Gui state and feeds
// player input back into the scheduler.
type shell struct {
	world    *game.World
	sched    *engine.Scheduler
	deadline time.Time
}

func newShell(world *game.World, sched *engine.Scheduler, deadline time.Time) *shell {
	return &shell{world: world, sched: sched, deadline: deadline}
}

func (s *shell) Update() error {
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return ebiten.Termination
	}

	s.handleInput()
	s.world.Update(tickMs)
	s.sched.Update(tickMs)
	return nil
}

func (s *shell) handleInput() {
	gui := s.world.Gui
	if !gui.InputEnabled() {
		return
	}

	if gui.SelectionOpen {
		for i := 0; i < len(gui.SelectionOptions) && i < 9; i++ {
			if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
				gui.CloseSelection()
				s.sched.OnSelectionMade(i)
				return
			}
		}
		return
	}

	if gui.DialogOpen {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			gui.CloseDialog()
			s.sched.OnDialogClosed()
		}
		return
	}

	if s.world.Buy.SessionOpen() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.world.Buy.Close()
	}
}

func (s *shell) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 20, 16, 255})

	gui := s.world.Gui

	if gui.TitleText != "" {
		drawText(screen, gui.TitleText, screenWidth/2-len(gui.TitleText)*7/2, 60, color.White)
	}
	if gui.TipText != "" {
		drawText(screen, gui.TipText, 16, 24, color.RGBA{255, 230, 150, 255})
	}
	if w := s.world.Weather.Current(); w != "" {
		drawText(screen, "weather: "+w, screenWidth-140, 24, color.RGBA{150, 180, 255, 255})
	}
	if s.world.Timers.WindowShown() {
		left := s.world.Timers.LimitLeftMs() / 1000
		drawText(screen, fmt.Sprintf("time left: %ds", left), screenWidth-140, 44, color.White)
	}

	if gui.DialogOpen || gui.DialogText != "" {
		s.drawDialogBox(screen)
	}
	if gui.SelectionOpen {
		s.drawSelectionBox(screen)
	}
	if s.world.Buy.SessionOpen() {
		s.drawShop(screen)
	}
}

func (s *shell) drawDialogBox(screen *ebiten.Image) {
	gui := s.world.Gui
	top := float32(screenHeight - dialogBoxHeight)
	vector.DrawFilledRect(screen, 0, top, screenWidth, dialogBoxHeight, color.RGBA{0, 0, 0, 200}, false)

	y := screenHeight - dialogBoxHeight + 24
	if gui.DialogSpeaker != "" {
		drawText(screen, gui.DialogSpeaker+":", 16, y, color.RGBA{255, 200, 120, 255})
		y += 18
	}
	drawText(screen, gui.DialogText, 16, y, color.White)
	if gui.FaceName != "" {
		drawText(screen, "["+gui.FaceName+"]", screenWidth-120, y, color.RGBA{180, 180, 180, 255})
	}
	if gui.DialogOpen {
		drawText(screen, "(enter)", screenWidth-72, screenHeight-12, color.RGBA{120, 120, 120, 255})
	}
}

func (s *shell) drawSelectionBox(screen *ebiten.Image) {
	gui := s.world.Gui
	boxH := float32(len(gui.SelectionOptions)*18 + 24)
	top := float32(screenHeight-dialogBoxHeight) - boxH - 8
	vector.DrawFilledRect(screen, 24, top, screenWidth-48, boxH, color.RGBA{0, 0, 0, 220}, false)

	for i, opt := range gui.SelectionOptions {
		drawText(screen, fmt.Sprintf("%d. %s", i+1, opt), 40, int(top)+24+i*18, color.White)
	}
}

func (s *shell) drawShop(screen *ebiten.Image) {
	label := "shop: " + s.world.Buy.ListName()
	if s.world.Buy.Selling() {
		label = "shop: selling"
	}
	drawText(screen, label+"  (esc to leave)", 16, screenHeight/2, color.RGBA{150, 255, 150, 255})
}

func (s *shell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func drawText(screen *ebiten.Image, str string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, defaultFace, op)
}
