// Package app wires the script engine, the world state and the UI shell
// into a runnable demo player.
package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/luoxia/jianghu/pkg/audio"
	"github.com/luoxia/jianghu/pkg/cli"
	"github.com/luoxia/jianghu/pkg/engine"
	"github.com/luoxia/jianghu/pkg/fileutil"
	"github.com/luoxia/jianghu/pkg/game"
	"github.com/luoxia/jianghu/pkg/logger"
	"github.com/luoxia/jianghu/pkg/script"
)

// tickMs is the fixed scheduler tick, matching Ebitengine's 60 TPS.
const tickMs = 1000 / 60

// Application owns the wiring: config, world, scheduler and the shell
// that drives them.
type Application struct {
	config *cli.Config
	log    *slog.Logger
	fs     fileutil.FileSystem

	world *game.World
	sched *engine.Scheduler
}

// New creates an empty Application; Run does the wiring.
func New() *Application {
	return &Application{}
}

// NewEmbedded creates an Application that reads game files from an
// embedded file system instead of the game path argument, for
// single-binary builds with the game data compiled in.
func NewEmbedded(fsys fs.FS, basePath string) *Application {
	return &Application{fs: fileutil.NewEmbedFS(fsys, basePath)}
}

// Run parses arguments, builds the world and runs the entry script until
// the game exits or the timeout hits.
func (app *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()
	app.log.Info("application started", "game", config.GamePath, "entry", config.EntryScript)

	fsys := app.fs
	if fsys == nil {
		fsys = fileutil.NewRealFS(config.GamePath)
	}

	var sound engine.SoundPlayer
	if !config.Headless {
		player, err := audio.NewPlayer(fsys, nil, config.SoundFont)
		if err != nil {
			app.log.Warn("audio unavailable, continuing silent", "error", err)
		} else {
			sound = player
		}
	}

	world, err := game.NewWorld(fsys, config.SaveDir, sound)
	if err != nil {
		return fmt.Errorf("failed to create world: %w", err)
	}
	app.world = world

	app.sched = engine.NewScheduler(world.API(), script.NewLoader(fsys))
	world.Timers.OnLimitExpired = func(scriptPath string) {
		app.sched.QueueScript(scriptPath)
	}

	if err := app.sched.RunScript(config.EntryScript); err != nil {
		return fmt.Errorf("failed to start entry script: %w", err)
	}

	if config.Headless {
		return app.runHeadless()
	}
	return app.runWindow()
}

// runHeadless advances the scheduler on a synthetic fixed tick without a
// window. UI waits resolve automatically so authored scripts run to the
// end: dialogs close, selections take the first option, shops close.
func (app *Application) runHeadless() error {
	app.log.Info("headless mode")

	maxTicks := -1
	if app.config.Timeout > 0 {
		maxTicks = int(app.config.Timeout.Milliseconds() / tickMs)
	}

	for tick := 0; maxTicks < 0 || tick < maxTicks; tick++ {
		app.autoResolveInput()
		app.world.Update(tickMs)
		app.sched.Update(tickMs)

		if !app.sched.IsRunning() && app.sched.Queued() == 0 && len(app.sched.Parallels()) == 0 {
			app.log.Info("all scripts finished", "ticks", tick+1)
			return nil
		}
	}

	app.log.Info("timeout reached, terminating")
	return nil
}

func (app *Application) autoResolveInput() {
	gui := app.world.Gui
	switch {
	case gui.SelectionOpen:
		gui.CloseSelection()
		app.sched.OnSelectionMade(0)
	case gui.DialogOpen:
		gui.CloseDialog()
		app.sched.OnDialogClosed()
	case app.world.Buy.SessionOpen():
		app.world.Buy.Close()
	}
}

// runWindow runs the Ebitengine shell.
func (app *Application) runWindow() error {
	shell := newShell(app.world, app.sched, app.deadline())

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("jianghu")
	if err := ebiten.RunGame(shell); err != nil {
		return fmt.Errorf("window terminated: %w", err)
	}
	return nil
}

func (app *Application) deadline() time.Time {
	if app.config.Timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(app.config.Timeout)
}
