// Package cli parses command-line arguments for the jianghu demo player.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings parsed from arguments and environment.
type Config struct {
	GamePath    string        // game data directory
	EntryScript string        // entry script relative to GamePath
	SaveDir     string        // save game directory
	SoundFont   string        // SoundFont path for MIDI music, optional
	Timeout     time.Duration // 0 means unlimited
	LogLevel    string        // debug, info, warn, error
	Headless    bool          // run without a window
	ShowHelp    bool
}

// ParseArgs parses command-line arguments into a Config. Environment
// variables HEADLESS, TIMEOUT and LOG_LEVEL fill in values no flag set.
func ParseArgs(args []string) (*Config, error) {
	reordered := reorderArgs(args)

	fs := flag.NewFlagSet("jianghu", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.IntVar(&timeoutSec, "timeout", 0, "exit after this many seconds")
	fs.IntVar(&timeoutSec, "t", 0, "exit after this many seconds (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.StringVar(&config.SaveDir, "save-dir", "save", "save game directory")
	fs.StringVar(&config.SoundFont, "soundfont", "", "SoundFont file for MIDI music")
	fs.BoolVar(&config.Headless, "headless", false, "run without a window")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reordered); err != nil {
		return nil, err
	}

	// Environment fallbacks; flags win.
	if !config.Headless {
		if v := os.Getenv("HEADLESS"); v != "" {
			config.Headless = v == "1" || strings.ToLower(v) == "true"
		}
	}
	if timeoutSec == 0 {
		if v := os.Getenv("TIMEOUT"); v != "" {
			if t, err := strconv.Atoi(v); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}
	if config.LogLevel == "info" {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			config.LogLevel = strings.ToLower(v)
		}
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// Positional argument: the game directory, or an entry script inside
	// it.
	if fs.NArg() > 0 {
		path := fs.Arg(0)
		if strings.HasSuffix(strings.ToLower(path), ".txt") {
			config.GamePath = filepath.Dir(path)
			config.EntryScript = filepath.Base(path)
		} else {
			config.GamePath = path
		}
	}
	if config.GamePath == "" {
		config.GamePath = "."
	}
	if config.EntryScript == "" {
		config.EntryScript = "main.txt"
	}

	return config, nil
}

// reorderArgs moves flags before positional arguments so both orders
// work on the command line.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)
			// Value-taking flags consume the next argument too.
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if !isBoolFlag(arg) {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}

func isBoolFlag(arg string) bool {
	switch strings.TrimLeft(arg, "-") {
	case "h", "help", "headless":
		return true
	}
	return false
}

// PrintHelp writes the usage message.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `jianghu - quest script engine demo player

Usage:
  jianghu [options] [game-path]

Arguments:
  game-path     Game data directory, or the entry script inside it.
                Defaults to the current directory with main.txt.

Options:
  -t, --timeout <seconds>     exit after this many seconds (default: unlimited)
  -l, --log-level <level>     log level: debug, info, warn, error (default: info)
  --save-dir <dir>            save game directory (default: save)
  --soundfont <file>          SoundFont for MIDI music
  --headless                  run the scheduler without a window
  -h, --help                  show this help

Environment Variables:
  HEADLESS=1                  enable headless mode
  TIMEOUT=<seconds>           timeout in seconds
  LOG_LEVEL=<level>           log level

Examples:
  jianghu ./game                  run ./game/main.txt
  jianghu ./game/intro.txt        run a specific entry script
  jianghu --headless --timeout 10 ./game
`)
}
