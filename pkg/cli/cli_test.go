package cli

import (
	"testing"
	"time"
)

func TestParseArgsValid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: []string{},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
			},
		},
		{
			name: "game directory",
			args: []string{"/data/game"},
			want: Config{
				GamePath:    "/data/game",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
			},
		},
		{
			name: "entry script splits into dir and file",
			args: []string{"/data/game/intro.txt"},
			want: Config{
				GamePath:    "/data/game",
				EntryScript: "intro.txt",
				SaveDir:     "save",
				LogLevel:    "info",
			},
		},
		{
			name: "timeout long form",
			args: []string{"--timeout", "10"},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
				Timeout:     10 * time.Second,
			},
		},
		{
			name: "timeout shorthand",
			args: []string{"-t", "5"},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
				Timeout:     5 * time.Second,
			},
		},
		{
			name: "log level",
			args: []string{"-l", "debug"},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "debug",
			},
		},
		{
			name: "headless with positional after flags",
			args: []string{"--headless", "/data/game"},
			want: Config{
				GamePath:    "/data/game",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
				Headless:    true,
			},
		},
		{
			name: "positional before flags",
			args: []string{"/data/game", "--headless", "-t", "30"},
			want: Config{
				GamePath:    "/data/game",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
				Headless:    true,
				Timeout:     30 * time.Second,
			},
		},
		{
			name: "help shorthand",
			args: []string{"-h"},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "save",
				LogLevel:    "info",
				ShowHelp:    true,
			},
		},
		{
			name: "save dir and soundfont",
			args: []string{"--save-dir", "/tmp/saves", "--soundfont", "gm.sf2"},
			want: Config{
				GamePath:    ".",
				EntryScript: "main.txt",
				SaveDir:     "/tmp/saves",
				SoundFont:   "gm.sf2",
				LogLevel:    "info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs(%v): %v", tt.args, err)
			}
			if *got != tt.want {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.args, *got, tt.want)
			}
		})
	}
}

func TestParseArgsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative timeout", []string{"--timeout", "-5"}},
		{"bad log level", []string{"--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("ParseArgs(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseArgsEnvFallbacks(t *testing.T) {
	t.Setenv("HEADLESS", "1")
	t.Setenv("TIMEOUT", "7")
	t.Setenv("LOG_LEVEL", "warn")

	got, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !got.Headless {
		t.Error("HEADLESS env ignored")
	}
	if got.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", got.Timeout)
	}
	if got.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", got.LogLevel)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	got, err := ParseArgs([]string{"--log-level", "debug"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug (flag beats env)", got.LogLevel)
	}
}
