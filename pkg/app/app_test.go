package app

import (
	"os"
	"path/filepath"
	"testing"
)

// TestRunHeadlessScriptToCompletion runs a small script end to end in
// headless mode: the dialog auto-resolves, the save command writes a
// slot file, and Run returns once the script finishes.
func TestRunHeadlessScriptToCompletion(t *testing.T) {
	gameDir := t.TempDir()
	saveDir := t.TempDir()

	src := `Talk("elder", "welcome to the village");
Assign($gold, 5);
SaveGame(1);
`
	if err := os.WriteFile(filepath.Join(gameDir, "main.txt"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	application := New()
	err := application.Run([]string{
		"--headless",
		"--timeout", "5",
		"--save-dir", saveDir,
		gameDir,
	})
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if _, err := os.Stat(filepath.Join(saveDir, "save1.json")); err != nil {
		t.Errorf("expected save slot file: %v", err)
	}
}

// TestRunHeadlessTimeoutTerminates makes sure an endless script exits at
// the timeout instead of hanging the test.
func TestRunHeadlessTimeoutTerminates(t *testing.T) {
	gameDir := t.TempDir()

	src := `@loop:
Add($n, 1);
Goto("loop");
`
	if err := os.WriteFile(filepath.Join(gameDir, "main.txt"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	application := New()
	err := application.Run([]string{
		"--headless",
		"--timeout", "1",
		"--save-dir", t.TempDir(),
		gameDir,
	})
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}

func TestRunHelpDoesNotStartWorld(t *testing.T) {
	application := New()
	if err := application.Run([]string{"--help"}); err != nil {
		t.Fatalf("Run(--help) = %v, want nil", err)
	}
	if application.world != nil {
		t.Error("help run should not build a world")
	}
}
