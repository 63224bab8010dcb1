package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolateHome points the user config lookup at an empty directory.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolateHome(t)

	g, err := LoadGames("")
	if err != nil {
		t.Fatalf("LoadGames() failed: %v", err)
	}
	if !reflect.DeepEqual(g, DefaultGames()) {
		t.Errorf("embedded YAML drifted from hardcoded defaults:\n got %+v\nwant %+v", g, DefaultGames())
	}
}

func TestCustomDirOverridesNamedFields(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	data := "player:\n  fire_cooldown: 80ms\nwaves:\n  base: 5\n"
	if err := os.WriteFile(filepath.Join(dir, "space-shooter.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSpaceShooter(dir)
	if err != nil {
		t.Fatalf("LoadSpaceShooter() failed: %v", err)
	}
	if cfg.Player.FireCooldown != 80*time.Millisecond {
		t.Errorf("FireCooldown = %v, expected 80ms", cfg.Player.FireCooldown)
	}
	if cfg.Waves.Base != 5 {
		t.Errorf("Waves.Base = %d, expected 5", cfg.Waves.Base)
	}
	// Untouched fields keep their defaults.
	if cfg.Player.Speed != 15 || cfg.Enemies.Bomber.Health != 100 {
		t.Errorf("defaults lost: speed=%v bomber=%d", cfg.Player.Speed, cfg.Enemies.Bomber.Health)
	}
}

func TestCustomDirMissingFileFallsThrough(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadCubeRacer(t.TempDir())
	if err != nil {
		t.Fatalf("LoadCubeRacer() failed: %v", err)
	}
	if cfg != DefaultCubeRacerConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestCustomDirMalformedFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "block-puzzle.yaml"), []byte("grid: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockPuzzle(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "config: cannot parse") {
		t.Errorf("error = %v", err)
	}
	if cfg.Grid.Size != 4 {
		t.Error("defaults should be returned with the error")
	}

	// LoadGames reports the failure but still fills every game.
	g, err := LoadGames(dir)
	if err == nil {
		t.Fatal("LoadGames should surface the parse error")
	}
	if g.SpaceShooter.Player.Health != 100 || g.BlockPuzzle.Grid.Size != 4 {
		t.Error("LoadGames should fall back to defaults")
	}
}

func TestUserConfigDirIsUsed(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gravity-balls.yaml"), []byte("lives: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGravityBalls("")
	if err != nil {
		t.Fatalf("LoadGravityBalls() failed: %v", err)
	}
	if cfg.Lives != 5 || cfg.Physics.Gravity != -9.81 {
		t.Errorf("Lives = %d, Gravity = %v", cfg.Lives, cfg.Physics.Gravity)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if e.FPS != 30 || e.DBPath != "~/.arcade/scores.db" || e.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", e)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ARCADE_FPS", "60")
	t.Setenv("ARCADE_SEED", "42")
	t.Setenv("ARCADE_CONFIG_DIR", "/tmp/arcade")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if e.FPS != 60 || e.Seed != 42 || e.ConfigDir != "/tmp/arcade" {
		t.Errorf("overrides not applied: %+v", e)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("ARCADE_FPS", "fast")
	_, err := LoadEnv()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}
