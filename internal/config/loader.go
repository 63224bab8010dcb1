package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load reads <name>.yaml on top of the hardcoded defaults.
// Search order: customDir -> ~/.arcade/configs -> ./configs -> embedded default.
// A file in customDir that exists but cannot be read or parsed is an error;
// anything else falls through to the next source.
func load[T any](name, customDir string, embedded []byte, fallback func() T) (T, error) {
	filename := name + ".yaml"

	if customDir != "" {
		path := filepath.Join(customDir, filename)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg := fallback()
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return fallback(), fmt.Errorf("config: cannot parse %s: %w", path, err)
			}
			return cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return fallback(), fmt.Errorf("config: cannot read %s: %w", path, err)
		}
	}

	// Try user config directory
	if path := userConfigPath(filename); path != "" {
		if cfg, ok := tryFile(path, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

func tryFile[T any](path string, fallback func() T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(), false
	}
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadBlockPuzzle loads block puzzle configuration.
func LoadBlockPuzzle(customDir string) (BlockPuzzleConfig, error) {
	return load("block-puzzle", customDir, defaultBlockPuzzleYAML, DefaultBlockPuzzleConfig)
}

// LoadGravityBalls loads gravity balls configuration.
func LoadGravityBalls(customDir string) (GravityBallsConfig, error) {
	return load("gravity-balls", customDir, defaultGravityBallsYAML, DefaultGravityBallsConfig)
}

// LoadCubeRacer loads cube racer configuration.
func LoadCubeRacer(customDir string) (CubeRacerConfig, error) {
	return load("cube-racer", customDir, defaultCubeRacerYAML, DefaultCubeRacerConfig)
}

// LoadSpaceShooter loads space shooter configuration.
func LoadSpaceShooter(customDir string) (SpaceShooterConfig, error) {
	return load("space-shooter", customDir, defaultSpaceShooterYAML, DefaultSpaceShooterConfig)
}

// LoadGames loads the configuration of every game. The first error is
// returned together with defaults for the games that failed.
func LoadGames(customDir string) (Games, error) {
	var (
		g    Games
		errs []error
		err  error
	)
	if g.BlockPuzzle, err = LoadBlockPuzzle(customDir); err != nil {
		errs = append(errs, err)
	}
	if g.GravityBalls, err = LoadGravityBalls(customDir); err != nil {
		errs = append(errs, err)
	}
	if g.CubeRacer, err = LoadCubeRacer(customDir); err != nil {
		errs = append(errs, err)
	}
	if g.SpaceShooter, err = LoadSpaceShooter(customDir); err != nil {
		errs = append(errs, err)
	}
	return g, errors.Join(errs...)
}
