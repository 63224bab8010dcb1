// Package games wires every minigame into a registry.
package games

import (
	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/games/blockpuzzle"
	"github.com/vovakirdan/keinplan-arcade/internal/games/cuberacer"
	"github.com/vovakirdan/keinplan-arcade/internal/games/gravityballs"
	"github.com/vovakirdan/keinplan-arcade/internal/games/spaceshooter"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
)

// RegisterAll adds the four minigames to r.
func RegisterAll(r *registry.Registry, cfg config.Games) {
	blockpuzzle.Register(r, cfg.BlockPuzzle)
	cuberacer.Register(r, cfg.CubeRacer)
	gravityballs.Register(r, cfg.GravityBalls)
	spaceshooter.Register(r, cfg.SpaceShooter)
}

// NewRegistry returns a registry holding every minigame.
func NewRegistry(cfg config.Games) *registry.Registry {
	r := registry.New()
	RegisterAll(r, cfg)
	return r
}
