package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/block-puzzle.yaml
var defaultBlockPuzzleYAML []byte

//go:embed defaults/gravity-balls.yaml
var defaultGravityBallsYAML []byte

//go:embed defaults/cube-racer.yaml
var defaultCubeRacerYAML []byte

//go:embed defaults/space-shooter.yaml
var defaultSpaceShooterYAML []byte

// DefaultBlockPuzzleConfig returns the default block puzzle configuration.
func DefaultBlockPuzzleConfig() BlockPuzzleConfig {
	return BlockPuzzleConfig{
		Grid: PuzzleGrid{
			Size:       4,
			Spacing:    1.2,
			FillChance: 0.7,
		},
		Moves: PuzzleMoves{
			Initial: 20,
			Cap:     25,
			Step:    2,
		},
		Timing: PuzzleTiming{
			CheckDelay:      500 * time.Millisecond,
			GameOverDelay:   1000 * time.Millisecond,
			RegenerateDelay: 2000 * time.Millisecond,
			SelectAnim:      200 * time.Millisecond,
			MoveAnim:        500 * time.Millisecond,
			CursorRepeat:    180 * time.Millisecond,
		},
		Scoring: PuzzleScoring{
			LevelBonus: 1000,
			MoveBonus:  50,
		},
		Camera: CameraConfig{
			Distance:    12,
			MinDistance: 5,
			MaxDistance: 20,
			RotateSpeed: 0.05,
		},
		Particles: ParticlesConfig{
			Count:    20,
			Speed:    3,
			Lifetime: 800 * time.Millisecond,
		},
	}
}

// DefaultGravityBallsConfig returns the default gravity balls configuration.
func DefaultGravityBallsConfig() GravityBallsConfig {
	return GravityBallsConfig{
		Physics: BallPhysics{
			Gravity:  -9.81,
			Damping:  0.7,
			Friction: 0.98,
			FloorY:   0.5,
			Tilt:     6,
		},
		Balls: BallSpawning{
			Interval:     2 * time.Second,
			Lifetime:     30 * time.Second,
			Height:       10,
			MaxSpeed:     5,
			MaxDistance:  20,
			MinY:         -5,
			DropCooldown: 500 * time.Millisecond,
		},
		Arena: BallArena{
			HalfSize:      20,
			WallThickness: 0.5,
			WallHeight:    5,
			WallPush:      0.5,
		},
		Obstacles: RingPlacement{
			Base:      3,
			MinRadius: 5,
			MaxRadius: 13,
			HitRadius: 1.5,
			Push:      0.3,
		},
		Targets: RingPlacement{
			Base:      5,
			MinRadius: 12,
			MaxRadius: 16,
			HitRadius: 1.2,
		},
		Scoring: BallScoring{
			Target:     100,
			LevelBonus: 500,
		},
		Lives: 3,
		Camera: CameraConfig{
			Distance:    25,
			MinDistance: 10,
			MaxDistance: 40,
			RotateSpeed: 0.05,
		},
		Particles: ParticlesConfig{
			Count:    10,
			Speed:    4,
			Lifetime: 600 * time.Millisecond,
		},
	}
}

// DefaultCubeRacerConfig returns the default cube racer configuration.
func DefaultCubeRacerConfig() CubeRacerConfig {
	return CubeRacerConfig{
		Player: RacerPlayer{
			Speed:     8,
			JumpForce: 12,
			Gravity:   -25,
			GroundY:   1,
		},
		Maze: RacerMaze{
			HalfSize:   20,
			Spacing:    2,
			WallChance: 0.7,
			WallRadius: 1.5,
			Pushback:   0.1,
			SafeRadius: 2,
		},
		Obstacles: RacerObstacles{
			Count:     15,
			HalfRange: 18,
			HitRadius: 1.2,
		},
		Checkpoints: RacerCheckpoints{
			Count:      5,
			HalfRange:  15,
			Radius:     2,
			Points:     100,
			LevelBonus: 500,
		},
		TimeBonus: RacerTimeBonus{
			Window:    300 * time.Second,
			PerSecond: 10,
		},
		Lives: 3,
		FallY: -10,
		Particles: ParticlesConfig{
			Count:    12,
			Speed:    4,
			Lifetime: 700 * time.Millisecond,
		},
	}
}

// DefaultSpaceShooterConfig returns the default space shooter configuration.
func DefaultSpaceShooterConfig() SpaceShooterConfig {
	return SpaceShooterConfig{
		Player: ShooterPlayer{
			Z:            -15,
			Speed:        15,
			LimitX:       15,
			LimitY:       10,
			Health:       100,
			FireCooldown: 150 * time.Millisecond,
		},
		Bullets: ShooterBullets{
			Speed:       30,
			Damage:      25,
			MaxZ:        30,
			EnemyDamage: 15,
			EnemyMinZ:   -25,
		},
		Enemies: ShooterEnemies{
			Speed:           8,
			MinZ:            -20,
			FireMin:         1000 * time.Millisecond,
			FireJitter:      1000 * time.Millisecond,
			CollisionDamage: 50,
			RamDamage:       100,
			Fighter:         EnemyType{Health: 50, Points: 100},
			Bomber:          EnemyType{Health: 100, Points: 200},
			Interceptor:     EnemyType{Health: 75, Points: 150},
		},
		Waves: ShooterWaves{
			Base:     3,
			Interval: 500 * time.Millisecond,
			Pause:    3000 * time.Millisecond,
		},
		Asteroids: ShooterAsteroids{
			Initial:     20,
			Interval:    3000 * time.Millisecond,
			MinSize:     1,
			MaxSize:     4,
			SplitChance: 0.5,
			SplitSize:   2,
			Debris:      3,
			DebrisScale: 0.6,
		},
		PowerUps: ShooterPowerUps{
			DropChance: 0.2,
			Duration:   5 * time.Second,
			Health:     25,
			SpeedMult:  1.5,
			DamageMult: 2,
			Drift:      4,
		},
		Particles: ParticlesConfig{
			Count:    15,
			Speed:    6,
			Lifetime: 500 * time.Millisecond,
		},
	}
}
