// Package config provides YAML-based tunables for each minigame and the
// environment overrides for the arcade binary.
package config

import "time"

// BlockPuzzleConfig contains all configuration for the block puzzle.
type BlockPuzzleConfig struct {
	Grid      PuzzleGrid      `yaml:"grid"`
	Moves     PuzzleMoves     `yaml:"moves"`
	Timing    PuzzleTiming    `yaml:"timing"`
	Scoring   PuzzleScoring   `yaml:"scoring"`
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
}

// PuzzleGrid defines the board layout.
type PuzzleGrid struct {
	Size       int     `yaml:"size"`
	Spacing    float64 `yaml:"spacing"`
	FillChance float64 `yaml:"fill_chance"` // probability a cell starts with a block
}

// PuzzleMoves defines the per-level move budget.
type PuzzleMoves struct {
	Initial int `yaml:"initial"`
	Cap     int `yaml:"cap"`
	Step    int `yaml:"step"` // added to the budget on level completion
}

// PuzzleTiming defines deferred checks and animation lengths.
type PuzzleTiming struct {
	CheckDelay      time.Duration `yaml:"check_delay"`
	GameOverDelay   time.Duration `yaml:"game_over_delay"`
	RegenerateDelay time.Duration `yaml:"regenerate_delay"`
	SelectAnim      time.Duration `yaml:"select_anim"`
	MoveAnim        time.Duration `yaml:"move_anim"`
	CursorRepeat    time.Duration `yaml:"cursor_repeat"`
}

// PuzzleScoring defines level completion rewards.
type PuzzleScoring struct {
	LevelBonus int `yaml:"level_bonus"`
	MoveBonus  int `yaml:"move_bonus"` // per unused move
}

// CameraConfig defines the orbiting camera used by the arena games.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	RotateSpeed float64 `yaml:"rotate_speed"` // radians per second
}

// ParticlesConfig defines cosmetic bursts.
type ParticlesConfig struct {
	Count    int           `yaml:"count"`
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
}

// GravityBallsConfig contains all configuration for gravity balls.
type GravityBallsConfig struct {
	Physics   BallPhysics     `yaml:"physics"`
	Balls     BallSpawning    `yaml:"balls"`
	Arena     BallArena       `yaml:"arena"`
	Obstacles RingPlacement   `yaml:"obstacles"`
	Targets   RingPlacement   `yaml:"targets"`
	Scoring   BallScoring     `yaml:"scoring"`
	Lives     int             `yaml:"lives"`
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
}

// BallPhysics defines the per-tick integration.
type BallPhysics struct {
	Gravity  float64 `yaml:"gravity"`
	Damping  float64 `yaml:"damping"`  // velocity kept on a bounce
	Friction float64 `yaml:"friction"` // velocity kept per tick
	FloorY   float64 `yaml:"floor_y"`
	Tilt     float64 `yaml:"tilt"` // horizontal acceleration from player input
}

// BallSpawning defines when and how balls appear and expire.
type BallSpawning struct {
	Interval     time.Duration `yaml:"interval"`
	Lifetime     time.Duration `yaml:"lifetime"`
	Height       float64       `yaml:"height"`
	MaxSpeed     float64       `yaml:"max_speed"`
	MaxDistance  float64       `yaml:"max_distance"`
	MinY         float64       `yaml:"min_y"`
	DropCooldown time.Duration `yaml:"drop_cooldown"`
}

// BallArena defines the walls.
type BallArena struct {
	HalfSize      float64 `yaml:"half_size"`
	WallThickness float64 `yaml:"wall_thickness"`
	WallHeight    float64 `yaml:"wall_height"`
	WallPush      float64 `yaml:"wall_push"`
}

// RingPlacement places Base+level objects at a random radius in [MinRadius, MaxRadius].
type RingPlacement struct {
	Base      int     `yaml:"base"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	HitRadius float64 `yaml:"hit_radius"`
	Push      float64 `yaml:"push"`
}

// BallScoring defines points.
type BallScoring struct {
	Target     int `yaml:"target"`
	LevelBonus int `yaml:"level_bonus"`
}

// CubeRacerConfig contains all configuration for the cube racer.
type CubeRacerConfig struct {
	Player      RacerPlayer      `yaml:"player"`
	Maze        RacerMaze        `yaml:"maze"`
	Obstacles   RacerObstacles   `yaml:"obstacles"`
	Checkpoints RacerCheckpoints `yaml:"checkpoints"`
	TimeBonus   RacerTimeBonus   `yaml:"time_bonus"`
	Lives       int              `yaml:"lives"`
	FallY       float64          `yaml:"fall_y"`
	Particles   ParticlesConfig  `yaml:"particles"`
}

// RacerPlayer defines movement.
type RacerPlayer struct {
	Speed     float64 `yaml:"speed"`
	JumpForce float64 `yaml:"jump_force"`
	Gravity   float64 `yaml:"gravity"`
	GroundY   float64 `yaml:"ground_y"`
}

// RacerMaze defines the wall lattice.
type RacerMaze struct {
	HalfSize   float64 `yaml:"half_size"`
	Spacing    float64 `yaml:"spacing"`
	WallChance float64 `yaml:"wall_chance"`
	WallRadius float64 `yaml:"wall_radius"`
	Pushback   float64 `yaml:"pushback"`
	SafeRadius float64 `yaml:"safe_radius"`
}

// RacerObstacles defines hazards.
type RacerObstacles struct {
	Count     int     `yaml:"count"`
	HalfRange float64 `yaml:"half_range"`
	HitRadius float64 `yaml:"hit_radius"`
}

// RacerCheckpoints defines collectibles.
type RacerCheckpoints struct {
	Count      int     `yaml:"count"`
	HalfRange  float64 `yaml:"half_range"`
	Radius     float64 `yaml:"radius"`
	Points     int     `yaml:"points"`
	LevelBonus int     `yaml:"level_bonus"`
}

// RacerTimeBonus defines the decaying speed bonus.
type RacerTimeBonus struct {
	Window    time.Duration `yaml:"window"`
	PerSecond float64       `yaml:"per_second"`
}

// SpaceShooterConfig contains all configuration for the space shooter.
type SpaceShooterConfig struct {
	Player    ShooterPlayer    `yaml:"player"`
	Bullets   ShooterBullets   `yaml:"bullets"`
	Enemies   ShooterEnemies   `yaml:"enemies"`
	Waves     ShooterWaves     `yaml:"waves"`
	Asteroids ShooterAsteroids `yaml:"asteroids"`
	PowerUps  ShooterPowerUps  `yaml:"powerups"`
	Particles ParticlesConfig  `yaml:"particles"`
}

// ShooterPlayer defines the ship.
type ShooterPlayer struct {
	Z            float64       `yaml:"z"`
	Speed        float64       `yaml:"speed"`
	LimitX       float64       `yaml:"limit_x"`
	LimitY       float64       `yaml:"limit_y"`
	Health       int           `yaml:"health"`
	FireCooldown time.Duration `yaml:"fire_cooldown"`
}

// ShooterBullets defines projectiles for both sides.
type ShooterBullets struct {
	Speed       float64 `yaml:"speed"`
	Damage      int     `yaml:"damage"`
	MaxZ        float64 `yaml:"max_z"`
	EnemyDamage int     `yaml:"enemy_damage"`
	EnemyMinZ   float64 `yaml:"enemy_min_z"`
}

// EnemyType defines one enemy archetype.
type EnemyType struct {
	Health int `yaml:"health"`
	Points int `yaml:"points"`
}

// ShooterEnemies defines enemy behaviour.
type ShooterEnemies struct {
	Speed           float64       `yaml:"speed"`
	MinZ            float64       `yaml:"min_z"`
	FireMin         time.Duration `yaml:"fire_min"`
	FireJitter      time.Duration `yaml:"fire_jitter"`
	CollisionDamage int           `yaml:"collision_damage"` // to the player
	RamDamage       int           `yaml:"ram_damage"`       // to the enemy
	Fighter         EnemyType     `yaml:"fighter"`
	Bomber          EnemyType     `yaml:"bomber"`
	Interceptor     EnemyType     `yaml:"interceptor"`
}

// ShooterWaves defines wave pacing.
type ShooterWaves struct {
	Base     int           `yaml:"base"`
	Interval time.Duration `yaml:"interval"`
	Pause    time.Duration `yaml:"pause"`
}

// ShooterAsteroids defines the asteroid field.
type ShooterAsteroids struct {
	Initial     int           `yaml:"initial"`
	Interval    time.Duration `yaml:"interval"`
	MinSize     float64       `yaml:"min_size"`
	MaxSize     float64       `yaml:"max_size"`
	SplitChance float64       `yaml:"split_chance"`
	SplitSize   float64       `yaml:"split_size"` // only larger asteroids split
	Debris      int           `yaml:"debris"`
	DebrisScale float64       `yaml:"debris_scale"`
}

// ShooterPowerUps defines drops.
type ShooterPowerUps struct {
	DropChance float64       `yaml:"drop_chance"`
	Duration   time.Duration `yaml:"duration"`
	Health     int           `yaml:"health"`
	SpeedMult  float64       `yaml:"speed_mult"`
	DamageMult float64       `yaml:"damage_mult"`
	Drift      float64       `yaml:"drift"`
}

// Games bundles the tunables of every minigame.
type Games struct {
	BlockPuzzle  BlockPuzzleConfig
	GravityBalls GravityBallsConfig
	CubeRacer    CubeRacerConfig
	SpaceShooter SpaceShooterConfig
}

// DefaultGames returns the hardcoded defaults for every game.
func DefaultGames() Games {
	return Games{
		BlockPuzzle:  DefaultBlockPuzzleConfig(),
		GravityBalls: DefaultGravityBallsConfig(),
		CubeRacer:    DefaultCubeRacerConfig(),
		SpaceShooter: DefaultSpaceShooterConfig(),
	}
}
