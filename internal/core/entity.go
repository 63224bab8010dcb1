package core

// EntityKind tags every object a game places in the scene.
// Collision handling and rendering both switch on it.
type EntityKind uint8

const (
	KindNone EntityKind = iota

	// Shared
	KindPlayer
	KindWall
	KindObstacle
	KindParticle

	// Block puzzle
	KindCell
	KindPatternMark
	KindCursor
	KindBlockCube
	KindBlockSphere
	KindBlockPyramid
	KindBlockCylinder

	// Gravity balls
	KindBall
	KindTarget

	// Cube racer
	KindCheckpoint

	// Space shooter
	KindFighter
	KindBomber
	KindInterceptor
	KindBullet
	KindEnemyBullet
	KindAsteroid
	KindPowerUpHealth
	KindPowerUpSpeed
	KindPowerUpDamage

	kindCount
)

type kindInfo struct {
	name  string
	glyph rune
	color Color
	layer int
}

var kinds = [kindCount]kindInfo{
	KindNone:          {"none", ' ', ColorDefault, 0},
	KindPlayer:        {"player", '@', ColorBrightGreen, 9},
	KindWall:          {"wall", '#', ColorGray, 2},
	KindObstacle:      {"obstacle", 'A', ColorOrange, 4},
	KindParticle:      {"particle", '.', ColorBrightYellow, 1},
	KindCell:          {"cell", '·', ColorGray, 0},
	KindPatternMark:   {"pattern", '+', ColorBrightYellow, 1},
	KindCursor:        {"cursor", '[', ColorBrightWhite, 8},
	KindBlockCube:     {"cube", '■', ColorRed, 5},
	KindBlockSphere:   {"sphere", '●', ColorGreen, 5},
	KindBlockPyramid:  {"pyramid", '▲', ColorBlue, 5},
	KindBlockCylinder: {"cylinder", '▮', ColorYellow, 5},
	KindBall:          {"ball", 'o', ColorBrightCyan, 7},
	KindTarget:        {"target", '◎', ColorBrightRed, 3},
	KindCheckpoint:    {"checkpoint", '$', ColorBrightYellow, 3},
	KindFighter:       {"fighter", 'V', ColorRed, 6},
	KindBomber:        {"bomber", 'W', ColorMagenta, 6},
	KindInterceptor:   {"interceptor", 'Y', ColorBrightMagenta, 6},
	KindBullet:        {"bullet", '|', ColorBrightYellow, 7},
	KindEnemyBullet:   {"enemy-bullet", '!', ColorBrightRed, 7},
	KindAsteroid:      {"asteroid", '*', ColorGray, 4},
	KindPowerUpHealth: {"powerup-health", 'H', ColorBrightGreen, 5},
	KindPowerUpSpeed:  {"powerup-speed", 'S', ColorBrightCyan, 5},
	KindPowerUpDamage: {"powerup-damage", 'D', ColorOrange, 5},
}

func (k EntityKind) info() kindInfo {
	if k >= kindCount {
		return kinds[KindNone]
	}
	return kinds[k]
}

// String returns the kind name used in logs and snapshots.
func (k EntityKind) String() string { return k.info().name }

// Glyph returns the character drawn for this kind on a character grid.
func (k EntityKind) Glyph() rune { return k.info().glyph }

// Color returns the palette entry for this kind.
func (k EntityKind) Color() Color { return k.info().color }

// Layer orders overlapping entities; higher layers draw on top.
func (k EntityKind) Layer() int { return k.info().layer }

// IsEnemy reports whether k is one of the shooter enemy types.
func (k EntityKind) IsEnemy() bool {
	return k == KindFighter || k == KindBomber || k == KindInterceptor
}

// IsPowerUp reports whether k is a collectible power-up.
func (k EntityKind) IsPowerUp() bool {
	return k == KindPowerUpHealth || k == KindPowerUpSpeed || k == KindPowerUpDamage
}

// IsBlock reports whether k is a puzzle block shape.
func (k EntityKind) IsBlock() bool {
	return k >= KindBlockCube && k <= KindBlockCylinder
}
