// Package events carries game notifications between a minigame, the session
// and the hosts. Everything runs on the frame goroutine: Publish only queues,
// Dispatch delivers at the tick boundary.
package events

// Kind identifies an event type on the bus.
type Kind uint8

const (
	KindGameStart Kind = iota + 1
	KindGamePause
	KindGameResume
	KindGameRestart
	KindGameOver
	KindBackToMenu
	KindScoreUpdate
	KindLevelUpdate
	KindLivesUpdate
	KindHealthUpdate
	KindStateChanged
)

var kindNames = map[Kind]string{
	KindGameStart:    "gameStart",
	KindGamePause:    "gamePause",
	KindGameResume:   "gameResume",
	KindGameRestart:  "gameRestart",
	KindGameOver:     "gameOver",
	KindBackToMenu:   "backToMenu",
	KindScoreUpdate:  "scoreUpdate",
	KindLevelUpdate:  "levelUpdate",
	KindLivesUpdate:  "livesUpdate",
	KindHealthUpdate: "healthUpdate",
	KindStateChanged: "stateChanged",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Event is any message that can travel on the bus.
type Event interface {
	Kind() Kind
}

// GameStart asks the session to start the named minigame.
type GameStart struct {
	Game string `json:"game"`
}

func (GameStart) Kind() Kind { return KindGameStart }

// GamePause asks the session to pause.
type GamePause struct{}

func (GamePause) Kind() Kind { return KindGamePause }

// GameResume asks the session to resume.
type GameResume struct{}

func (GameResume) Kind() Kind { return KindGameResume }

// GameRestart asks the session to restart the current minigame.
type GameRestart struct{}

func (GameRestart) Kind() Kind { return KindGameRestart }

// GameOver is published by a minigame when play has ended.
type GameOver struct {
	FinalScore int `json:"finalScore"`
}

func (GameOver) Kind() Kind { return KindGameOver }

// BackToMenu asks the session to tear down the game and show the menu.
type BackToMenu struct{}

func (BackToMenu) Kind() Kind { return KindBackToMenu }

type ScoreUpdate struct {
	Score int `json:"score"`
}

func (ScoreUpdate) Kind() Kind { return KindScoreUpdate }

type LevelUpdate struct {
	Level int `json:"level"`
}

func (LevelUpdate) Kind() Kind { return KindLevelUpdate }

type LivesUpdate struct {
	Lives int `json:"lives"`
}

func (LivesUpdate) Kind() Kind { return KindLivesUpdate }

// HealthUpdate reports the player's hit points (space shooter).
type HealthUpdate struct {
	Health int `json:"health"`
}

func (HealthUpdate) Kind() Kind { return KindHealthUpdate }

// StateChanged is published by the session after every transition.
// From and To are session state names.
type StateChanged struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (StateChanged) Kind() Kind { return KindStateChanged }
