package game

import (
	"errors"
	"fmt"
	"strings"

	gm "minimax-chess/chessmg"
	"minimax-chess/engine"
)

var (
	ErrGameOver      = errors.New("game: game is over")
	ErrNotEngineTurn = errors.New("game: not the engine's turn")
	ErrNotHumanTurn  = errors.New("game: not the human's turn")
	ErrInvalidConfig = errors.New("game: invalid config")
)

type Mode uint8

const (
	// HumanVsEngine pits one human colour against the engine.
	HumanVsEngine Mode = iota
	// Watch lets the engine play both colours.
	Watch
)

var modeNames = [...]string{"human", "watch"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

func ParseMode(text string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(text, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, text)
}

// Difficulty is a named search depth.
type Difficulty uint8

const (
	Beginner Difficulty = iota + 1
	Easy
	Medium
	Hard
)

var difficultyNames = [...]string{Beginner: "beginner", Easy: "easy", Medium: "medium", Hard: "hard"}

// Depth is the search depth in plies.
func (d Difficulty) Depth() int { return int(d) }

func (d Difficulty) Valid() bool { return d >= Beginner && d <= Hard }

func (d Difficulty) String() string {
	if d.Valid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", d)
}

// ParseDifficulty accepts a level name or its depth.
func ParseDifficulty(text string) (Difficulty, error) {
	for d := Beginner; d <= Hard; d++ {
		if strings.EqualFold(text, difficultyNames[d]) || text == fmt.Sprint(d.Depth()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, text)
}

// Hints never search deeper than this.
const maxHintDepth = 2

type Config struct {
	Mode Mode
	// Human is the human's colour in HumanVsEngine mode.
	Human gm.Color
	// Difficulty is the engine level per colour. In HumanVsEngine mode only
	// the engine's colour is read.
	Difficulty [2]Difficulty
	Engine     engine.Config
}

func DefaultConfig() Config {
	return Config{
		Mode:       HumanVsEngine,
		Human:      gm.White,
		Difficulty: [2]Difficulty{Medium, Medium},
		Engine:     engine.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	if c.Mode > Watch {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	}
	if c.Human != gm.White && c.Human != gm.Black {
		return fmt.Errorf("%w: human colour %d", ErrInvalidConfig, c.Human)
	}
	for _, d := range c.Difficulty {
		if !d.Valid() {
			return fmt.Errorf("%w: difficulty %d", ErrInvalidConfig, d)
		}
	}
	return c.Engine.Validate()
}
