package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MinPly     = 1
	MaxPly     = 16
	DefaultPly = 6 // at ply 5 the engine can still lose a 3x3 game
)

// PlayerSettings holds how one side is played.
type PlayerSettings struct {
	Name      string `yaml:"name" json:"name"`
	Automated bool   `yaml:"automated" json:"automated"`
	Ply       int    `yaml:"ply" json:"ply"`
}

// Players is the settings record for both sides, keyed by the player enum.
type Players struct {
	X PlayerSettings `yaml:"x" json:"x"`
	O PlayerSettings `yaml:"o" json:"o"`
}

func DefaultPlayers() Players {
	return Players{
		X: PlayerSettings{Name: X.String(), Automated: true, Ply: DefaultPly},
		O: PlayerSettings{Name: O.String(), Automated: false, Ply: DefaultPly},
	}
}

// ValidatePly reports whether ply is a usable search depth.
func ValidatePly(ply int) error {
	if ply < MinPly || ply > MaxPly {
		return fmt.Errorf("%w: %d is not in [%d..%d]", apperror.ErrInvalidPly, ply, MinPly, MaxPly)
	}

	return nil
}

func (that Players) Get(player Square) PlayerSettings {
	if player == O {
		return that.O
	}

	return that.X
}

func (that *Players) Set(player Square, settings PlayerSettings) {
	if player == O {
		that.O = settings
		return
	}

	that.X = settings
}

// WithDefaults fills unnamed players and zero plies.
func (that Players) WithDefaults() Players {
	for _, player := range []Square{X, O} {
		settings := that.Get(player)

		if settings.Name == "" {
			settings.Name = player.String()
		}

		if settings.Ply == 0 {
			settings.Ply = DefaultPly
		}

		that.Set(player, settings)
	}

	return that
}

func (that Players) Validate() error {
	for _, player := range []Square{X, O} {
		if err := ValidatePly(that.Get(player).Ply); err != nil {
			return fmt.Errorf("player %s: %w", player, err)
		}
	}

	return nil
}
