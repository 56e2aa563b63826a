// internal/game/context.go
package game

import (
	"math/rand"

	"github.com/google/uuid"

	"fruitloop/internal/config"
	"fruitloop/internal/models"
)

// GameContext bundles the shared state the engine and its sub-systems operate
// on. Building it up front keeps the engine constructor honest about what the
// rules actually touch.
type GameContext struct {
	Players []*models.Player
	Deck    *Deck
	Land    *LandLedger
	Wagers  *WagerLedger
	RNG     *rand.Rand
	Cfg     *config.Config
}

// NewGameContext wires a fresh context for the given roster.
func NewGameContext(cfg *config.Config, rng *rand.Rand, players []*models.Player) *GameContext {
	return &GameContext{
		Players: players,
		Deck:    NewDeck(cfg.Deck, rng),
		Land:    NewLandLedger(cfg.Rules.TollBase),
		Wagers:  NewWagerLedger(cfg, rng),
		RNG:     rng,
		Cfg:     cfg,
	}
}

// PlayerByID finds a player by id, or nil.
func (gc *GameContext) PlayerByID(id uuid.UUID) *models.Player {
	for _, p := range gc.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayers lists the players still drawing this round, in seat order.
func (gc *GameContext) ActivePlayers() []*models.Player {
	var out []*models.Player
	for _, p := range gc.Players {
		if !p.Terminal() && p.State != models.StateFrozen {
			out = append(out, p)
		}
	}
	return out
}

// PlayingOthers lists players other than the given one who are neither
// terminal nor frozen. Used to pick targets for card effects.
func (gc *GameContext) PlayingOthers(id uuid.UUID) []*models.Player {
	var out []*models.Player
	for _, p := range gc.Players {
		if p.ID == id {
			continue
		}
		if p.Terminal() || p.State == models.StateFrozen {
			continue
		}
		out = append(out, p)
	}
	return out
}
