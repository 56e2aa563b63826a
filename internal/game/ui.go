// internal/game/ui.go
package game

import (
	"github.com/google/uuid"

	"fruitloop/internal/models"
)

// ChoiceKind names the kind of selection a ChoiceRequest asks for.
type ChoiceKind string

const (
	ChooseTarget   ChoiceKind = "target"    // pick a player id
	ChooseProphecy ChoiceKind = "prophecy"  // "small" or "big"
	ChooseCell     ChoiceKind = "cell"      // pick a board cell id
	ChooseCellPair ChoiceKind = "cell_pair" // "a:b" pair of distinct cells
	ChooseShop     ChoiceKind = "shop"      // item kind to buy, or "pass"
)

// ChoiceRequest is a pending selection the engine is waiting on. Exactly one
// request is open at a time; it resolves exactly once, via SubmitChoice for
// humans or the AI policy for computer players.
type ChoiceRequest struct {
	ID      uuid.UUID  `json:"id"`
	Player  uuid.UUID  `json:"player"`
	Kind    ChoiceKind `json:"kind"`
	Prompt  string     `json:"prompt"`
	Options []string   `json:"options,omitempty"`

	resolve func(option string) error
}

// PlayerView is the public slice of a player shown to the frontend.
type PlayerView struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	IsAI       bool               `json:"isAI"`
	TotalScore int                `json:"totalScore"`
	RoundScore int                `json:"roundScore"`
	Position   int                `json:"position"`
	State      models.PlayerState `json:"state"`
	Hand       []models.Card      `json:"hand"`
	Items      []models.ItemKind  `json:"items"`
}

// StateView is the engine state pushed to the frontend after every
// meaningful transition.
type StateView struct {
	Round         int            `json:"round"`
	Phase         Phase          `json:"phase"`
	CurrentPlayer uuid.UUID      `json:"currentPlayer"`
	Players       []PlayerView   `json:"players"`
	DeckRemaining int            `json:"deckRemaining"`
	Odds          map[Symbol]int `json:"odds"`
}

// Frontend is the narrow surface the engine drives its collaborators
// through. Implementations are invoked with the engine lock held and must
// not call back into the engine synchronously; queue the work instead.
type Frontend interface {
	// Announce reports a game event with a small payload.
	Announce(event string, fields map[string]any)
	// PromptChoice presents a pending selection to a human player.
	PromptChoice(req ChoiceRequest)
	// ReflectState mirrors the current engine state.
	ReflectState(view StateView)
}

// NopFrontend discards everything. Useful for headless simulations.
type NopFrontend struct{}

func (NopFrontend) Announce(string, map[string]any) {}
func (NopFrontend) PromptChoice(ChoiceRequest)      {}
func (NopFrontend) ReflectState(StateView)          {}
