// internal/game/engine.go
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fruitloop/internal/config"
	"fruitloop/internal/models"
)

// Phase is the engine's top-level state. Exactly one transient payload
// (item phase, betting phase, forced draw, duel, shop, pending choice) may
// be non-nil at a time, and only in its matching phase.
type Phase string

const (
	PhaseIdle    Phase = "idle"     // constructed, not started
	PhaseBetting Phase = "betting"  // pre-round stake window
	PhaseItem    Phase = "item"     // current player's item window
	PhaseAction  Phase = "action"   // waiting for draw / give-up
	PhaseBusy    Phase = "busy"     // a resolution chain is in flight
	PhaseDuel    Phase = "duel"     // dare sub-game active
	PhaseShop    Phase = "shop"     // between-round shopping
	PhaseOver    Phase = "over"     // game finished
)

type itemPhaseState struct {
	player *models.Player
}

type bettingState struct {
	confirmed map[uuid.UUID]bool
}

// forceDrawState drives a multi-card draw sequence. Movement and the
// card-kind filter vary by trigger; done runs once the sequence drains
// without a bust.
type forceDrawState struct {
	target      *models.Player
	remaining   int
	move        bool
	numbersOnly bool
	done        func()
}

type shopState struct {
	queue []*models.Player
	idx   int
	offer []models.ItemKind
}

// Options configures an Engine. Zero values fall back to sane defaults.
type Options struct {
	RNG      *rand.Rand
	Log      *logrus.Entry
	Frontend Frontend

	// Synchronous collapses every delayed step into an inline work queue
	// drained before the triggering call returns. Used by tests and
	// headless simulations; phase countdowns are disabled in this mode.
	Synchronous bool
}

// Engine owns all game state transitions: turn rotation, card resolution,
// bust handling, the item and land economy, wagering and the duel
// sub-machine. All public methods are safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	log *logrus.Entry
	fe  Frontend

	ctx *GameContext
	cfg *config.Config

	phase      Phase
	roundCount int
	startIdx   int
	currentIdx int

	feastMode bool
	discard   []models.Card

	itemPhase *itemPhaseState
	betting   *bettingState
	forceDraw *forceDrawState
	duel      *DuelState
	shop      *shopState
	choice    *ChoiceRequest

	winner *models.Player

	synchronous bool
	queue       []func()
	gen         int
}

// NewEngine wires an engine for the given roster. The player slice is owned
// by the engine afterwards.
func NewEngine(cfg *config.Config, players []*models.Player, opts Options) (*Engine, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("engine: need at least two players, got %d", len(players))
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	fe := opts.Frontend
	if fe == nil {
		fe = NopFrontend{}
	}
	for _, p := range players {
		p.ResetRound()
		if p.Position == 0 {
			p.Position = 1
		}
	}
	return &Engine{
		log:         log.WithField("component", "engine"),
		fe:          fe,
		ctx:         NewGameContext(cfg, rng, players),
		cfg:         cfg,
		phase:       PhaseIdle,
		synchronous: opts.Synchronous,
	}, nil
}

// Context exposes the shared state for inspection. Callers must not mutate
// it while the engine is running.
func (e *Engine) Context() *GameContext { return e.ctx }

// Phase returns the current top-level phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Round returns the 1-based round counter.
func (e *Engine) Round() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundCount
}

// Winner returns the winning player once the game is over, else nil.
func (e *Engine) Winner() *models.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winner
}

// Discard returns a copy of the tracked discard pile.
func (e *Engine) Discard() []models.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Card, len(e.discard))
	copy(out, e.discard)
	return out
}

// PendingChoice returns the open selection request, if any.
func (e *Engine) PendingChoice() *ChoiceRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.choice == nil {
		return nil
	}
	cp := *e.choice
	cp.resolve = nil
	return &cp
}

// Start begins round one. Errors if the game already started.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseIdle {
		return fmt.Errorf("engine: game already started")
	}
	e.roundCount = 1
	e.log.WithField("players", len(e.ctx.Players)).Info("game started")
	e.beginRound()
	e.pump()
	return nil
}

// current returns the player whose turn it is.
func (e *Engine) current() *models.Player {
	return e.ctx.Players[e.currentIdx]
}

// schedule queues fn to run after d. In synchronous mode the delay is
// dropped and fn joins the inline work queue; otherwise fn fires on a timer
// and is discarded if the engine generation moved on (restart, restore).
func (e *Engine) schedule(d time.Duration, fn func()) {
	gen := e.gen
	guarded := func() {
		if gen != e.gen || e.phase == PhaseOver {
			return
		}
		fn()
	}
	if e.synchronous {
		e.queue = append(e.queue, guarded)
		return
	}
	time.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		guarded()
	})
}

// scheduleTimeout is schedule for phase countdowns. Disabled in synchronous
// mode; the guard closure re-checks that the phase payload it belongs to is
// still the active one, which kills the duplicate-fire window when a player
// short-circuits the countdown.
func (e *Engine) scheduleTimeout(d time.Duration, fn func()) {
	if e.synchronous {
		return
	}
	e.schedule(d, fn)
}

// pump drains the synchronous work queue. Called at the tail of every
// public entry point, under the lock.
func (e *Engine) pump() {
	for len(e.queue) > 0 {
		fn := e.queue[0]
		e.queue = e.queue[1:]
		fn()
	}
}

func (e *Engine) announce(event string, fields map[string]any) {
	e.log.WithFields(logrus.Fields(fields)).Debug(event)
	e.fe.Announce(event, fields)
}

func (e *Engine) reflect() {
	view := StateView{
		Round:         e.roundCount,
		Phase:         e.phase,
		DeckRemaining: e.ctx.Deck.Remaining(),
		Odds:          e.ctx.Wagers.OddsTable(),
	}
	if e.phase != PhaseIdle && e.phase != PhaseOver {
		view.CurrentPlayer = e.current().ID
	}
	for _, p := range e.ctx.Players {
		view.Players = append(view.Players, PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			IsAI:       p.IsAI,
			TotalScore: p.TotalScore,
			RoundScore: p.RoundScore,
			Position:   p.Position,
			State:      p.State,
			Hand:       append([]models.Card(nil), p.Hand...),
			Items:      append([]models.ItemKind(nil), p.Items...),
		})
	}
	e.fe.ReflectState(view)
}

// promptChoice opens the single pending selection. AI players answer after
// the configured think delay; humans answer via SubmitChoice.
func (e *Engine) promptChoice(p *models.Player, kind ChoiceKind, prompt string, options []string, resolve func(option string) error) {
	req := &ChoiceRequest{
		ID:      uuid.New(),
		Player:  p.ID,
		Kind:    kind,
		Prompt:  prompt,
		Options: options,
		resolve: resolve,
	}
	e.choice = req
	if p.IsAI {
		e.schedule(e.cfg.AIThink(), func() {
			if e.choice != req {
				return
			}
			pick := e.aiPickOption(p, req)
			e.choice = nil
			if err := resolve(pick); err != nil {
				// AI picks are drawn from the option list; a reject here
				// means the option went stale, so fall back to a no-op.
				e.log.WithError(err).Warn("ai choice rejected")
			}
		})
		return
	}
	e.fe.PromptChoice(*req)
}

// SubmitChoice answers the pending selection request. An option the
// resolver rejects leaves the request open so the player can retry.
func (e *Engine) SubmitChoice(playerID, choiceID uuid.UUID, option string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	req := e.choice
	if req == nil || req.ID != choiceID {
		return fmt.Errorf("engine: no such pending choice")
	}
	if req.Player != playerID {
		return fmt.Errorf("engine: choice belongs to another player")
	}
	if len(req.Options) > 0 && !containsOption(req.Options, option) {
		return fmt.Errorf("engine: option %q not offered", option)
	}
	e.choice = nil
	if err := req.resolve(option); err != nil {
		e.choice = req
		return err
	}
	e.pump()
	return nil
}

func containsOption(options []string, opt string) bool {
	for _, o := range options {
		if o == opt {
			return true
		}
	}
	return false
}

// Draw is the current player's push-your-luck action.
func (e *Engine) Draw(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.actionGuard(playerID)
	if err != nil {
		return err
	}
	e.doDraw(p)
	e.pump()
	return nil
}

// GiveUp banks the current player's round score at round end and removes
// them from the rotation.
func (e *Engine) GiveUp(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.actionGuard(playerID)
	if err != nil {
		return err
	}
	e.doGiveUp(p)
	e.pump()
	return nil
}

func (e *Engine) actionGuard(playerID uuid.UUID) (*models.Player, error) {
	if e.phase != PhaseAction {
		return nil, fmt.Errorf("engine: no action expected in phase %s", e.phase)
	}
	p := e.current()
	if p.ID != playerID {
		return nil, fmt.Errorf("engine: not %s's turn", playerID)
	}
	return p, nil
}

// UseItem spends one inventory item during the current player's item
// window. Illegal uses are rejected without consuming the item.
func (e *Engine) UseItem(playerID uuid.UUID, kind models.ItemKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseItem || e.itemPhase == nil {
		return fmt.Errorf("engine: item window is not open")
	}
	p := e.itemPhase.player
	if p.ID != playerID {
		return fmt.Errorf("engine: item window belongs to another player")
	}
	if err := e.useItem(p, kind); err != nil {
		return err
	}
	e.pump()
	return nil
}

// SkipItems closes the current player's item window without using anything.
func (e *Engine) SkipItems(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseItem || e.itemPhase == nil {
		return fmt.Errorf("engine: item window is not open")
	}
	p := e.itemPhase.player
	if p.ID != playerID {
		return fmt.Errorf("engine: item window belongs to another player")
	}
	e.closeItemPhase(p, "skipped")
	e.pump()
	return nil
}

// AdjustStake raises (positive delta) or refunds (negative delta) the
// player's wager on a symbol during the betting window.
func (e *Engine) AdjustStake(playerID uuid.UUID, sym Symbol, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseBetting || e.betting == nil {
		return fmt.Errorf("engine: betting window is not open")
	}
	p := e.ctx.PlayerByID(playerID)
	if p == nil {
		return fmt.Errorf("engine: unknown player %s", playerID)
	}
	if e.betting.confirmed[playerID] {
		return fmt.Errorf("engine: bets already confirmed")
	}
	if delta > 0 && delta < e.cfg.Rules.MinStake && e.ctx.Wagers.Stake(playerID, sym) == 0 {
		return fmt.Errorf("engine: minimum stake is %d", e.cfg.Rules.MinStake)
	}
	if err := e.ctx.Wagers.AdjustStake(p, sym, delta); err != nil {
		return err
	}
	e.reflect()
	return nil
}

// ConfirmBets locks in the player's stakes. The betting window closes as
// soon as every player has confirmed.
func (e *Engine) ConfirmBets(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseBetting || e.betting == nil {
		return fmt.Errorf("engine: betting window is not open")
	}
	if e.ctx.PlayerByID(playerID) == nil {
		return fmt.Errorf("engine: unknown player %s", playerID)
	}
	e.betting.confirmed[playerID] = true
	e.maybeCloseBetting()
	e.pump()
	return nil
}
