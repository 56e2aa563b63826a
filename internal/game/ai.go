// internal/game/ai.go
package game

import (
	"strconv"

	"fruitloop/internal/models"
)

// aiTakeAction is the push-your-luck policy: draw until the round score
// reaches the stand threshold.
func (e *Engine) aiTakeAction(p *models.Player) {
	if p.RoundScore >= e.cfg.AI.StandScore {
		e.doGiveUp(p)
		return
	}
	e.doDraw(p)
}

// aiItemDecision runs the configured item policy during the item window.
// "skip" never spends anything; "greedy" burns the first usable defensive
// or economic item.
func (e *Engine) aiItemDecision(p *models.Player) {
	if e.cfg.AI.ItemPolicy == "greedy" {
		order := []models.ItemKind{
			models.ItemProtection, models.ItemTaxFree,
			models.ItemLand, models.ItemUpgrade, models.ItemProphecy,
		}
		for _, kind := range order {
			if p.IndexOfItem(kind) < 0 {
				continue
			}
			if err := e.useItem(p, kind); err == nil {
				return
			}
		}
	}
	e.closeItemPhase(p, "skipped")
}

// aiDuelMove draws while behind the duel stand threshold and the rules
// still allow it.
func (e *Engine) aiDuelMove(p *models.Player) {
	d := e.duel
	if d == nil {
		return
	}
	if d.Pool > 0 && e.duelCanAct(p) && d.sum(p.ID) < e.cfg.AI.DuelStandScore {
		e.duelDraw(p)
		return
	}
	e.duelStand(p)
}

// aiPickOption answers a pending selection for a computer player.
func (e *Engine) aiPickOption(p *models.Player, req *ChoiceRequest) string {
	switch req.Kind {
	case ChooseTarget:
		// Prefer anyone but itself.
		others := make([]string, 0, len(req.Options))
		for _, opt := range req.Options {
			if opt != p.ID.String() {
				others = append(others, opt)
			}
		}
		if len(others) > 0 {
			return others[e.ctx.RNG.Intn(len(others))]
		}
		return req.Options[e.ctx.RNG.Intn(len(req.Options))]

	case ChooseProphecy:
		// High values outnumber low ones in the stock deck.
		return string(models.GuessBig)

	case ChooseCell:
		return req.Options[e.ctx.RNG.Intn(len(req.Options))]

	case ChooseCellPair:
		cells := e.randomDistinctCells(2)
		return strconv.Itoa(cells[0]) + ":" + strconv.Itoa(cells[1])

	case ChooseShop:
		if len(p.Items) >= e.cfg.Items.MaxInventory {
			return "pass"
		}
		for _, opt := range req.Options {
			if opt == "pass" {
				continue
			}
			if p.TotalScore >= e.itemPrice(p, models.ItemKind(opt)) {
				return opt
			}
		}
		return "pass"
	}
	if len(req.Options) > 0 {
		return req.Options[0]
	}
	return ""
}
