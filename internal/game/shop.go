// internal/game/shop.go
package game

import (
	"fmt"
	"sort"

	"fruitloop/internal/models"
)

// openShop runs the between-round store. Players shop one at a time,
// poorest round first, each buying at most one item or passing for a small
// consolation.
func (e *Engine) openShop() {
	e.phase = PhaseShop
	queue := append([]*models.Player(nil), e.ctx.Players...)
	sort.SliceStable(queue, func(i, j int) bool {
		ri, rj := shopRank(queue[i]), shopRank(queue[j])
		if ri != rj {
			return ri < rj
		}
		return queue[i].TotalScore < queue[j].TotalScore
	})
	e.shop = &shopState{queue: queue}
	e.announce("shop_opened", map[string]any{"round": e.roundCount})
	e.shopNext()
}

// shopRank orders the queue: forfeited rounds count as zero.
func shopRank(p *models.Player) int {
	if p.State == models.StateBust || p.State == models.StateFrozen {
		return 0
	}
	return p.RoundScore
}

func (e *Engine) shopNext() {
	s := e.shop
	if s.idx >= len(s.queue) {
		e.shop = nil
		e.announce("shop_closed", nil)
		e.schedule(e.cfg.Announce(), e.startNextRound)
		return
	}
	p := s.queue[s.idx]
	s.offer = e.makeOffer()
	options := make([]string, 0, len(s.offer)+1)
	for _, kind := range s.offer {
		options = append(options, string(kind))
	}
	options = append(options, "pass")
	prompt := fmt.Sprintf("shop: %s may buy one item or pass", p.Name)
	e.announce("shop_offer", map[string]any{
		"player": p.Name,
		"offer":  options[:len(options)-1],
	})
	e.promptChoice(p, ChooseShop, prompt, options, func(option string) error {
		if option == "pass" {
			p.TotalScore += e.cfg.Items.PassReward
			e.announce("shop_passed", map[string]any{
				"player": p.Name,
				"reward": e.cfg.Items.PassReward,
			})
			s.idx++
			e.shopNext()
			return nil
		}
		kind := models.ItemKind(option)
		price := e.itemPrice(p, kind)
		if len(p.Items) >= e.cfg.Items.MaxInventory {
			return fmt.Errorf("engine: inventory full")
		}
		if p.TotalScore < price {
			return fmt.Errorf("engine: cannot afford %s (%d)", kind, price)
		}
		p.TotalScore -= price
		p.Items = append(p.Items, kind)
		if kind == models.ItemUpgrade {
			p.UpgradeBuys++
		}
		e.announce("shop_bought", map[string]any{
			"player": p.Name,
			"item":   string(kind),
			"price":  price,
		})
		s.idx++
		e.shopNext()
		return nil
	})
}

// makeOffer picks players+bonus distinct items from the catalog.
func (e *Engine) makeOffer() []models.ItemKind {
	n := len(e.ctx.Players) + e.cfg.Items.OfferBonus
	if n > len(models.AllItems) {
		n = len(models.AllItems)
	}
	catalog := append([]models.ItemKind(nil), models.AllItems...)
	e.ctx.RNG.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})
	return catalog[:n]
}

// itemPrice returns the sticker price. Upgrades get pricier the more a
// player has bought, up to the cap.
func (e *Engine) itemPrice(p *models.Player, kind models.ItemKind) int {
	if kind == models.ItemUpgrade {
		price := e.cfg.Items.UpgradeBase + p.UpgradeBuys/2
		if price > e.cfg.Items.UpgradePriceCap {
			price = e.cfg.Items.UpgradePriceCap
		}
		return price
	}
	if price, ok := e.cfg.Items.Prices[string(kind)]; ok {
		return price
	}
	return e.cfg.Items.UpgradeBase
}
