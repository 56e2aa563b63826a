// internal/game/shop_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitloop/internal/models"
)

func TestShopQueuePoorestFirst(t *testing.T) {
	e, players, _ := setupGame(t, 3, nil)
	require.NoError(t, e.Start())
	p1, p2, p3 := players[0], players[1], players[2]
	p1.State, p1.RoundScore = models.StateDone, 12
	p2.State, p2.RoundScore = models.StateBust, 40 // forfeited, ranks as zero
	p3.State, p3.RoundScore = models.StateDone, 5

	e.openShop()

	req := e.PendingChoice()
	require.NotNil(t, req)
	assert.Equal(t, p2.ID, req.Player, "busted player shops first")
	assert.Equal(t, ChooseShop, req.Kind)
	assert.Contains(t, req.Options, "pass")
}

func TestShopPassPaysConsolation(t *testing.T) {
	e, players, _ := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.State = models.StateDone
	players[1].State = models.StateDone
	before := p1.TotalScore

	e.openShop()
	req := e.PendingChoice()
	require.NotNil(t, req)
	require.NoError(t, e.SubmitChoice(req.Player, req.ID, "pass"))

	assert.Equal(t, before+e.cfg.Items.PassReward, p1.TotalScore)
}

func TestShopBuyDeductsAndAddsItem(t *testing.T) {
	e, players, _ := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.State = models.StateDone
	p1.TotalScore = 50
	players[1].State = models.StateDone
	players[1].TotalScore = 60 // p1 shops first

	e.openShop()
	req := e.PendingChoice()
	require.NotNil(t, req)
	require.Equal(t, p1.ID, req.Player)

	kind := models.ItemKind(req.Options[0])
	price := e.itemPrice(p1, kind)
	require.NoError(t, e.SubmitChoice(p1.ID, req.ID, string(kind)))

	assert.Equal(t, 50-price, p1.TotalScore)
	assert.Equal(t, []models.ItemKind{kind}, p1.Items)
}

func TestShopRejectsFullInventory(t *testing.T) {
	e, players, _ := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.State = models.StateDone
	p1.TotalScore = 50
	for i := 0; i < e.cfg.Items.MaxInventory; i++ {
		p1.Items = append(p1.Items, models.ItemProtection)
	}
	players[1].State = models.StateDone
	players[1].TotalScore = 60

	e.openShop()
	req := e.PendingChoice()
	require.NotNil(t, req)
	require.Equal(t, p1.ID, req.Player)

	assert.Error(t, e.SubmitChoice(p1.ID, req.ID, req.Options[0]))
	assert.Len(t, p1.Items, e.cfg.Items.MaxInventory)
	require.NoError(t, e.SubmitChoice(p1.ID, req.ID, "pass"))
}

func TestShopRejectsUnaffordableItem(t *testing.T) {
	e, players, _ := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.State = models.StateDone
	p1.TotalScore = 0
	players[1].State = models.StateDone
	players[1].TotalScore = 60

	e.openShop()
	req := e.PendingChoice()
	require.NotNil(t, req)
	require.Equal(t, p1.ID, req.Player)

	assert.Error(t, e.SubmitChoice(p1.ID, req.ID, req.Options[0]))
	assert.Empty(t, p1.Items)
}

func TestShopOfferSize(t *testing.T) {
	e, _, _ := setupGame(t, 2, nil)
	offer := e.makeOffer()
	// players + bonus, bounded by the catalog.
	want := len(e.ctx.Players) + e.cfg.Items.OfferBonus
	if want > len(models.AllItems) {
		want = len(models.AllItems)
	}
	assert.Len(t, offer, want)
	seen := make(map[models.ItemKind]bool)
	for _, kind := range offer {
		assert.False(t, seen[kind], "offer items are distinct")
		seen[kind] = true
	}
}

func TestUpgradePriceScalesWithPurchases(t *testing.T) {
	e, players, _ := setupGame(t, 2, nil)
	p := players[0]

	p.UpgradeBuys = 0
	assert.Equal(t, 5, e.itemPrice(p, models.ItemUpgrade))
	p.UpgradeBuys = 1
	assert.Equal(t, 5, e.itemPrice(p, models.ItemUpgrade), "price steps every second purchase")
	p.UpgradeBuys = 2
	assert.Equal(t, 6, e.itemPrice(p, models.ItemUpgrade))
	p.UpgradeBuys = 40
	assert.Equal(t, e.cfg.Items.UpgradePriceCap, e.itemPrice(p, models.ItemUpgrade))

	assert.Equal(t, e.cfg.Items.Prices["land"], e.itemPrice(p, models.ItemLand))
}
