// internal/game/items.go
package game

import (
	"fmt"
	"strconv"
	"strings"

	"fruitloop/internal/models"
)

// useItem applies one inventory item during the item window. Every illegal
// use returns an error without consuming the item; multi-step items only
// consume once their selection resolves.
func (e *Engine) useItem(p *models.Player, kind models.ItemKind) error {
	if p.IndexOfItem(kind) < 0 {
		return fmt.Errorf("engine: %s not in inventory", kind)
	}
	switch kind {
	case models.ItemLand:
		if err := e.ctx.Land.Acquire(p.ID, p.Position); err != nil {
			e.announce("item_rejected", map[string]any{"player": p.Name, "item": string(kind)})
			return err
		}
		cell := e.ctx.Land.Cell(p.Position)
		e.announce("land_claimed", map[string]any{
			"player": p.Name,
			"cell":   p.Position,
			"level":  cell.Level,
		})
		e.spendItem(p, kind)
		return nil

	case models.ItemUpgrade:
		cells := e.ctx.Land.Upgradable(p.ID)
		if len(cells) == 0 {
			e.announce("item_rejected", map[string]any{"player": p.Name, "item": string(kind)})
			return fmt.Errorf("engine: nothing to upgrade")
		}
		options := make([]string, len(cells))
		for i, c := range cells {
			options[i] = strconv.Itoa(c)
		}
		e.promptChoice(p, ChooseCell, "choose a cell to upgrade", options, func(option string) error {
			if e.itemPhase == nil || e.itemPhase.player != p {
				return fmt.Errorf("engine: item window closed")
			}
			cell, err := strconv.Atoi(option)
			if err != nil {
				return fmt.Errorf("engine: bad cell %q", option)
			}
			if err := e.ctx.Land.Upgrade(p.ID, cell); err != nil {
				return err
			}
			e.announce("land_upgraded", map[string]any{
				"player": p.Name,
				"cell":   cell,
				"level":  e.ctx.Land.Cell(cell).Level,
			})
			e.spendItem(p, kind)
			return nil
		})
		return nil

	case models.ItemExchange:
		e.promptChoice(p, ChooseCellPair, "choose two cells to exchange (a:b)", nil, func(option string) error {
			if e.itemPhase == nil || e.itemPhase.player != p {
				return fmt.Errorf("engine: item window closed")
			}
			a, b, err := parseCellPair(option)
			if err != nil {
				return err
			}
			if err := e.ctx.Land.Exchange(a, b); err != nil {
				return err
			}
			e.announce("land_exchanged", map[string]any{"player": p.Name, "cells": []int{a, b}})
			e.spendItem(p, kind)
			return nil
		})
		return nil

	case models.ItemProtection:
		if p.Protected {
			return fmt.Errorf("engine: already protected")
		}
		p.Protected = true
		e.announce("protection_armed", map[string]any{"player": p.Name})
		e.spendItem(p, kind)
		return nil

	case models.ItemProphecy:
		if p.Prophecy != models.GuessNone {
			return fmt.Errorf("engine: prophecy already pending")
		}
		e.promptChoice(p, ChooseProphecy, "predict your next draw",
			[]string{string(models.GuessSmall), string(models.GuessBig)},
			func(option string) error {
				if e.itemPhase == nil || e.itemPhase.player != p {
					return fmt.Errorf("engine: item window closed")
				}
				p.Prophecy = models.ProphecyGuess(option)
				e.announce("prophecy_set", map[string]any{"player": p.Name, "guess": option})
				e.spendItem(p, kind)
				return nil
			})
		return nil

	case models.ItemTaxFree:
		if p.TaxFree {
			return fmt.Errorf("engine: already tax exempt")
		}
		p.TaxFree = true
		e.announce("tax_exemption", map[string]any{"player": p.Name})
		e.spendItem(p, kind)
		return nil
	}
	return fmt.Errorf("engine: unknown item %q", kind)
}

// spendItem removes one copy from the inventory and closes the window.
func (e *Engine) spendItem(p *models.Player, kind models.ItemKind) {
	if i := p.IndexOfItem(kind); i >= 0 {
		p.Items = append(p.Items[:i], p.Items[i+1:]...)
	}
	e.closeItemPhase(p, "used")
}

func parseCellPair(option string) (int, int, error) {
	parts := strings.SplitN(option, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("engine: expected a:b, got %q", option)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("engine: bad cell %q", parts[0])
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("engine: bad cell %q", parts[1])
	}
	return a, b, nil
}
