// internal/models/item.go
package models

// ItemKind identifies a purchasable between-round item.
type ItemKind string

const (
	ItemLand       ItemKind = "land"
	ItemUpgrade    ItemKind = "upgrade"
	ItemExchange   ItemKind = "exchange"
	ItemProtection ItemKind = "protection"
	ItemProphecy   ItemKind = "prophecy"
	ItemTaxFree    ItemKind = "tax_free"
)

// AllItems lists the shop catalog in display order.
var AllItems = []ItemKind{
	ItemLand, ItemUpgrade, ItemExchange, ItemProtection, ItemProphecy, ItemTaxFree,
}

var itemNames = map[ItemKind]string{
	ItemLand:       "Land Deed",
	ItemUpgrade:    "Upgrade",
	ItemExchange:   "Exchange",
	ItemProtection: "Protection",
	ItemProphecy:   "Prophecy",
	ItemTaxFree:    "Tax Exemption",
}

func (k ItemKind) DisplayName() string {
	if n, ok := itemNames[k]; ok {
		return n
	}
	return string(k)
}
