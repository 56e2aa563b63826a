// internal/models/card.go
package models

import "fmt"

// CardKind discriminates the card tagged union. A card is a value, not an
// entity: two cards with the same kind and payload are interchangeable.
type CardKind int

const (
	KindNumber CardKind = iota
	KindFreeze
	KindSecondChance
	KindFlip3
	KindFlash
	KindDare
	KindFeast
	KindScore
	KindMult
)

var kindNames = map[CardKind]string{
	KindNumber:       "number",
	KindFreeze:       "freeze",
	KindSecondChance: "second_chance",
	KindFlip3:        "flip_3",
	KindFlash:        "flash",
	KindDare:         "dare",
	KindFeast:        "feast",
	KindScore:        "score",
	KindMult:         "mult",
}

func (k CardKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Card is the tagged union of Number(0..13) and the special kinds. Value
// carries the numeric payload: the face value for numbers, the score amount
// for KindScore, and the multiplier for KindMult.
type Card struct {
	Kind  CardKind `json:"kind"`
	Value int      `json:"value,omitempty"`
}

func NumberCard(v int) Card  { return Card{Kind: KindNumber, Value: v} }
func ScoreCard(n int) Card   { return Card{Kind: KindScore, Value: n} }
func MultCard(m int) Card    { return Card{Kind: KindMult, Value: m} }
func SpecialCard(k CardKind) Card {
	return Card{Kind: k}
}

func (c Card) IsNumber() bool  { return c.Kind == KindNumber }
func (c Card) IsSpecial() bool { return c.Kind != KindNumber }

// Twin reports whether two cards count as the same deck entry for the
// special sub-pool bookkeeping: same kind, and for payload-carrying kinds the
// same payload.
func (c Card) Twin(other Card) bool {
	return c.Kind == other.Kind && c.Value == other.Value
}

func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("%d", c.Value)
	case KindScore:
		return fmt.Sprintf("score_%d", c.Value)
	case KindMult:
		return fmt.Sprintf("mult_%d", c.Value)
	default:
		return c.Kind.String()
	}
}
