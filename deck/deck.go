// deck/deck.go
package deck

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Fruits is the fixed symbol set cards are drawn from. FruitID on a card is
// an index into this slice.
var Fruits = []string{"🍎", "🍌", "🍊", "🍇", "🍓", "🍉", "🍒", "🍍"}

var fruitNames = []string{
	"Apple", "Banana", "Orange", "Grapes",
	"Strawberry", "Watermelon", "Cherry", "Pineapple",
}

// Card 是一张水果卡牌，ID 在单次发牌内唯一
type Card struct {
	ID      string `json:"id"`
	Emoji   string `json:"emoji"`
	Name    string `json:"name"`
	FruitID int    `json:"fruitId"`
}

func newCard(fruitID int) Card {
	return Card{
		ID:      uuid.New().String(),
		Emoji:   Fruits[fruitID],
		Name:    fruitNames[fruitID],
		FruitID: fruitID,
	}
}

// NewShuffledDeck 生成一副打乱的卡牌，每张牌的水果独立均匀随机
func NewShuffledDeck(size int) []Card {
	cards := make([]Card, 0, size)
	for i := 0; i < size; i++ {
		cards = append(cards, newCard(rand.Intn(len(Fruits))))
	}
	shuffle(cards)
	return cards
}

// NewWinnableDeck builds the deck used by the solo variant: every seat gets a
// guaranteed triple of a symbol unique to that seat before the remainder is
// padded randomly. The networked game deliberately does not use this; see
// NewShuffledDeck.
func NewWinnableDeck(seats, size int) []Card {
	cards := make([]Card, 0, size)
	for seat := 0; seat < seats; seat++ {
		fruitID := seat % len(Fruits)
		for i := 0; i < 3; i++ {
			cards = append(cards, newCard(fruitID))
		}
	}
	for len(cards) < size {
		cards = append(cards, newCard(rand.Intn(len(Fruits))))
	}
	shuffle(cards)
	return cards
}

// shuffle 使用 Fisher-Yates 原地打乱，从最后一位向前扫描
func shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal partitions the deck into contiguous, non-overlapping hands in player
// order: the player at position i receives cards [i*handSize, (i+1)*handSize).
func Deal(cards []Card, playerIDs []string, handSize int) (map[string][]Card, error) {
	if len(cards) < len(playerIDs)*handSize {
		return nil, fmt.Errorf("deck of %d cards cannot deal %d hands of %d", len(cards), len(playerIDs), handSize)
	}

	hands := make(map[string][]Card, len(playerIDs))
	for i, id := range playerIDs {
		hand := make([]Card, handSize)
		copy(hand, cards[i*handSize:(i+1)*handSize])
		hands[id] = hand
	}
	return hands, nil
}
